package ui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-astrom/internal/astro"
	"github.com/litescript/ls-astrom/internal/report"
	"github.com/litescript/ls-astrom/internal/state"
)

// Styles for the table
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	belowRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
)

// SortMode orders the table.
type SortMode int

const (
	SortElevation SortMode = iota
	SortMagnitude
	SortName
)

func (s SortMode) String() string {
	switch s {
	case SortElevation:
		return "elevation"
	case SortMagnitude:
		return "magnitude"
	case SortName:
		return "name"
	default:
		return "unknown"
	}
}

// TableModel lists observed places, one row per source.
type TableModel struct {
	width     int
	height    int
	cursor    int
	sortMode  SortMode
	showBelow bool

	snapshot state.Snapshot
	rows     []report.Row
	history  []state.TimeSeries
	lastErr  error
}

// NewTableModel creates a new table model.
func NewTableModel() TableModel {
	return TableModel{}
}

// SetSize updates the viewport size.
func (m TableModel) SetSize(width, height int) TableModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with a new snapshot, keeping the selected
// source under the cursor where possible.
func (m TableModel) UpdateData(snapshot state.Snapshot) TableModel {
	selected := m.SelectedName()
	m.snapshot = snapshot
	m.rows = sortRows(snapshot.Report, m.sortMode, m.showBelow)
	m.reselect(selected)
	if snapshot.LastError == nil {
		m.lastErr = nil
	}
	return m
}

// SetHistory sets the elevation history of the selected source.
func (m TableModel) SetHistory(h []state.TimeSeries) TableModel {
	m.history = h
	return m
}

// SetError sets the last error for display.
func (m TableModel) SetError(err error) TableModel {
	m.lastErr = err
	return m
}

// SelectedName returns the source under the cursor, or "".
func (m TableModel) SelectedName() string {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return ""
	}
	return m.rows[m.cursor].Name
}

// Select moves the cursor to the named source if it is listed.
func (m TableModel) Select(name string) TableModel {
	m.reselect(name)
	return m
}

func (m *TableModel) reselect(name string) {
	for i, r := range m.rows {
		if r.Name == name {
			m.cursor = i
			return
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
}

// Update handles messages.
func (m TableModel) Update(msg tea.Msg) (TableModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "home":
		m.cursor = 0
	case "end":
		if len(m.rows) > 0 {
			m.cursor = len(m.rows) - 1
		}
	case "o":
		m.sortMode = (m.sortMode + 1) % 3
		m = m.resort()
	case "b":
		m.showBelow = !m.showBelow
		m = m.resort()
	}
	return m, nil
}

func (m TableModel) resort() TableModel {
	selected := m.SelectedName()
	m.rows = sortRows(m.snapshot.Report, m.sortMode, m.showBelow)
	m.cursor = 0
	m.reselect(selected)
	return m
}

// sortRows filters and orders report rows. Ties keep catalogue order.
func sortRows(r *report.Report, mode SortMode, showBelow bool) []report.Row {
	if r == nil {
		return nil
	}
	rows := make([]report.Row, 0, len(r.Rows))
	for _, row := range r.Rows {
		if showBelow || row.Elevation > 0 {
			rows = append(rows, row)
		}
	}

	var less func(a, b report.Row) bool
	switch mode {
	case SortMagnitude:
		less = func(a, b report.Row) bool { return a.Mag < b.Mag }
	case SortName:
		less = func(a, b report.Row) bool { return a.Name < b.Name }
	default:
		less = func(a, b report.Row) bool { return a.Elevation > b.Elevation }
	}
	sort.SliceStable(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
	return rows
}

// View renders the table.
func (m TableModel) View() string {
	var b strings.Builder

	if m.lastErr != nil {
		b.WriteString(errorStyle.Render("Error: " + m.lastErr.Error()))
		b.WriteString("\n\n")
	}

	r := m.snapshot.Report
	if r == nil {
		if m.lastErr == nil {
			b.WriteString("Computing observed places...\n")
		}
		return b.String()
	}

	b.WriteString(m.renderSiteSummary(r))
	b.WriteString("\n\n")
	b.WriteString(m.renderRows())
	b.WriteString("\n")
	b.WriteString(m.renderSelected())

	return b.String()
}

func (m TableModel) renderSiteSummary(r *report.Report) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(r.Site.Name))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s %s %.0f m",
		report.FormatDec(r.Site.Longitude*astro.DegToRad), report.FormatDec(r.Site.Latitude*astro.DegToRad), r.Site.Height)))
	b.WriteString("\n")

	warn := rowStyle.Render(r.Warnings)
	if r.Warnings != "ok" {
		warn = errorStyle.Render(r.Warnings)
	}
	fmt.Fprintf(&b, "  %s UTC  EO %+.3f\"  ephemeris: %s  status: %s",
		r.Time.Format("2006-01-02 15:04:05"), r.EquationOfOrigins, r.Ephemeris, warn)
	return b.String()
}

func (m TableModel) renderRows() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Observed Places (by %s)", m.sortMode)))
	b.WriteString("\n")

	header := fmt.Sprintf("%-14s %5s %7s %6s %12s %10s %-7s",
		"Name", "Mag", "Az", "El", "RA (CIO)", "Dec", "Sun")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString("  No sources above the horizon\n")
		return b.String()
	}

	maxRows := m.height - 12 // room for summary and detail
	if maxRows < 5 {
		maxRows = 5
	}
	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}
	end := min(start+maxRows, len(m.rows))

	for i := start; i < end; i++ {
		r := m.rows[i]
		line := fmt.Sprintf("%-14s %5.2f %7.2f %6.2f %12s %10s %-7s",
			truncate(r.Name, 14),
			r.Mag,
			r.Azimuth,
			r.Elevation,
			report.FormatRA(r.RA*astro.DegToRad),
			report.FormatDec(r.Dec*astro.DegToRad),
			r.SunTier,
		)
		switch {
		case i == m.cursor:
			b.WriteString(selectedRowStyle.Render(line))
		case r.Elevation <= 0:
			b.WriteString(belowRowStyle.Render(line))
		default:
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if len(m.rows) > maxRows {
		b.WriteString(fmt.Sprintf("\n  Showing %d-%d of %d sources", start+1, end, len(m.rows)))
	}
	return b.String()
}

func (m TableModel) renderSelected() string {
	if m.cursor >= len(m.rows) {
		return ""
	}
	r := m.rows[m.cursor]

	var b strings.Builder
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	b.WriteString(accent.Render(fmt.Sprintf(">>> %s  HA %+.3f°  CIRS %s %s  Sun %.1f°",
		r.Name, r.HourAngle, report.FormatRA(r.CIRSRA*astro.DegToRad), report.FormatDec(r.CIRSDec*astro.DegToRad), r.SunSeparation)))
	b.WriteString("\n    ")
	b.WriteString(renderElevationSparkline(m.history))
	return b.String()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
