// Package state provides thread-safe state management for the application.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-astrom/internal/report"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventRise    EventType = "RISE"
	EventSet     EventType = "SET"
	EventWarning EventType = "WARNING"
)

// Event represents a change between two successive reports.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source,omitempty"`
	Azimuth   float64   `json:"azimuth_deg,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// TimeSeries is a single data point with timestamp.
type TimeSeries struct {
	Timestamp time.Time
	Value     float64
}

// Manager handles all shared application state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	// Current state
	current         *report.Report
	lastCompute     time.Time
	lastError       error
	computeDuration time.Duration

	// Previous above-horizon flags and warnings for event detection
	prevUp       map[string]bool
	prevWarnings string

	// Per-source elevation history
	elevHistory map[string][]TimeSeries
	maxHistory  int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	focused         string
	refreshInterval time.Duration
}

// Config holds configuration for the state manager.
type Config struct {
	MaxHistory      int
	MaxEvents       int
	RefreshInterval time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxHistory:      120, // 10 minutes at the default refresh
		MaxEvents:       50,
		RefreshInterval: 5 * time.Second,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		maxHistory:      cfg.MaxHistory,
		maxEvents:       maxEvents,
		events:          make([]Event, 0, maxEvents),
		refreshInterval: cfg.RefreshInterval,
		prevUp:          make(map[string]bool),
		elevHistory:     make(map[string][]TimeSeries),
	}
}

// Update atomically replaces the current report. A nil report records only
// the error.
func (m *Manager) Update(r *report.Report, computeDuration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastCompute = time.Now()
	m.lastError = err
	m.computeDuration = computeDuration

	if r == nil {
		return
	}

	m.detectEvents(r)
	m.current = r

	for _, row := range r.Rows {
		h := append(m.elevHistory[row.Name], TimeSeries{Timestamp: r.Time, Value: row.Elevation})
		if m.maxHistory > 0 && len(h) > m.maxHistory {
			h = h[len(h)-m.maxHistory:]
		}
		m.elevHistory[row.Name] = h
	}
}

// detectEvents compares the new report with the previous one.
func (m *Manager) detectEvents(r *report.Report) {
	first := m.current == nil

	up := make(map[string]bool, len(r.Rows))
	for _, row := range r.Rows {
		isUp := row.Elevation > 0
		up[row.Name] = isUp

		wasUp, known := m.prevUp[row.Name]
		if first || !known || wasUp == isUp {
			continue
		}
		typ := EventSet
		if isUp {
			typ = EventRise
		}
		m.addEvent(Event{Type: typ, Timestamp: r.Time, Source: row.Name, Azimuth: row.Azimuth})
	}
	m.prevUp = up

	if !first && r.Warnings != m.prevWarnings {
		m.addEvent(Event{Type: EventWarning, Timestamp: r.Time, Detail: r.Warnings})
	}
	m.prevWarnings = r.Warnings
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Report          *report.Report
	LastCompute     time.Time
	NextRefresh     time.Time
	LastError       error
	ComputeDuration time.Duration
	Events          []Event
	Focused         string
}

// Snapshot returns a consistent snapshot of current state. The report is
// shared and must not be modified.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var next time.Time
	if !m.lastCompute.IsZero() {
		next = m.lastCompute.Add(m.refreshInterval)
	}
	return Snapshot{
		Report:          m.current,
		LastCompute:     m.lastCompute,
		NextRefresh:     next,
		LastError:       m.lastError,
		ComputeDuration: m.computeDuration,
		Events:          m.getEventsOrdered(),
		Focused:         m.focused,
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		result[i] = m.events[(m.eventWriteAt+i)%m.maxEvents]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// ElevationHistory returns a copy of the elevation history of a source.
func (m *Manager) ElevationHistory(name string) []TimeSeries {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h := m.elevHistory[name]
	if h == nil {
		return nil
	}
	out := make([]TimeSeries, len(h))
	copy(out, h)
	return out
}

// SetFocused records the source selected in the UI.
func (m *Manager) SetFocused(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.focused = name
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// SetRefreshInterval updates the refresh interval.
func (m *Manager) SetRefreshInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshInterval = d
}

// HasData returns true once a report has been stored.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}
