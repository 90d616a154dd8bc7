// Package report renders observed places as JSON or a text table.
package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/soniakeys/unit"

	"github.com/litescript/ls-astrom/internal/astro"
	"github.com/litescript/ls-astrom/internal/astrom"
	"github.com/litescript/ls-astrom/internal/batch"
)

// Report is the JSON-serializable result of observing a catalogue.
type Report struct {
	Time      time.Time `json:"time"`
	Site      SiteInfo  `json:"site"`
	Ephemeris string    `json:"ephemeris"`
	Warnings  string    `json:"warnings"`

	// EquationOfOrigins converts the CIO-based right ascensions to
	// equinox-based ones: RA(equinox) = RA(CIO) - EO.
	EquationOfOrigins float64 `json:"eo_arcsec"`

	Rows []Row `json:"rows"`
}

// SiteInfo is a JSON-friendly site description.
type SiteInfo struct {
	Name      string  `json:"name"`
	Longitude float64 `json:"longitude_deg"`
	Latitude  float64 `json:"latitude_deg"`
	Height    float64 `json:"height_m"`
}

// Row is one source's observed place, in degrees.
type Row struct {
	Name      string  `json:"name"`
	Mag       float64 `json:"mag"`
	Azimuth   float64 `json:"azimuth_deg"`
	Elevation float64 `json:"elevation_deg"`
	HourAngle float64 `json:"hour_angle_deg"`
	RA        float64 `json:"ra_deg"`
	Dec       float64 `json:"dec_deg"`

	CIRSRA  float64 `json:"cirs_ra_deg"`
	CIRSDec float64 `json:"cirs_dec_deg"`

	SunSeparation float64 `json:"sun_separation_deg"`
	SunTier       string  `json:"sun_tier"`

	// RoundTrip is the observed to CIRS recovery error in mas; zero when
	// not checked.
	RoundTrip float64 `json:"roundtrip_mas,omitempty"`
}

// Build assembles a report from batch results computed with c.
func Build(t time.Time, siteName, ephemeris string, c *astrom.Context, results []batch.Result) *Report {
	s := c.Site()
	r := &Report{
		Time: t.UTC(),
		Site: SiteInfo{
			Name:      siteName,
			Longitude: s.Longitude * astro.RadToDeg,
			Latitude:  s.Latitude * astro.RadToDeg,
			Height:    s.Height,
		},
		Ephemeris:         ephemeris,
		Warnings:          c.Warnings().String(),
		EquationOfOrigins: unit.Angle(c.EquationOfOrigins()).Sec(),
		Rows:              make([]Row, 0, len(results)),
	}

	eh, _ := c.SunToObserver()
	sun := eh.Neg()
	for _, res := range results {
		obs := res.Observed
		sep := astro.FromSpherical(res.Catalog.RA, res.Catalog.Dec).Sep(sun) * astro.RadToDeg
		r.Rows = append(r.Rows, Row{
			Name:          res.Name,
			Mag:           res.Mag,
			Azimuth:       unit.Angle(obs.Azimuth).Deg(),
			Elevation:     unit.Angle(obs.Elevation()).Deg(),
			HourAngle:     unit.Angle(astro.NormalizeAngleSigned(obs.HourAngle)).Deg(),
			RA:            unit.RAFromRad(obs.RA).Deg(),
			Dec:           unit.Angle(obs.Dec).Deg(),
			CIRSRA:        unit.RAFromRad(res.RI).Deg(),
			CIRSDec:       unit.Angle(res.DI).Deg(),
			SunSeparation: sep,
			SunTier:       astro.GetSunSeparationTier(sep).String(),
			RoundTrip:     unit.Angle(res.RoundTrip).Sec() * 1000,
		})
	}
	return r
}

// Visible returns the rows above the horizon, highest first.
func (r *Report) Visible() []Row {
	var out []Row
	for _, row := range r.Rows {
		if row.Elevation > 0 {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Elevation > out[j].Elevation })
	return out
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteTable writes the visible rows as a text table.
func (r *Report) WriteTable(w io.Writer) {
	rows := r.Visible()

	fmt.Fprintf(w, "%s @ %s (%s ephemeris)\n", r.Site.Name, r.Time.Format(time.RFC3339), r.Ephemeris)
	fmt.Fprintf(w, "Site %s %s %.0f m  EO %+.3f\"  %s\n",
		FormatDec(r.Site.Longitude*astro.DegToRad), FormatDec(r.Site.Latitude*astro.DegToRad),
		r.Site.Height, r.EquationOfOrigins, r.Warnings)
	fmt.Fprintln(w, strings.Repeat("─", 92))

	if len(rows) == 0 {
		fmt.Fprintln(w, "No sources above the horizon")
		return
	}

	withRT := false
	for _, row := range rows {
		if row.RoundTrip != 0 {
			withRT = true
			break
		}
	}

	fmt.Fprintf(w, "%-14s %5s %7s %6s %12s %10s %7s %-7s",
		"Name", "Mag", "Az", "El", "RA (CIO)", "Dec", "Sun", "")
	if withRT {
		fmt.Fprintf(w, " %8s", "RT mas")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("─", 92))

	for _, row := range rows {
		fmt.Fprintf(w, "%-14s %5.2f %7.2f %6.2f %12s %10s %6.1f° %-7s",
			truncateStr(row.Name, 14),
			row.Mag,
			row.Azimuth,
			row.Elevation,
			FormatRA(row.RA*astro.DegToRad),
			FormatDec(row.Dec*astro.DegToRad),
			row.SunSeparation,
			row.SunTier,
		)
		if withRT {
			fmt.Fprintf(w, " %8.3f", row.RoundTrip)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\nTotal: %d of %d sources above the horizon\n", len(rows), len(r.Rows))
}

// FormatRA formats a right ascension in radians as hours, minutes and
// seconds of time.
func FormatRA(rad float64) string {
	s := math.Round(unit.RAFromRad(rad).Sec()*10) / 10
	if s >= 86400 {
		s -= 86400
	}
	h := int(s / 3600)
	s -= float64(h) * 3600
	m := int(s / 60)
	s -= float64(m) * 60
	return fmt.Sprintf("%02dh%02dm%04.1fs", h, m, s)
}

// FormatDec formats an angle in radians as signed degrees, arcminutes and
// arcseconds.
func FormatDec(rad float64) string {
	a := unit.Angle(rad)
	sign := '+'
	if a < 0 {
		sign = '-'
		a = -a
	}
	s := math.Round(a.Sec())
	d := int(s / 3600)
	s -= float64(d) * 3600
	m := int(s / 60)
	s -= float64(m) * 60
	return fmt.Sprintf("%c%02d°%02d′%02.0f″", sign, d, m, s)
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
