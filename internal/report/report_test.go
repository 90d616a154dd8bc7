package report

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/litescript/ls-astrom/internal/astro"
	"github.com/litescript/ls-astrom/internal/astrom"
	"github.com/litescript/ls-astrom/internal/batch"
	"github.com/litescript/ls-astrom/internal/earth"
	"github.com/litescript/ls-astrom/internal/ephem"
	"github.com/litescript/ls-astrom/internal/timescale"
)

var testTime = time.Date(2024, 6, 21, 22, 0, 0, 0, time.UTC)

func testContext() *astrom.Context {
	utc := timescale.FromTime(testTime)
	return astrom.Build(astrom.Params{
		TT:        utc.AddDays(69.184 / 86400),
		UT1:       utc,
		Site:      astrom.Site{Longitude: 0.2, Latitude: 0.8, Height: 300},
		Env:       earth.StandardEnv(),
		Ephemeris: ephem.NewAnalytic(),
	})
}

func observed(el, az float64) astrom.Observed {
	return astrom.Observed{Azimuth: az, Zenith: math.Pi/2 - el}
}

func testResults(c *astrom.Context) []batch.Result {
	eh, _ := c.SunToObserver()
	sunRA, sunDec := astro.ToSpherical(eh.Neg())
	return []batch.Result{
		{Target: batch.Target{Name: "Low", Mag: 1}, Observed: observed(0.1, 1)},
		{Target: batch.Target{Name: "Below", Mag: 2}, Observed: observed(-0.2, 2)},
		{Target: batch.Target{Name: "High", Mag: 0.5}, Observed: observed(1.2, 3), RoundTrip: astro.MasToRad},
		{
			Target:   batch.Target{Name: "Sunward", Catalog: astrom.Catalog{RA: sunRA, Dec: sunDec + 0.05}},
			Observed: observed(0.5, 4),
		},
	}
}

func TestBuild(t *testing.T) {
	c := testContext()
	r := Build(testTime, "Test", "analytic", c, testResults(c))

	if len(r.Rows) != 4 {
		t.Fatalf("%d rows", len(r.Rows))
	}
	if math.Abs(r.Site.Latitude-0.8*astro.RadToDeg) > 1e-12 || r.Site.Name != "Test" {
		t.Errorf("site = %+v", r.Site)
	}
	if r.Warnings != "ok" {
		t.Errorf("warnings = %q", r.Warnings)
	}
	if want := c.EquationOfOrigins() * astro.RadToDeg * 3600; math.Abs(r.EquationOfOrigins-want) > 1e-9 {
		t.Errorf("EO = %v, want %v", r.EquationOfOrigins, want)
	}

	high := r.Rows[2]
	if math.Abs(high.Elevation-1.2*astro.RadToDeg) > 1e-12 || math.Abs(high.Azimuth-3*astro.RadToDeg) > 1e-12 {
		t.Errorf("High = %+v", high)
	}
	if math.Abs(high.RoundTrip-1) > 1e-9 {
		t.Errorf("RoundTrip = %v mas, want 1", high.RoundTrip)
	}

	sunward := r.Rows[3]
	if math.Abs(sunward.SunSeparation-0.05*astro.RadToDeg) > 1e-9 || sunward.SunTier != "glare" {
		t.Errorf("Sunward separation %v, tier %q", sunward.SunSeparation, sunward.SunTier)
	}
}

func TestVisible(t *testing.T) {
	c := testContext()
	r := Build(testTime, "Test", "analytic", c, testResults(c))

	vis := r.Visible()
	var names []string
	for _, row := range vis {
		names = append(names, row.Name)
	}
	if got := strings.Join(names, ","); got != "High,Sunward,Low" {
		t.Errorf("Visible = %s", got)
	}
}

func TestWriteJSON(t *testing.T) {
	c := testContext()
	r := Build(testTime, "Test", "analytic", c, testResults(c))

	var buf bytes.Buffer
	if err := r.WriteJSON(&buf); err != nil {
		t.Fatal(err)
	}

	var decoded Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !decoded.Time.Equal(testTime) || len(decoded.Rows) != 4 || decoded.Rows[0].Name != "Low" {
		t.Errorf("decoded = %+v", decoded)
	}
	if !strings.Contains(buf.String(), `"elevation_deg"`) {
		t.Error("missing elevation_deg field")
	}
	// Unchecked round trips are omitted.
	if strings.Count(buf.String(), `"roundtrip_mas"`) != 1 {
		t.Errorf("roundtrip_mas should appear once:\n%s", buf.String())
	}
}

func TestWriteTable(t *testing.T) {
	c := testContext()
	r := Build(testTime, "Test", "analytic", c, testResults(c))

	var buf bytes.Buffer
	r.WriteTable(&buf)
	out := buf.String()

	for _, want := range []string{"Test @ 2024-06-21T22:00:00Z", "High", "Sunward", "RT mas", "Total: 3 of 4"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Below") {
		t.Error("table lists a source below the horizon")
	}

	empty := &Report{Time: testTime, Site: SiteInfo{Name: "Empty"}}
	buf.Reset()
	empty.WriteTable(&buf)
	if !strings.Contains(buf.String(), "No sources above the horizon") {
		t.Errorf("empty table:\n%s", buf.String())
	}
}

func TestFormatRA(t *testing.T) {
	tests := []struct {
		rad  float64
		want string
	}{
		{0, "00h00m00.0s"},
		{math.Pi, "12h00m00.0s"},
		{-math.Pi / 2, "18h00m00.0s"},
		{2*math.Pi - 1e-9, "00h00m00.0s"},
		{(6 + 45.0/60 + 8.9/3600) * math.Pi / 12, "06h45m08.9s"},
	}
	for _, tt := range tests {
		if got := FormatRA(tt.rad); got != tt.want {
			t.Errorf("FormatRA(%v) = %q, want %q", tt.rad, got, tt.want)
		}
	}
}

func TestFormatDec(t *testing.T) {
	tests := []struct {
		deg  float64
		want string
	}{
		{0, "+00°00′00″"},
		{90, "+90°00′00″"},
		{-0.5, "-00°30′00″"},
		{-16.7161, "-16°42′58″"},
		{38.78369, "+38°47′01″"},
	}
	for _, tt := range tests {
		if got := FormatDec(tt.deg * astro.DegToRad); got != tt.want {
			t.Errorf("FormatDec(%v) = %q, want %q", tt.deg, got, tt.want)
		}
	}
}

func TestTruncateStr(t *testing.T) {
	if truncateStr("Alpha Centauri A", 14) != "Alpha Centau.." || truncateStr("Vega", 14) != "Vega" {
		t.Error("truncateStr")
	}
}
