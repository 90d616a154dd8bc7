package ephem

import (
	"errors"
	"math"
	"testing"

	"github.com/litescript/ls-astrom/internal/astro"
	"github.com/litescript/ls-astrom/internal/timescale"
)

// cubic is a test trajectory that Hermite interpolation reproduces exactly.
func cubic(jd float64) astro.PV {
	t := jd - 2460000
	return astro.PV{
		P: astro.Vec3{X: 1 + 0.01*t, Y: -0.5 + 0.002*t*t, Z: 1e-4 * t * t * t},
		V: astro.Vec3{X: 0.01, Y: 0.004 * t, Z: 3e-4 * t * t},
	}
}

func cubicTable(b Body) *Table {
	var recs []Record
	for jd := 2460004.0; jd >= 2460000; jd-- { // out of order on purpose
		recs = append(recs, Record{JD: jd, PV: cubic(jd)})
	}
	return NewTable(b, recs)
}

func TestTable_Sorted(t *testing.T) {
	tab := cubicTable(Sun)
	first, last := tab.Span()
	if first != 2460000 || last != 2460004 {
		t.Errorf("Span = %v, %v", first, last)
	}
}

func TestTable_StateExactForCubic(t *testing.T) {
	tab := cubicTable(Sun)

	for _, off := range []float64{0, 0.25, 1, 1.5, 2.875, 4} {
		got, err := tab.State(timescale.Date{Hi: 2460000, Lo: off})
		if err != nil {
			t.Fatalf("offset %v: %v", off, err)
		}
		want := cubic(2460000 + off)
		if d := got.P.Sub(want.P).Norm(); d > 1e-13 {
			t.Errorf("offset %v: position off by %g", off, d)
		}
		if d := got.V.Sub(want.V).Norm(); d > 1e-12 {
			t.Errorf("offset %v: velocity off by %g", off, d)
		}
	}
}

func TestTable_Outside(t *testing.T) {
	tab := cubicTable(Sun)
	for _, jd := range []float64{2459999.9, 2460004.1} {
		if _, err := tab.State(timescale.Date{Hi: jd}); !errors.Is(err, ErrOutsideTable) {
			t.Errorf("jd %v: err = %v, want ErrOutsideTable", jd, err)
		}
	}
	if _, err := (&Table{}).State(timescale.Date{Hi: 2460000}); !errors.Is(err, ErrOutsideTable) {
		t.Errorf("empty table: err = %v", err)
	}
}

func TestTabulated(t *testing.T) {
	sun := NewTable(Sun, []Record{
		{JD: 2460000, PV: astro.PV{P: astro.Vec3{X: 0.001}}},
		{JD: 2460002, PV: astro.PV{P: astro.Vec3{X: 0.001}}},
	})
	src := NewTabulated(sun, cubicTable(EarthBody))

	st := src.Earth(timescale.Date{Hi: 2460001})
	if st.OutOfRange {
		t.Error("inside span flagged out of range")
	}
	want := cubic(2460001)
	if d := st.Barycentric.P.Sub(want.P).Norm(); d > 1e-13 {
		t.Errorf("barycentric off by %g", d)
	}
	if math.Abs(st.Heliocentric.X-(want.P.X-0.001)) > 1e-13 {
		t.Errorf("heliocentric X = %v", st.Heliocentric.X)
	}

	// The Sun table ends before the Earth table; the Sun is clamped.
	if !src.Earth(timescale.Date{Hi: 2460003}).OutOfRange {
		t.Error("date past the Sun table not flagged")
	}

	if _, err := src.Body(Jupiter, timescale.Date{Hi: 2460001}); !errors.Is(err, ErrUnknownBody) {
		t.Errorf("err = %v, want ErrUnknownBody", err)
	}
	if !NewTabulated().Earth(timescale.Date{Hi: 2460001}).OutOfRange {
		t.Error("empty source not flagged")
	}
}
