package ephem

import (
	"errors"
	"sort"

	"github.com/litescript/ls-astrom/internal/astro"
	"github.com/litescript/ls-astrom/internal/timescale"
)

// ErrOutsideTable is returned when a date falls outside a tabulated span.
var ErrOutsideTable = errors.New("ephem: date outside tabulated span")

// Record is one tabulated state.
type Record struct {
	JD float64 // TDB
	PV astro.PV
}

// Table holds states of one body at increasing TDB and interpolates between
// them with cubic Hermite polynomials, which use both position and velocity.
type Table struct {
	Body    Body
	Records []Record
}

// NewTable sorts the records by date.
func NewTable(b Body, recs []Record) *Table {
	sorted := make([]Record, len(recs))
	copy(sorted, recs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].JD < sorted[j].JD })
	return &Table{Body: b, Records: sorted}
}

// Span returns the first and last tabulated dates.
func (t *Table) Span() (first, last float64) {
	if len(t.Records) == 0 {
		return 0, 0
	}
	return t.Records[0].JD, t.Records[len(t.Records)-1].JD
}

// State interpolates the state at a TDB date.
func (t *Table) State(tdb timescale.Date) (astro.PV, error) {
	n := len(t.Records)
	if n == 0 {
		return astro.PV{}, ErrOutsideTable
	}
	jd := tdb.JD()
	first, last := t.Span()
	if jd < first || jd > last {
		return astro.PV{}, ErrOutsideTable
	}
	if n == 1 {
		return t.Records[0].PV, nil
	}

	i := sort.Search(n, func(i int) bool { return t.Records[i].JD >= jd })
	if i == 0 {
		i = 1
	}
	r0, r1 := t.Records[i-1], t.Records[i]
	h := r1.JD - r0.JD
	s := ((tdb.Hi - r0.JD) + tdb.Lo) / h

	return hermite(r0.PV, r1.PV, h, s), nil
}

// hermite evaluates the cubic Hermite interpolant at fraction s of an
// interval of length h days.
func hermite(a, b astro.PV, h, s float64) astro.PV {
	s2, s3 := s*s, s*s*s
	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2

	// Derivatives with respect to s, divided by h for d/dt.
	d00 := (6*s2 - 6*s) / h
	d10 := 3*s2 - 4*s + 1
	d01 := (-6*s2 + 6*s) / h
	d11 := 3*s2 - 2*s

	p := a.P.Scale(h00).AddScaled(h10*h, a.V).AddScaled(h01, b.P).AddScaled(h11*h, b.V)
	v := a.P.Scale(d00).AddScaled(d10, a.V).AddScaled(d01, b.P).AddScaled(d11, b.V)
	return astro.PV{P: p, V: v}
}

// Tabulated is a Source backed by tables for the Sun, the Earth and any
// deflecting bodies, as fetched from Horizons.
type Tabulated struct {
	tables map[Body]*Table
}

// NewTabulated builds a source from tables. The Sun and Earth tables are
// required for Earth.
func NewTabulated(tables ...*Table) *Tabulated {
	m := make(map[Body]*Table, len(tables))
	for _, t := range tables {
		m[t.Body] = t
	}
	return &Tabulated{tables: m}
}

// Earth implements Earth. Dates outside the tables are clamped to the
// nearest end and flagged OutOfRange.
func (s *Tabulated) Earth(tdb timescale.Date) EarthState {
	et, ok1 := s.tables[EarthBody]
	st, ok2 := s.tables[Sun]
	if !ok1 || !ok2 || len(et.Records) == 0 || len(st.Records) == 0 {
		return EarthState{OutOfRange: true}
	}

	var out bool
	eb, err := et.State(tdb)
	if err != nil {
		eb, out = clampState(et, tdb), true
	}
	sun, err := st.State(tdb)
	if err != nil {
		sun, out = clampState(st, tdb), true
	}
	return EarthState{
		Heliocentric: eb.P.Sub(sun.P),
		Barycentric:  eb,
		OutOfRange:   out,
	}
}

// Body implements Bodies.
func (s *Tabulated) Body(b Body, tdb timescale.Date) (astro.PV, error) {
	t, ok := s.tables[b]
	if !ok {
		return astro.PV{}, ErrUnknownBody
	}
	return t.State(tdb)
}

func clampState(t *Table, tdb timescale.Date) astro.PV {
	if tdb.JD() < t.Records[0].JD {
		return t.Records[0].PV
	}
	return t.Records[len(t.Records)-1].PV
}
