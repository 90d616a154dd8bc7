package astrom

import (
	"math"

	"github.com/litescript/ls-astrom/internal/astro"
	"github.com/litescript/ls-astrom/internal/earth"
	"github.com/litescript/ls-astrom/internal/ephem"
	"github.com/litescript/ls-astrom/internal/precnut"
	"github.com/litescript/ls-astrom/internal/timescale"
)

// Sane range of site heights, metres.
const (
	MinHeight = -11e3
	MaxHeight = 100e3
)

// Params are the inputs to Build.
type Params struct {
	TT, UT1   timescale.Date // TT also serves as TDB
	Site      Site
	Polar     Polar
	Env       earth.Env
	Nutation  precnut.Model
	Ellipsoid earth.Ellipsoid
	Ephemeris ephem.Earth // nil selects the analytic ephemeris
}

// Build assembles the context for a terrestrial observer. It never fails:
// degraded inputs are repaired and reported through Warnings.
func Build(p Params) *Context {
	eph := p.Ephemeris
	if eph == nil {
		eph = ephem.NewAnalytic()
	}

	npb := precnut.Matrix(p.TT, p.Nutation)
	x, y := precnut.CIP(npb)
	s := precnut.S06(p.TT, x, y)
	refa, refb := earth.Refraction(p.Env)

	c := NewTerrestrial(TerrestrialParams{
		TDB:       p.TT,
		Earth:     eph.Earth(p.TT),
		X:         x,
		Y:         y,
		S:         s,
		ERA:       earth.ERA(p.UT1),
		SP:        earth.TIOLocator(p.TT),
		Site:      p.Site,
		Polar:     p.Polar,
		Ellipsoid: p.Ellipsoid,
		RefA:      refa,
		RefB:      refb,
	})
	c.eo = precnut.EquationOfOrigins(npb, s)
	return c
}

// TerrestrialParams supply every Earth-orientation quantity explicitly.
type TerrestrialParams struct {
	TDB        timescale.Date
	Earth      ephem.EarthState
	X, Y, S    float64 // CIP and CIO locator
	ERA        float64
	SP         float64 // TIO locator
	Site       Site
	Polar      Polar
	Ellipsoid  earth.Ellipsoid
	RefA, RefB float64
}

// NewTerrestrial builds a context for a terrestrial observer from explicit
// Earth-orientation inputs. Diurnal aberration is carried by the observer's
// velocity rather than the observed transform.
func NewTerrestrial(p TerrestrialParams) *Context {
	site, ell, warn := sanitize(p.Site, p.Ellipsoid)
	if p.Earth.OutOfRange {
		warn |= WarnEphemerisRange
	}

	c := &Context{site: site, warn: warn}
	c.setLocal(p.SP, p.ERA, site, p.Polar, p.RefA, p.RefB)

	bpn := precnut.C2IXYS(p.X, p.Y, p.S)
	pv, err := earth.ObserverPV(ell, site.Longitude, site.Latitude, site.Height, c.pom, p.ERA)
	if err != nil {
		pv = astro.PV{}
	}
	c.setBarycentric(p.TDB, bpn.ApplyTPV(pv), p.Earth)

	c.bpn = bpn
	c.x, c.y, c.s = p.X, p.Y, p.S
	return c
}

// NewBarycentric builds a context for an observer at geocentric position
// and velocity pv (GCRS, m and m/s), with the Earth's state st. Only the
// catalogue and intermediate transforms are meaningful; the frame is GCRS,
// so BPN is the identity.
func NewBarycentric(tdb timescale.Date, pv astro.PV, st ephem.EarthState) *Context {
	c := &Context{}
	if st.OutOfRange {
		c.warn = WarnEphemerisRange
	}
	c.setBarycentric(tdb, pv, st)
	return c
}

// NewGeocentric builds a context for an observer at the geocentre.
func NewGeocentric(tdb timescale.Date, st ephem.EarthState) *Context {
	return NewBarycentric(tdb, astro.PV{}, st)
}

// NewIntermediate builds a geocentric context for transforms between the
// catalogue and CIRS, computing precession-nutation with the given model.
// A nil ephemeris selects the analytic one.
func NewIntermediate(tdb timescale.Date, eph ephem.Earth, model precnut.Model) *Context {
	if eph == nil {
		eph = ephem.NewAnalytic()
	}
	npb := precnut.Matrix(tdb, model)
	x, y := precnut.CIP(npb)
	s := precnut.S06(tdb, x, y)

	c := NewIntermediateXYS(tdb, eph.Earth(tdb), x, y, s)
	c.eo = precnut.EquationOfOrigins(npb, s)
	return c
}

// NewIntermediateXYS is NewIntermediate with the CIP and CIO locator
// supplied.
func NewIntermediateXYS(tdb timescale.Date, st ephem.EarthState, x, y, s float64) *Context {
	c := NewGeocentric(tdb, st)
	c.bpn = precnut.C2IXYS(x, y, s)
	c.x, c.y, c.s = x, y, s
	return c
}

// ObservedParams are the inputs to NewObservedOnly.
type ObservedParams struct {
	SP, ERA    float64
	Site       Site
	Polar      Polar
	Ellipsoid  earth.Ellipsoid
	RefA, RefB float64
}

// NewObservedOnly builds a context for transforms between CIRS and the
// observed place only. Diurnal aberration is applied in the observed
// transform. Catalogue transforms on the result are not meaningful.
func NewObservedOnly(p ObservedParams) *Context {
	site, ell, warn := sanitize(p.Site, p.Ellipsoid)

	c := &Context{site: site, warn: warn, bpn: astro.Identity(), bm1: 1, em: 1}
	c.setLocal(p.SP, p.ERA, site, p.Polar, p.RefA, p.RefB)

	pv, err := earth.ObserverPV(ell, site.Longitude, site.Latitude, site.Height, c.pom, p.ERA)
	if err == nil {
		c.diurab = math.Sqrt(pv.V.X*pv.V.X+pv.V.Y*pv.V.Y) / astro.SpeedOfLight
	}
	return c
}

// WithEarthRotation returns a copy of the context updated to a new Earth
// rotation angle. Only the local rotation angle changes; it is a cheap way
// to step a context through a short interval.
func (c *Context) WithEarthRotation(theta float64) *Context {
	n := *c
	n.era = theta
	n.eral = theta + c.along
	return &n
}

// WithUT1 is WithEarthRotation for the Earth rotation angle at ut1.
func (c *Context) WithUT1(ut1 timescale.Date) *Context {
	return c.WithEarthRotation(earth.ERA(ut1))
}

// setBarycentric fills the observer-motion quantities from the Earth's
// state and the observer's geocentric position and velocity (m, m/s).
func (c *Context) setBarycentric(tdb timescale.Date, pv astro.PV, st ephem.EarthState) {
	c.pmt = tdb.DaysSinceJ2000() / astro.JulianYear

	dp := pv.P.Scale(1 / astro.AU)
	dv := pv.V.Scale(astro.DaySec / astro.AU)

	c.eb = st.Barycentric.P.Add(dp)
	c.eh, c.em = st.Heliocentric.Add(dp).Unit()
	c.v = st.Barycentric.V.Add(dv).Scale(astro.LightTimeAU / astro.DaySec)
	c.bm1 = math.Sqrt(1 - c.v.Dot(c.v))
	c.bpn = astro.Identity()
}

// setLocal fills the Earth-rotation and site quantities.
func (c *Context) setLocal(sp, theta float64, site Site, pm Polar, refa, refb float64) {
	r := astro.Identity().
		RotateZ(theta + sp).
		RotateY(-pm.XP).
		RotateX(-pm.YP).
		RotateZ(site.Longitude)

	a, b := r[0][0], r[0][1]
	if a != 0 || b != 0 {
		c.eral = math.Atan2(b, a)
	}
	c.xpl = math.Atan2(r[0][2], math.Sqrt(a*a+b*b))
	if r[1][2] != 0 || r[2][2] != 0 {
		c.ypl = -math.Atan2(r[1][2], r[2][2])
	}
	c.along = astro.NormalizeAngleSigned(c.eral - theta)
	c.sphi, c.cphi = math.Sin(site.Latitude), math.Cos(site.Latitude)

	c.era, c.sp = theta, sp
	c.pom = earth.PolarMotion(pm.XP, pm.YP, sp)
	c.refa, c.refb = refa, refb
}

// sanitize repairs site coordinates and the ellipsoid.
func sanitize(s Site, e earth.Ellipsoid) (Site, earth.Ellipsoid, Warning) {
	var w Warning

	if !finite(s.Longitude) {
		s.Longitude = 0
		w |= WarnSiteDegraded
	}
	switch {
	case !finite(s.Latitude):
		s.Latitude = 0
		w |= WarnSiteDegraded
	case math.Abs(s.Latitude) > math.Pi/2:
		s.Latitude = math.Copysign(math.Pi/2, s.Latitude)
		w |= WarnSiteDegraded
	}
	switch {
	case !finite(s.Height):
		s.Height = 0
		w |= WarnSiteDegraded
	case s.Height < MinHeight:
		s.Height = MinHeight
		w |= WarnSiteDegraded
	case s.Height > MaxHeight:
		s.Height = MaxHeight
		w |= WarnSiteDegraded
	}

	if _, _, err := e.Params(); err != nil {
		e = earth.WGS84
		w |= WarnEllipsoid
	}
	return s, e, w
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
