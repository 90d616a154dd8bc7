package ephem

import (
	"math"

	"github.com/soniakeys/meeus/v3/moonposition"

	"github.com/litescript/ls-astrom/internal/astro"
	"github.com/litescript/ls-astrom/internal/timescale"
)

// Span over which the Keplerian elements are fitted, Julian centuries from
// J2000 (1800-2050).
const (
	analyticMinT = -2.0
	analyticMaxT = 0.5
)

// Earth/Moon mass ratio plus one.
const earthMoonRatio = 82.30057

// elements holds mean orbital elements and their rates per Julian century:
// a (au), e, I, L, ϖ, Ω (degrees), J2000 ecliptic and equinox.
type elements struct {
	a, e, i, l, peri, node       float64
	da, de, di, dl, dperi, dnode float64
}

// Standish, "Keplerian Elements for Approximate Positions of the Major
// Planets", table 1.
var planetElements = map[Body]elements{
	Mercury: {0.38709927, 0.20563593, 7.00497902, 252.25032350, 77.45779628, 48.33076593,
		0.00000037, 0.00001906, -0.00594749, 149472.67411175, 0.16047689, -0.12534081},
	Venus: {0.72333566, 0.00677672, 3.39467605, 181.97909950, 131.60246718, 76.67984255,
		0.00000390, -0.00004107, -0.00078890, 58517.81538729, 0.00268329, -0.27769418},
	EarthMoon: {1.00000261, 0.01671123, -0.00001531, 100.46457166, 102.93768193, 0.0,
		0.00000562, -0.00004392, -0.01294668, 35999.37244981, 0.32327364, 0.0},
	Mars: {1.52371034, 0.09339410, 1.84969142, -4.55343205, -23.94362959, 49.55953891,
		0.00001847, 0.00007882, -0.00813131, 19140.30268499, 0.44441088, -0.29257343},
	Jupiter: {5.20288700, 0.04838624, 1.30439695, 34.39644051, 14.72847983, 100.47390909,
		-0.00011607, -0.00013253, -0.00183714, 3034.74612775, 0.21252668, 0.20469106},
	Saturn: {9.53667594, 0.05386179, 2.48599187, 49.95424423, 92.59887831, 113.66242448,
		-0.00125060, -0.00050991, 0.00193609, 1222.49362201, -0.41897216, -0.28867794},
	Uranus: {19.18916464, 0.04725744, 0.77263783, 313.23810451, 170.95427630, 74.01692503,
		-0.00196176, -0.00004397, -0.00242939, 428.48202785, 0.40805281, 0.04240589},
	Neptune: {30.06992276, 0.00859048, 1.77004347, -55.12002969, 44.96476227, 131.78422574,
		0.00026291, 0.00005105, 0.00035372, 218.45945325, -0.32241464, -0.00508664},
}

// Planets in the order their masses are summed for the barycentre.
var planetOrder = []Body{Mercury, Venus, EarthMoon, Mars, Jupiter, Saturn, Uranus, Neptune}

// Analytic is a self-contained ephemeris built from mean Keplerian elements,
// with the Sun's barycentric offset from the planetary masses and the Earth
// separated from the Earth-Moon barycentre using the Meeus lunar theory.
// Accuracy is a few 1e-5 au in position and 1e-6 au/day in velocity, enough
// for stellar aberration at the milliarcsecond level.
type Analytic struct{}

// NewAnalytic returns the analytic ephemeris.
func NewAnalytic() Analytic {
	return Analytic{}
}

// Earth implements Earth.
func (Analytic) Earth(tdb timescale.Date) EarthState {
	t := tdb.Centuries()
	sun := sunBarycentric(t)

	helio := earthHeliocentric(tdb)
	return EarthState{
		Heliocentric: helio.P,
		Barycentric:  helio.Add(sun),
		OutOfRange:   t < analyticMinT || t > analyticMaxT,
	}
}

// Body implements Bodies.
func (Analytic) Body(b Body, tdb timescale.Date) (astro.PV, error) {
	t := tdb.Centuries()
	sun := sunBarycentric(t)

	switch b {
	case Sun:
		return sun, nil
	case SSB:
		return astro.PV{}, nil
	case EarthBody:
		return earthHeliocentric(tdb).Add(sun), nil
	}

	el, ok := planetElements[b]
	if !ok {
		return astro.PV{}, ErrUnknownBody
	}
	return el.heliocentric(t).Add(sun), nil
}

func sunBarycentric(t float64) astro.PV {
	var sum astro.PV
	var msum float64
	for _, b := range planetOrder {
		m := CatalogByID[b].Mass
		sum = sum.Add(planetElements[b].heliocentric(t).Scale(m))
		msum += m
	}
	return sum.Scale(-1 / (1 + msum))
}

func earthHeliocentric(tdb timescale.Date) astro.PV {
	emb := planetElements[EarthMoon].heliocentric(tdb.Centuries())

	// Moon velocity by central difference.
	const h = 0.01
	m0 := moonGeocentric(tdb)
	mv := moonGeocentric(tdb.AddDays(h)).Sub(moonGeocentric(tdb.AddDays(-h))).Scale(1 / (2 * h))

	return emb.Sub(astro.PV{P: m0, V: mv}.Scale(1 / earthMoonRatio))
}

// General precession in longitude, degrees per century.
const precessionRate = 1.3969713

// moonGeocentric returns the Moon's geocentric position, au, J2000 equatorial.
func moonGeocentric(tdb timescale.Date) astro.Vec3 {
	lon, lat, dist := moonposition.Position(tdb.JD())

	// Mean equinox of date back to J2000.
	l := lon.Rad() - precessionRate*astro.DegToRad*tdb.Centuries()

	r := dist * 1000 / astro.AU
	return astro.EclipticToEquatorial(astro.FromSpherical(l, lat.Rad()).Scale(r))
}

// heliocentric returns the position and velocity at t Julian centuries from
// J2000, rotated to the equator.
func (el elements) heliocentric(t float64) astro.PV {
	a := el.a + el.da*t
	e := el.e + el.de*t
	inc := (el.i + el.di*t) * astro.DegToRad
	l := el.l + el.dl*t
	peri := el.peri + el.dperi*t
	node := (el.node + el.dnode*t) * astro.DegToRad

	omega := peri*astro.DegToRad - node
	m := math.Remainder((l-peri)*astro.DegToRad, astro.TwoPi)
	n := (el.dl - el.dperi) * astro.DegToRad / astro.JulianCentury

	ea := solveKepler(m, e)
	se, ce := math.Sincos(ea)
	q := math.Sqrt(1 - e*e)
	edot := n / (1 - e*ce)

	xp, yp := a*(ce-e), a*q*se
	vxp, vyp := -a*se*edot, a*q*ce*edot

	so, co := math.Sincos(omega)
	sn, cn := math.Sincos(node)
	si, ci := math.Sincos(inc)
	r := [3][2]float64{
		{co*cn - so*sn*ci, -so*cn - co*sn*ci},
		{co*sn + so*cn*ci, -so*sn + co*cn*ci},
		{so * si, co * si},
	}
	rot := func(x, y float64) astro.Vec3 {
		return astro.EclipticToEquatorial(astro.Vec3{
			X: r[0][0]*x + r[0][1]*y,
			Y: r[1][0]*x + r[1][1]*y,
			Z: r[2][0]*x + r[2][1]*y,
		})
	}
	return astro.PV{P: rot(xp, yp), V: rot(vxp, vyp)}
}

// solveKepler solves E - e·sin E = M by Newton-Raphson.
func solveKepler(m, e float64) float64 {
	ea := m + e*math.Sin(m)
	for i := 0; i < 30; i++ {
		d := (m - (ea - e*math.Sin(ea))) / (1 - e*math.Cos(ea))
		ea += d
		if math.Abs(d) < 1e-15 {
			break
		}
	}
	return ea
}
