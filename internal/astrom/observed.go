package astrom

import (
	"fmt"
	"math"

	"github.com/litescript/ls-astrom/internal/astro"
)

// CoordType selects which pair of observed coordinates is supplied.
type CoordType int

const (
	CoordAzEl  CoordType = iota // azimuth (N=0, E=90°), elevation
	CoordHaDec                  // hour angle, declination
	CoordRaDec                  // right ascension (CIO based), declination
)

// String returns the selector name.
func (t CoordType) String() string {
	switch t {
	case CoordAzEl:
		return "az/el"
	case CoordHaDec:
		return "ha/dec"
	case CoordRaDec:
		return "ra/dec"
	default:
		return fmt.Sprintf("CoordType(%d)", int(t))
	}
}

// Observed is an observed place in its equivalent forms. All angles in
// radians.
type Observed struct {
	Azimuth   float64 // N=0, E=90°
	Zenith    float64 // zenith distance
	HourAngle float64
	Dec       float64
	RA        float64 // CIO based
}

// Elevation returns the observed altitude.
func (o Observed) Elevation() float64 {
	return math.Pi/2 - o.Zenith
}

// Limits on cos and sin of altitude in the refraction model.
const (
	minCosAlt = 1e-6
	minSinAlt = 0.05
)

// IntermediateToObserved transforms a CIRS place to the observed place,
// applying polar motion, diurnal aberration where not already in the
// context's velocity, and refraction.
func (c *Context) IntermediateToObserved(ri, di float64) Observed {
	v := astro.FromSpherical(ri-c.eral, di)

	// Polar motion.
	sx, cx := math.Sin(c.xpl), math.Cos(c.xpl)
	sy, cy := math.Sin(c.ypl), math.Cos(c.ypl)
	xhd := cx*v.X + sx*v.Z
	yhd := sx*sy*v.X + cy*v.Y - cx*sy*v.Z
	zhd := -sx*cy*v.X + sy*v.Y + cx*cy*v.Z

	// Diurnal aberration.
	f := 1 - c.diurab*yhd
	xhdt := f * xhd
	yhdt := f * (yhd + c.diurab)
	zhdt := f * zhd

	// To Cartesian Az/El (S=0, E=90°).
	xaet := c.sphi*xhdt - c.cphi*zhdt
	yaet := yhdt
	zaet := c.cphi*xhdt + c.sphi*zhdt

	var az float64
	if xaet != 0 || yaet != 0 {
		az = math.Atan2(yaet, -xaet)
	}

	r := math.Max(math.Sqrt(xaet*xaet+yaet*yaet), minCosAlt)
	z := math.Max(zaet, minSinAlt)
	del := refract(c.refa, c.refb, r, z)

	cosdel := 1 - del*del/2
	f = cosdel - del*z/r
	xaeo := xaet * f
	yaeo := yaet * f
	zaeo := cosdel*zaet + del*r

	zd := math.Atan2(math.Sqrt(xaeo*xaeo+yaeo*yaeo), zaeo)

	// Back to -HA, Dec.
	hmobs, dec := astro.ToSpherical(astro.Vec3{
		X: c.sphi*xaeo + c.cphi*zaeo,
		Y: yaeo,
		Z: -c.cphi*xaeo + c.sphi*zaeo,
	})

	return Observed{
		Azimuth:   astro.NormalizeAngle(az),
		Zenith:    zd,
		HourAngle: -hmobs,
		Dec:       dec,
		RA:        astro.NormalizeAngle(c.eral + hmobs),
	}
}

// ObservedToIntermediate transforms an observed place to CIRS. Refraction is
// removed by evaluating the model at the observed zenith distance, so the
// result differs from the exact inverse of IntermediateToObserved by a
// small fraction of the refraction.
func (c *Context) ObservedToIntermediate(t CoordType, a, b float64) (ri, di float64, err error) {
	var xaeo, yaeo, zaeo float64
	switch t {
	case CoordAzEl:
		ce, se := math.Cos(b), math.Sin(b)
		xaeo = -math.Cos(a) * ce
		yaeo = math.Sin(a) * ce
		zaeo = se
	case CoordHaDec, CoordRaDec:
		ha := a
		if t == CoordRaDec {
			ha = c.eral - a
		}
		m := astro.FromSpherical(-ha, b)
		xaeo = c.sphi*m.X - c.cphi*m.Z
		yaeo = m.Y
		zaeo = c.cphi*m.X + c.sphi*m.Z
	default:
		return 0, 0, fmt.Errorf("%v: %w", t, ErrUnknownCoordType)
	}

	var az float64
	if xaeo != 0 || yaeo != 0 {
		az = math.Atan2(yaeo, xaeo)
	}

	sz := math.Sqrt(xaeo*xaeo + yaeo*yaeo)
	zdt := math.Atan2(sz, zaeo) + unrefract(c.refa, c.refb, sz, zaeo)

	// To Cartesian Az/ZD, then -HA, Dec.
	ce := math.Sin(zdt)
	xaet := math.Cos(az) * ce
	yaet := math.Sin(az) * ce
	zaet := math.Cos(zdt)

	xmhda := c.sphi*xaet + c.cphi*zaet
	ymhda := yaet
	zmhda := -c.cphi*xaet + c.sphi*zaet

	// Diurnal aberration.
	f := 1 + c.diurab*ymhda
	xhd := f * xmhda
	yhd := f * (ymhda - c.diurab)
	zhd := f * zmhda

	// Polar motion.
	sx, cx := math.Sin(c.xpl), math.Cos(c.xpl)
	sy, cy := math.Sin(c.ypl), math.Cos(c.ypl)
	hma, di := astro.ToSpherical(astro.Vec3{
		X: cx*xhd + sx*sy*yhd - sx*cy*zhd,
		Y: cy*yhd + sy*zhd,
		Z: sx*xhd - cx*sy*yhd + cx*cy*zhd,
	})

	return astro.NormalizeAngle(c.eral + hma), di, nil
}

// refract returns the refraction for a topocentric direction with cos and
// sin of altitude r and z, from A·tan ζ + B·tan³ ζ with one Newton-Raphson
// step to evaluate it at the observed rather than the true zenith distance.
func refract(refa, refb, r, z float64) float64 {
	tz := r / z
	w := refb * tz * tz
	return (refa + w) * tz / (1 + (refa+3*w)/(z*z))
}

// unrefract returns the refraction to add to an observed zenith distance,
// evaluating the model directly at it.
func unrefract(refa, refb, sz, cz float64) float64 {
	tz := sz / math.Max(cz, minSinAlt)
	return (refa + refb*tz*tz) * tz
}

// CatalogToObserved transforms a catalogue place to the observed place.
func (c *Context) CatalogToObserved(src Catalog) Observed {
	ri, di := c.CatalogToIntermediate(src)
	return c.IntermediateToObserved(ri, di)
}

// ObservedToAstrometric transforms an observed place to an astrometric
// place.
func (c *Context) ObservedToAstrometric(t CoordType, a, b float64) (rc, dc float64, err error) {
	ri, di, err := c.ObservedToIntermediate(t, a, b)
	if err != nil {
		return 0, 0, err
	}
	rc, dc = c.IntermediateToAstrometric(ri, di)
	return rc, dc, nil
}
