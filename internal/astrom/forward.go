package astrom

import (
	"math"

	"github.com/litescript/ls-astrom/internal/astro"
)

const (
	// km/s to au per Julian year.
	kmsToAUYear = astro.DaySec * 365250.0 / astro.AU

	// Light time for 1 au in Julian years.
	auLightYears = astro.LightTimeAU / astro.DaySec / astro.JulianYear

	// Light time for 1 au in days.
	auLightDays = astro.LightTimeAU / astro.DaySec
)

// SpaceMotion applies proper motion over pmt Julian years, including the
// Rømer effect, and parallax for an observer at pob (barycentric, au). It
// returns the coordinate direction as a unit vector.
func SpaceMotion(src Catalog, pmt float64, pob astro.Vec3) astro.Vec3 {
	sr, cr := math.Sincos(src.RA)
	sd, cd := math.Sincos(src.Dec)
	p := astro.Vec3{X: cr * cd, Y: sr * cd, Z: sd}

	dt := pmt + p.Dot(pob)*auLightYears
	pxr := src.Parallax * astro.ArcsecToRad
	w := kmsToAUYear * src.RV * pxr
	pdz := src.PMDec * p.Z
	pm := astro.Vec3{
		X: -src.PMRA*sr - pdz*cr + w*p.X,
		Y: src.PMRA*cr - pdz*sr + w*p.Y,
		Z: src.PMDec*cd + w*p.Z,
	}

	return p.Add(pm.Scale(dt).Sub(pob.Scale(pxr))).Normalized()
}

// Deflect applies light deflection by a body of mass bm (solar masses) to
// direction p. q is the unit vector from the body to the source, e the unit
// vector from the body to the observer and em the distance between them
// (au). dlim keeps the correction finite as the source approaches the body.
func Deflect(bm float64, p, q, e astro.Vec3, em, dlim float64) astro.Vec3 {
	qdqpe := q.Dot(q.Add(e))
	w := bm * astro.SchwarzschildRadius / em / math.Max(qdqpe, dlim)
	return p.AddScaled(w, p.Cross(e.Cross(q)))
}

// DeflectSun applies light deflection by the Sun; e and em locate the
// observer relative to the Sun. The limiter tightens for observers inside
// 1 au.
func DeflectSun(p, e astro.Vec3, em float64) astro.Vec3 {
	em2 := math.Max(em*em, 1)
	return Deflect(1, p, p, e, em, 1e-6/em2)
}

// DeflectBodies applies light deflection by each body in turn to the
// direction sc seen by an observer at ob (barycentric, au). A body whose
// separation from the source is within its limiter is skipped.
func DeflectBodies(bodies []Body, ob, sc astro.Vec3) astro.Vec3 {
	sn := sc
	for _, b := range bodies {
		v := ob.Sub(b.PV.P)

		// Back to when the light passed the body, unless the source is
		// behind the observer.
		dt := math.Min(sn.Dot(v)*auLightDays, 0)
		e, em := v.AddScaled(-dt, b.PV.V).Unit()

		if sn.Sep(e.Neg()) <= b.Limiter {
			continue
		}
		sn = Deflect(b.Mass, sn, sn, e, em, b.Limiter*b.Limiter/2)
	}
	return sn
}

// Aberrate applies stellar aberration for an observer moving at v (units of
// c) with reciprocal Lorentz factor bm1, at distance s au from the Sun.
func Aberrate(pnat, v astro.Vec3, s, bm1 float64) astro.Vec3 {
	pdv := pnat.Dot(v)
	w1 := 1 + pdv/(1+bm1)
	w2 := astro.SchwarzschildRadius / s

	p := pnat.Scale(bm1).AddScaled(w1, v).AddScaled(w2, v.Sub(pnat.Scale(pdv)))
	return p.Normalized()
}

// CatalogToIntermediate transforms a catalogue place to CIRS, with light
// deflection by the Sun only.
func (c *Context) CatalogToIntermediate(src Catalog) (ri, di float64) {
	pco := SpaceMotion(src, c.pmt, c.eb)
	return c.intermediate(DeflectSun(pco, c.eh, c.em))
}

// CatalogToIntermediateBodies is CatalogToIntermediate with light
// deflection by the given bodies, in order. The Sun is not implied.
func (c *Context) CatalogToIntermediateBodies(src Catalog, bodies []Body) (ri, di float64, err error) {
	if err := validateBodies(bodies); err != nil {
		return 0, 0, err
	}
	pco := SpaceMotion(src, c.pmt, c.eb)
	ri, di = c.intermediate(DeflectBodies(bodies, c.eb, pco))
	return ri, di, nil
}

// AstrometricToIntermediate transforms an astrometric place, with space
// motion already applied, to CIRS.
func (c *Context) AstrometricToIntermediate(rc, dc float64) (ri, di float64) {
	pco := astro.FromSpherical(rc, dc)
	return c.intermediate(DeflectSun(pco, c.eh, c.em))
}

// intermediate applies aberration and the BPN rotation to a natural
// direction.
func (c *Context) intermediate(pnat astro.Vec3) (ri, di float64) {
	ppr := Aberrate(pnat, c.v, c.em, c.bm1)
	w, di := astro.ToSpherical(c.bpn.Apply(ppr))
	return astro.NormalizeAngle(w), di
}
