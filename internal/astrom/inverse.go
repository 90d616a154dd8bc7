package astrom

import (
	"github.com/litescript/ls-astrom/internal/astro"
)

// Fixed iteration counts for removing aberration and light deflection.
// Both corrections are small enough that these passes converge to well
// below 1e-12 rad.
const (
	aberrationPasses = 3
	deflectionPasses = 5
)

// IntermediateToAstrometric transforms a CIRS place to an astrometric
// place, removing aberration and light deflection by the Sun. Space motion
// is not removed.
func (c *Context) IntermediateToAstrometric(ri, di float64) (rc, dc float64) {
	pnat := c.natural(ri, di)
	pco := solve(pnat, deflectionPasses, func(p astro.Vec3) astro.Vec3 {
		return DeflectSun(p, c.eh, c.em)
	})
	return spherical(pco)
}

// IntermediateToAstrometricBodies is IntermediateToAstrometric with light
// deflection by the given bodies, in order.
func (c *Context) IntermediateToAstrometricBodies(ri, di float64, bodies []Body) (rc, dc float64, err error) {
	if err := validateBodies(bodies); err != nil {
		return 0, 0, err
	}
	pnat := c.natural(ri, di)
	pco := solve(pnat, deflectionPasses, func(p astro.Vec3) astro.Vec3 {
		return DeflectBodies(bodies, c.eb, p)
	})
	rc, dc = spherical(pco)
	return rc, dc, nil
}

// natural rotates a CIRS place back to the GCRS and removes aberration.
func (c *Context) natural(ri, di float64) astro.Vec3 {
	ppr := c.bpn.ApplyT(astro.FromSpherical(ri, di))
	return solve(ppr, aberrationPasses, func(p astro.Vec3) astro.Vec3 {
		return Aberrate(p, c.v, c.em, c.bm1)
	})
}

// solve finds p such that f(p) ≈ target by repeatedly subtracting the
// displacement f introduces at the current estimate.
func solve(target astro.Vec3, passes int, f func(astro.Vec3) astro.Vec3) astro.Vec3 {
	var d astro.Vec3
	out := target
	for i := 0; i < passes; i++ {
		before := target.Sub(d).Normalized()
		d = f(before).Sub(before)
		out = target.Sub(d).Normalized()
	}
	return out
}

func spherical(p astro.Vec3) (ra, dec float64) {
	ra, dec = astro.ToSpherical(p)
	return astro.NormalizeAngle(ra), dec
}
