// Package earth provides Earth orientation and observing-site quantities:
// the Earth rotation angle, the TIO locator and polar-motion matrix,
// geodetic to geocentric conversion, the observer's position and velocity,
// and refraction constants.
package earth

import (
	"math"

	"github.com/litescript/ls-astrom/internal/astro"
	"github.com/litescript/ls-astrom/internal/timescale"
)

// ERA returns the Earth rotation angle (IAU 2000) for a UT1 date, in [0, 2π).
func ERA(ut1 timescale.Date) float64 {
	d1, d2 := ut1.Hi, ut1.Lo
	if d1 > d2 {
		d1, d2 = d2, d1
	}
	t := d1 + (d2 - timescale.J2000)

	// Fractional part of T (days).
	f := math.Mod(d1, 1) + math.Mod(d2, 1)

	return astro.NormalizeAngle(astro.TwoPi * (f + 0.7790572732640 + 0.00273781191135448*t))
}

// TIOLocator returns s′, the position of the Terrestrial Intermediate Origin
// on the equator of the CIP, for a TT date.
func TIOLocator(tt timescale.Date) float64 {
	return -47e-6 * tt.Centuries() * astro.ArcsecToRad
}

// PolarMotion forms the matrix that rotates from the TIRS to the terrestrial
// frame, given the pole coordinates xp, yp and s′ (radians).
func PolarMotion(xp, yp, sp float64) astro.Mat3 {
	return astro.Identity().
		RotateZ(sp).
		RotateY(-xp).
		RotateX(-yp)
}
