// Package precnut provides the IAU 2006 precession and the nutation models
// used to build the celestial-to-intermediate rotation, together with the CIO
// locator s and the equation of the origins.
package precnut

import (
	"math"

	"github.com/litescript/ls-astrom/internal/astro"
	"github.com/litescript/ls-astrom/internal/timescale"
)

// FW holds the Fukushima-Williams precession angles, radians.
type FW struct {
	Gamma   float64 // γ̄: GCRS right ascension of the intersection of the ecliptic and the GCRS equator
	Phi     float64 // φ̄: obliquity of the ecliptic on the GCRS equator
	Psi     float64 // ψ̄: ecliptic longitude of that intersection
	Epsilon float64 // εA: mean obliquity of date
}

// FukushimaWilliams returns the IAU 2006 precession angles (including frame
// bias) for a TT date.
func FukushimaWilliams(tt timescale.Date) FW {
	t := tt.Centuries()
	return FW{
		Gamma: poly(t, -0.052928, 10.556378, 0.4932044, -0.00031238, -0.000002788, 0.0000000260) *
			astro.ArcsecToRad,
		Phi: poly(t, 84381.412819, -46.811016, 0.0511268, 0.00053289, -0.000000440, -0.0000000176) *
			astro.ArcsecToRad,
		Psi: poly(t, -0.041775, 5038.481484, 1.5584175, -0.00018522, -0.000026452, -0.0000000148) *
			astro.ArcsecToRad,
		Epsilon: MeanObliquity(tt),
	}
}

// MeanObliquity returns the IAU 2006 mean obliquity of the ecliptic.
func MeanObliquity(tt timescale.Date) float64 {
	t := tt.Centuries()
	return poly(t, 84381.406, -46.836769, -0.0001831, 0.00200340, -0.000000576, -0.0000000434) *
		astro.ArcsecToRad
}

// FWMatrix forms the rotation matrix from Fukushima-Williams angles. With
// psi and eps including nutation the result is the full NPB matrix.
func FWMatrix(gamb, phib, psi, eps float64) astro.Mat3 {
	return astro.Identity().
		RotateZ(gamb).
		RotateX(phib).
		RotateZ(-psi).
		RotateX(-eps)
}

// poly evaluates c[0] + c[1]·t + c[2]·t² + ... by Horner's rule.
func poly(t float64, c ...float64) float64 {
	var w float64
	for i := len(c) - 1; i >= 0; i-- {
		w = w*t + c[i]
	}
	return w
}

// fmodArcsec reduces an angle in arcseconds to (-TurnArcsec, TurnArcsec) and
// converts it to radians.
func fmodArcsec(a float64) float64 {
	return math.Mod(a, astro.TurnArcsec) * astro.ArcsecToRad
}
