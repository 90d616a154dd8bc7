package precnut

import (
	"math"

	"github.com/litescript/ls-astrom/internal/astro"
	"github.com/litescript/ls-astrom/internal/timescale"
)

// Matrix returns the classical bias-precession-nutation matrix (GCRS to true
// equator and equinox of date) for a TT date.
func Matrix(tt timescale.Date, model Model) astro.Mat3 {
	fw := FukushimaWilliams(tt)
	dpsi, deps := Nutation(tt, model)
	return FWMatrix(fw.Gamma, fw.Phi, fw.Psi+dpsi, fw.Epsilon+deps)
}

// CIP returns the GCRS coordinates of the Celestial Intermediate Pole, the
// bottom row of an NPB matrix.
func CIP(npb astro.Mat3) (x, y float64) {
	return npb[2][0], npb[2][1]
}

// C2IXYS forms the celestial-to-intermediate matrix from the CIP
// coordinates and the CIO locator.
func C2IXYS(x, y, s float64) astro.Mat3 {
	r2 := x*x + y*y
	var e float64
	if r2 > 0 {
		e = math.Atan2(y, x)
	}
	d := math.Atan(math.Sqrt(r2 / (1 - r2)))

	return astro.Identity().
		RotateZ(e).
		RotateY(d).
		RotateZ(-(e + s))
}

// EquationOfOrigins returns ERA - GST, the distance from the equinox to the
// CIO along the intermediate equator, given the NPB matrix and s.
func EquationOfOrigins(npb astro.Mat3, s float64) float64 {
	x, y, z := npb[2][0], npb[2][1], npb[2][2]
	ax := x / (1 + z)
	xs := 1 - ax*x
	ys := -ax * y
	zs := -x
	p := npb[0][0]*xs + npb[0][1]*ys + npb[0][2]*zs
	q := npb[1][0]*xs + npb[1][1]*ys + npb[1][2]*zs
	if p == 0 && q == 0 {
		return s
	}
	return s - math.Atan2(q, p)
}

// S06 returns the CIO locator s for a TT date given the CIP coordinates, using
// the IAU 2006 series for s + XY/2.
func S06(tt timescale.Date, x, y float64) float64 {
	t := tt.Centuries()
	fa := fundamentalArgs(t)

	w := sPoly
	for k, series := range sSeries {
		for i := len(series) - 1; i >= 0; i-- {
			term := &series[i]
			var a float64
			for j, n := range term.nfa {
				a += float64(n) * fa[j]
			}
			sa, ca := math.Sincos(a)
			w[k] += term.s*sa + term.c*ca
		}
	}

	return (w[0]+(w[1]+(w[2]+(w[3]+(w[4]+w[5]*t)*t)*t)*t)*t)*astro.ArcsecToRad - x*y/2
}

// fundamentalArgs returns the IERS 2003 arguments l, l', F, D, Ω, the mean
// longitudes of Venus and Earth, and the general accumulated precession.
func fundamentalArgs(t float64) [8]float64 {
	return [8]float64{
		fmodArcsec(poly(t, 485868.249036, 1717915923.2178, 31.8792, 0.051635, -0.00024470)),
		fmodArcsec(poly(t, 1287104.793048, 129596581.0481, -0.5532, 0.000136, -0.00001149)),
		fmodArcsec(poly(t, 335779.526232, 1739527262.8478, -12.7512, -0.001037, 0.00000417)),
		fmodArcsec(poly(t, 1072260.703692, 1602961601.2090, -6.3706, 0.006593, -0.00003169)),
		fmodArcsec(poly(t, 450160.398036, -6962890.5431, 7.4722, 0.007702, -0.00005939)),
		math.Mod(3.176146697+1021.3285546211*t, astro.TwoPi),
		math.Mod(1.753470314+628.3075849991*t, astro.TwoPi),
		(0.02438175 + 0.00000538691*t) * t,
	}
}

// sTerm is one term of the s + XY/2 series, arcseconds.
type sTerm struct {
	nfa  [8]int8
	s, c float64
}

// Polynomial part of s + XY/2, arcseconds.
var sPoly = [6]float64{94.00e-6, 3808.65e-6, -122.68e-6, -72574.11e-6, 27.98e-6, 15.62e-6}

// Periodic terms for t⁰ to t⁴.
var sSeries = [5][]sTerm{
	{
		{[8]int8{0, 0, 0, 0, 1, 0, 0, 0}, -2640.73e-6, 0.39e-6},
		{[8]int8{0, 0, 0, 0, 2, 0, 0, 0}, -63.53e-6, 0.02e-6},
		{[8]int8{0, 0, 2, -2, 3, 0, 0, 0}, -11.75e-6, -0.01e-6},
		{[8]int8{0, 0, 2, -2, 1, 0, 0, 0}, -11.21e-6, -0.01e-6},
		{[8]int8{0, 0, 2, -2, 2, 0, 0, 0}, 4.57e-6, 0},
		{[8]int8{0, 0, 2, 0, 3, 0, 0, 0}, -2.02e-6, 0},
		{[8]int8{0, 0, 2, 0, 1, 0, 0, 0}, -1.98e-6, 0},
		{[8]int8{0, 0, 0, 0, 3, 0, 0, 0}, 1.72e-6, 0},
		{[8]int8{0, 1, 0, 0, 1, 0, 0, 0}, 1.41e-6, 0.01e-6},
		{[8]int8{0, 1, 0, 0, -1, 0, 0, 0}, 1.26e-6, 0.01e-6},
		{[8]int8{1, 0, 0, 0, -1, 0, 0, 0}, 0.63e-6, 0},
		{[8]int8{1, 0, 0, 0, 1, 0, 0, 0}, 0.63e-6, 0},
		{[8]int8{0, 1, 2, -2, 3, 0, 0, 0}, -0.46e-6, 0},
		{[8]int8{0, 1, 2, -2, 1, 0, 0, 0}, -0.45e-6, 0},
		{[8]int8{0, 0, 4, -4, 4, 0, 0, 0}, -0.36e-6, 0},
		{[8]int8{0, 0, 1, -1, 1, -8, 12, 0}, 0.24e-6, 0.12e-6},
		{[8]int8{0, 0, 2, 0, 0, 0, 0, 0}, -0.32e-6, 0},
		{[8]int8{0, 0, 2, 0, 2, 0, 0, 0}, -0.28e-6, 0},
		{[8]int8{1, 0, 2, 0, 3, 0, 0, 0}, -0.27e-6, 0},
		{[8]int8{1, 0, 2, 0, 1, 0, 0, 0}, -0.26e-6, 0},
		{[8]int8{0, 0, 2, -2, 0, 0, 0, 0}, 0.21e-6, 0},
		{[8]int8{0, 1, -2, 2, -3, 0, 0, 0}, -0.19e-6, 0},
		{[8]int8{0, 1, -2, 2, -1, 0, 0, 0}, -0.18e-6, 0},
		{[8]int8{0, 0, 0, 0, 0, 8, -13, -1}, 0.10e-6, -0.05e-6},
		{[8]int8{0, 0, 0, 2, 0, 0, 0, 0}, -0.15e-6, 0},
		{[8]int8{2, 0, -2, 0, -1, 0, 0, 0}, 0.14e-6, 0},
		{[8]int8{0, 1, 2, -2, 2, 0, 0, 0}, 0.14e-6, 0},
		{[8]int8{1, 0, 0, -2, 1, 0, 0, 0}, -0.14e-6, 0},
		{[8]int8{1, 0, 0, -2, -1, 0, 0, 0}, -0.14e-6, 0},
		{[8]int8{0, 0, 4, -2, 4, 0, 0, 0}, -0.13e-6, 0},
		{[8]int8{0, 0, 2, -2, 4, 0, 0, 0}, 0.11e-6, 0},
		{[8]int8{1, 0, -2, 0, -3, 0, 0, 0}, -0.11e-6, 0},
		{[8]int8{1, 0, -2, 0, -1, 0, 0, 0}, -0.11e-6, 0},
	},
	{
		{[8]int8{0, 0, 0, 0, 2, 0, 0, 0}, -0.07e-6, 3.57e-6},
		{[8]int8{0, 0, 0, 0, 1, 0, 0, 0}, 1.73e-6, -0.03e-6},
		{[8]int8{0, 0, 2, -2, 3, 0, 0, 0}, 0, 0.48e-6},
	},
	{
		{[8]int8{0, 0, 0, 0, 1, 0, 0, 0}, 743.52e-6, -0.17e-6},
		{[8]int8{0, 0, 2, -2, 2, 0, 0, 0}, 56.91e-6, 0.06e-6},
		{[8]int8{0, 0, 2, 0, 2, 0, 0, 0}, 9.84e-6, -0.01e-6},
		{[8]int8{0, 0, 0, 0, 2, 0, 0, 0}, -8.85e-6, 0.01e-6},
		{[8]int8{0, 1, 0, 0, 0, 0, 0, 0}, -6.38e-6, -0.05e-6},
		{[8]int8{1, 0, 0, 0, 0, 0, 0, 0}, -3.07e-6, 0},
		{[8]int8{0, 1, 2, -2, 2, 0, 0, 0}, 2.23e-6, 0},
		{[8]int8{0, 0, 2, 0, 1, 0, 0, 0}, 1.67e-6, 0},
		{[8]int8{1, 0, 2, 0, 2, 0, 0, 0}, 1.30e-6, 0},
		{[8]int8{0, 1, -2, 2, -2, 0, 0, 0}, 0.93e-6, 0},
		{[8]int8{1, 0, 0, -2, 0, 0, 0, 0}, 0.68e-6, 0},
		{[8]int8{0, 0, 2, -2, 1, 0, 0, 0}, -0.55e-6, 0},
		{[8]int8{1, 0, -2, 0, -2, 0, 0, 0}, 0.53e-6, 0},
		{[8]int8{0, 0, 0, 2, 0, 0, 0, 0}, -0.27e-6, 0},
		{[8]int8{1, 0, 0, 0, 1, 0, 0, 0}, -0.27e-6, 0},
		{[8]int8{1, 0, -2, -2, -2, 0, 0, 0}, -0.26e-6, 0},
		{[8]int8{1, 0, 0, 0, -1, 0, 0, 0}, -0.25e-6, 0},
		{[8]int8{1, 0, 2, 0, 1, 0, 0, 0}, 0.22e-6, 0},
		{[8]int8{2, 0, 0, -2, 0, 0, 0, 0}, -0.21e-6, 0},
		{[8]int8{2, 0, -2, 0, -1, 0, 0, 0}, 0.20e-6, 0},
		{[8]int8{0, 0, 2, 2, 2, 0, 0, 0}, 0.17e-6, 0},
		{[8]int8{2, 0, 2, 0, 2, 0, 0, 0}, 0.13e-6, 0},
		{[8]int8{2, 0, 0, 0, 0, 0, 0, 0}, -0.13e-6, 0},
		{[8]int8{1, 0, 2, -2, 2, 0, 0, 0}, -0.12e-6, 0},
		{[8]int8{0, 0, 2, 0, 0, 0, 0, 0}, -0.11e-6, 0},
	},
	{
		{[8]int8{0, 0, 0, 0, 1, 0, 0, 0}, 0.30e-6, -23.42e-6},
		{[8]int8{0, 0, 2, -2, 2, 0, 0, 0}, -0.03e-6, -1.46e-6},
		{[8]int8{0, 0, 2, 0, 2, 0, 0, 0}, -0.01e-6, -0.25e-6},
		{[8]int8{0, 0, 0, 0, 2, 0, 0, 0}, 0, 0.23e-6},
	},
	{
		{[8]int8{0, 0, 0, 0, 1, 0, 0, 0}, -0.26e-6, -0.01e-6},
	},
}
