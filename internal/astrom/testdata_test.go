package astrom

import (
	"math"
	"testing"

	"github.com/litescript/ls-astrom/internal/astro"
	"github.com/litescript/ls-astrom/internal/ephem"
	"github.com/litescript/ls-astrom/internal/timescale"
)

// referenceContext is built from the explicit inputs of the IAU SOFA
// astrometry test cases for 2013-04-02 23:15.
func referenceContext() *Context {
	return NewTerrestrial(TerrestrialParams{
		TDB: timescale.Date{Hi: 2456384.5, Lo: 0.970031644},
		Earth: ephem.EarthState{
			Heliocentric: astro.Vec3{X: -0.973458265, Y: -0.209215307, Z: -0.0906996477},
			Barycentric: astro.PV{
				P: astro.Vec3{X: -0.974170438, Y: -0.211520082, Z: -0.0917583024},
				V: astro.Vec3{X: 0.00364365824, Y: -0.0154287319, Z: -0.00668922024},
			},
		},
		X:         0.0013122272,
		Y:         -2.92808623e-5,
		S:         3.05749468e-8,
		ERA:       3.14540971,
		SP:        -3.01974337e-11,
		Site:      Site{Longitude: -0.527800806, Latitude: -1.2345856, Height: 2738},
		Polar:     Polar{XP: 2.47230737e-7, YP: 1.82640464e-6},
		RefA:      0.000201418779,
		RefB:      -2.36140831e-7,
	})
}

// referenceStar is the test star of the same cases.
var referenceStar = Catalog{RA: 2.71, Dec: 0.174, PMRA: 1e-5, PMDec: 5e-6, Parallax: 0.1, RV: 55}

// referenceBodies are Saturn, Jupiter and the Sun at the same instant.
func referenceBodies() []Body {
	return []Body{
		{
			Mass:    0.00028574,
			PV:      astro.PV{P: astro.Vec3{X: -7.81014427, Y: -5.60956681, Z: -1.98079819}, V: astro.Vec3{X: 0.0030723249, Y: -0.00406995477, Z: -0.00181335842}},
			Limiter: 2.4e-5,
		},
		{
			Mass:    0.00095435,
			PV:      astro.PV{P: astro.Vec3{X: 0.738098796, Y: 4.63658692, Z: 1.9693136}, V: astro.Vec3{X: -0.00755816922, Y: 0.00126913722, Z: 0.000727999001}},
			Limiter: 7.7e-5,
		},
		{
			Mass:    1,
			PV:      astro.PV{P: astro.Vec3{X: -0.000712174377, Y: -0.00230478303, Z: -0.00105865966}, V: astro.Vec3{X: 6.29235213e-6, Y: -3.30888387e-7, Z: -2.96486623e-7}},
			Limiter: 3.5e-3,
		},
	}
}

func checkAngle(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if d := math.Abs(astro.NormalizeAngleSigned(got - want)); d > tol {
		t.Errorf("%s = %.16g, want %.16g (diff %.3g)", name, got, want, d)
	}
}

func checkVec(t *testing.T, name string, got, want astro.Vec3, tol float64) {
	t.Helper()
	if d := got.Sub(want).Norm(); d > tol {
		t.Errorf("%s = %+v, want %+v (diff %.3g)", name, got, want, d)
	}
}
