package astrom

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/litescript/ls-astrom/internal/astro"
	"github.com/litescript/ls-astrom/internal/earth"
	"github.com/litescript/ls-astrom/internal/timescale"
)

func TestIntermediateToObserved_Reference(t *testing.T) {
	c := referenceContext()
	obs := c.IntermediateToObserved(2.710299517858433, 0.17283379103752472)

	checkAngle(t, "azimuth", obs.Azimuth, 0.09251977674506173, 1e-12)
	checkAngle(t, "zenith", obs.Zenith, 1.4076614657974913, 1e-12)
	checkAngle(t, "hour angle", obs.HourAngle, -0.0926535800625385, 1e-12)
	checkAngle(t, "dec", obs.Dec, 0.17166265449885143, 1e-12)
	checkAngle(t, "ra", obs.RA, 2.7102624840329383, 1e-12)

	if obs.Elevation() != math.Pi/2-obs.Zenith {
		t.Errorf("Elevation = %v", obs.Elevation())
	}
}

// Refraction removal is evaluated at the observed zenith distance, so the
// inverse recovers the CIRS place only to a small fraction of the
// refraction: here about 0.01 arcsec at 80° zenith distance.
func TestObservedToIntermediate_Bounded(t *testing.T) {
	c := referenceContext()
	ri, di := 2.710299517858433, 0.17283379103752472
	obs := c.IntermediateToObserved(ri, di)

	inputs := []struct {
		t    CoordType
		a, b float64
	}{
		{CoordAzEl, obs.Azimuth, obs.Elevation()},
		{CoordHaDec, obs.HourAngle, obs.Dec},
		{CoordRaDec, obs.RA, obs.Dec},
	}
	for _, in := range inputs {
		t.Run(in.t.String(), func(t *testing.T) {
			r2, d2, err := c.ObservedToIntermediate(in.t, in.a, in.b)
			if err != nil {
				t.Fatal(err)
			}
			checkAngle(t, "ri", r2, 2.710299519337718, 1e-11)
			checkAngle(t, "di", d2, 0.17283383811036546, 1e-11)

			if sep := astro.Separation(ri, di, r2, d2); sep > 1e-7 {
				t.Errorf("inverse differs by %g rad", sep)
			}
		})
	}
}

func TestObservedToIntermediate_Errors(t *testing.T) {
	c := referenceContext()
	for _, ct := range []CoordType{-1, 3, 99} {
		ri, di, err := c.ObservedToIntermediate(ct, 1, 0.5)
		if !errors.Is(err, ErrUnknownCoordType) || !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%v: err = %v", ct, err)
		}
		if ri != 0 || di != 0 {
			t.Errorf("%v: outputs = %v, %v; want zero", ct, ri, di)
		}
		rc, dc, err := c.ObservedToAstrometric(ct, 1, 0.5)
		if err == nil || rc != 0 || dc != 0 {
			t.Errorf("%v: ObservedToAstrometric = %v, %v, %v", ct, rc, dc, err)
		}
	}
}

// Observed-only context for 2013-04-02 23:15 UTC with diurnal aberration
// applied in the observed transform.
func TestObservedFromConditions_Reference(t *testing.T) {
	cond := Conditions{
		UTC:   timescale.Date{Hi: 2456384.5, Lo: 0.969254051},
		DUT1:  0.1550675,
		Site:  Site{Longitude: -0.527800806, Latitude: -1.2345856, Height: 2738},
		Polar: Polar{XP: 2.47230737e-7, YP: 1.82640464e-6},
		Env:   earth.Env{Pressure: 731, Temperature: 12.8, Humidity: 0.59, Wavelength: 0.55},
	}
	c, err := NewObservedFromConditions(cond)
	if err != nil {
		t.Fatal(err)
	}
	checkAngle(t, "eral", c.LocalERA(), 2.617608909193631, 1e-11)

	obs := c.IntermediateToObserved(2.710121572969038991, 0.1729371367218230438)
	checkAngle(t, "azimuth", obs.Azimuth, 0.0923395222449932, 1e-11)
	checkAngle(t, "zenith", obs.Zenith, 1.40775870451343, 1e-11)
	checkAngle(t, "hour angle", obs.HourAngle, -0.09247619879485124, 1e-11)
	checkAngle(t, "dec", obs.Dec, 0.17176534357562434, 1e-11)
	checkAngle(t, "ra", obs.RA, 2.7100851079884825, 1e-11)

	ri, di, err := c.ObservedToIntermediate(CoordHaDec, obs.HourAngle, obs.Dec)
	if err != nil {
		t.Fatal(err)
	}
	checkAngle(t, "ri", ri, 2.710121574449136, 1e-11)
	checkAngle(t, "di", di, 0.1729371839114569, 1e-11)
}

func TestVacuum(t *testing.T) {
	a, b := earth.Refraction(earth.Env{Pressure: 0, Temperature: 10, Humidity: 0.5, Wavelength: 0.55})
	if a != 0 || b != 0 {
		t.Fatalf("vacuum refraction = %v, %v", a, b)
	}
	for _, zd := range []float64{0, 0.3, 1.0, 1.5, 1.6} {
		r, z := math.Sin(zd), math.Max(math.Cos(zd), minSinAlt)
		if d := refract(a, b, math.Max(r, minCosAlt), z); d != 0 {
			t.Errorf("zd %v: refract = %v", zd, d)
		}
		if d := unrefract(a, b, r, math.Cos(zd)); d != 0 {
			t.Errorf("zd %v: unrefract = %v", zd, d)
		}
	}

	p := scenarioParams()
	p.Env = earth.Env{}
	p.Site = Site{Longitude: 0.4, Latitude: 0.7, Height: 100}
	c := Build(p)

	for ri := 0.0; ri < astro.TwoPi; ri += 0.5 {
		for _, di := range []float64{-0.6, 0, 0.4, 1.1} {
			obs := c.IntermediateToObserved(ri, di)
			r2, d2, err := c.ObservedToIntermediate(CoordAzEl, obs.Azimuth, obs.Elevation())
			if err != nil {
				t.Fatal(err)
			}
			if sep := astro.Separation(ri, di, r2, d2); sep > 1e-12 {
				t.Errorf("(%.1f, %.1f): vacuum round trip error %g", ri, di, sep)
			}
		}
	}
}

func TestRefraction_Magnitude(t *testing.T) {
	c := Build(scenarioParams())
	// About 20° from the zenith of a site on the equator.
	ri, di := c.LocalERA()-0.2, 0.3
	obs := c.IntermediateToObserved(ri, di)

	p := scenarioParams()
	p.Env = earth.Env{}
	vac := Build(p).IntermediateToObserved(ri, di)

	if vac.Zenith > 0.6 {
		t.Fatalf("zenith distance %v", vac.Zenith)
	}
	// Refraction lifts the source by about A·tan ζ.
	a, _ := c.Refraction()
	want := a * math.Tan(vac.Zenith)
	if got := vac.Zenith - obs.Zenith; math.Abs(got-want) > 0.05*want+1e-7 {
		t.Errorf("refraction = %g, want about %g", got, want)
	}
}

func TestCatalogToObserved_Concurrent(t *testing.T) {
	c := Build(scenarioParams())
	src := Catalog{RA: 1.2, Dec: 0.3, PMRA: 1e-7, Parallax: 0.2}
	want := c.CatalogToObserved(src)

	var wg sync.WaitGroup
	errs := make(chan Observed, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := c.CatalogToObserved(src); got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("concurrent result %+v differs from %+v", got, want)
	}
}

func TestCoordTypeString(t *testing.T) {
	if CoordAzEl.String() != "az/el" || CoordRaDec.String() != "ra/dec" || CoordType(7).String() != "CoordType(7)" {
		t.Error("unexpected CoordType names")
	}
}
