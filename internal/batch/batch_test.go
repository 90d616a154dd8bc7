package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/litescript/ls-astrom/internal/astro"
	"github.com/litescript/ls-astrom/internal/astrom"
	"github.com/litescript/ls-astrom/internal/earth"
	"github.com/litescript/ls-astrom/internal/ephem"
	"github.com/litescript/ls-astrom/internal/timescale"
)

func testContext() *astrom.Context {
	ut1 := timescale.MJD(60000.25)
	return astrom.Build(astrom.Params{
		TT:        ut1.AddDays(69.184 / 86400),
		UT1:       ut1,
		Site:      astrom.Site{Longitude: -2.0, Latitude: 0.6, Height: 1200},
		Env:       earth.StandardEnv(),
		Ephemeris: ephem.NewAnalytic(),
	})
}

func TestTargetsFromStars(t *testing.T) {
	stars := astro.DefaultStarCatalog().Stars
	targets := TargetsFromStars(stars)
	if len(targets) != len(stars) {
		t.Fatalf("got %d targets, want %d", len(targets), len(stars))
	}
	for i, tg := range targets {
		if tg.Name != stars[i].Name || tg.Catalog != astrom.FromStar(stars[i]) {
			t.Errorf("target %d = %+v", i, tg)
		}
	}
}

func TestRun_MatchesSequential(t *testing.T) {
	c := testContext()
	targets := TargetsFromStars(astro.DefaultStarCatalog().Stars)

	for _, workers := range []int{0, 1, 3, 64} {
		r := NewRunner(Config{Workers: workers}, nil)
		results, err := r.Run(context.Background(), c, targets)
		if err != nil {
			t.Fatal(err)
		}
		if len(results) != len(targets) {
			t.Fatalf("workers %d: %d results", workers, len(results))
		}
		for i, res := range results {
			ri, di := c.CatalogToIntermediate(targets[i].Catalog)
			if res.Name != targets[i].Name || res.RI != ri || res.DI != di {
				t.Errorf("workers %d, %s: CIRS %v, %v; want %v, %v", workers, res.Name, res.RI, res.DI, ri, di)
			}
			if want := c.IntermediateToObserved(ri, di); res.Observed != want {
				t.Errorf("workers %d, %s: observed differs", workers, res.Name)
			}
			if res.RoundTrip != 0 || res.RC != 0 {
				t.Errorf("%s: round trip fields set without RoundTrip", res.Name)
			}
		}
	}
}

func TestRun_RoundTrip(t *testing.T) {
	c := testContext()
	targets := TargetsFromStars(astro.DefaultStarCatalog().Stars)

	r := NewRunner(Config{Workers: 4, RoundTrip: true}, nil)
	results, err := r.Run(context.Background(), c, targets)
	if err != nil {
		t.Fatal(err)
	}
	for _, res := range results {
		// Refraction removal is approximate: about A²·tan ζ·sec² ζ, so
		// an arcsecond at 17° elevation and far more near the horizon.
		lim := 5e-6
		if res.Observed.Elevation() < 0.3 {
			lim = 1e-2
		}
		if res.RoundTrip > lim {
			t.Errorf("%s: round trip error %g rad at elevation %v", res.Name, res.RoundTrip, res.Observed.Elevation())
		}
		// The recovered astrometric place is near the catalogue place:
		// aberration and light deflection are under an arcminute.
		if sep := astro.Separation(res.RC, res.DC, res.Catalog.RA, res.Catalog.Dec); sep > 1e-3+lim {
			t.Errorf("%s: astrometric place %g rad from catalogue", res.Name, sep)
		}
	}
}

func TestRun_Bodies(t *testing.T) {
	c := testContext()
	targets := TargetsFromStars(astro.DefaultStarCatalog().Stars[:8])
	bodies, err := astrom.BodiesAt(ephem.NewAnalytic(), timescale.MJD(60000.25), ephem.DefaultDeflectors())
	if err != nil {
		t.Fatal(err)
	}

	r := NewRunner(Config{Bodies: bodies}, nil)
	results, err := r.Run(context.Background(), c, targets)
	if err != nil {
		t.Fatal(err)
	}
	for i, res := range results {
		ri, di, err := c.CatalogToIntermediateBodies(targets[i].Catalog, bodies)
		if err != nil {
			t.Fatal(err)
		}
		if res.RI != ri || res.DI != di {
			t.Errorf("%s: CIRS %v, %v; want %v, %v", res.Name, res.RI, res.DI, ri, di)
		}
	}
}

func TestRun_InvalidBody(t *testing.T) {
	c := testContext()
	targets := TargetsFromStars(astro.DefaultStarCatalog().Stars[:4])

	r := NewRunner(Config{Bodies: []astrom.Body{{Mass: -1}}}, nil)
	results, err := r.Run(context.Background(), c, targets)
	if !errors.Is(err, astrom.ErrInvalidBody) {
		t.Fatalf("err = %v, want ErrInvalidBody", err)
	}
	if results != nil {
		t.Errorf("results = %v, want nil", results)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(Config{Workers: 2}, nil)
	_, err := r.Run(ctx, testContext(), TargetsFromStars(astro.DefaultStarCatalog().Stars))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRun_Empty(t *testing.T) {
	results, err := NewRunner(Config{}, nil).Run(context.Background(), testContext(), nil)
	if err != nil || len(results) != 0 {
		t.Errorf("Run(nil) = %v, %v", results, err)
	}
}
