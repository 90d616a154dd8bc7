package astrom

import (
	"fmt"

	"github.com/litescript/ls-astrom/internal/earth"
	"github.com/litescript/ls-astrom/internal/ephem"
	"github.com/litescript/ls-astrom/internal/precnut"
	"github.com/litescript/ls-astrom/internal/timescale"
)

// Conditions describe an observation in the terms an observer has to hand:
// a UTC date, UT1-UTC and the site.
type Conditions struct {
	UTC       timescale.Date // quasi Julian date
	DUT1      float64        // UT1-UTC, seconds
	Site      Site
	Ellipsoid earth.Ellipsoid
	Polar     Polar
	Env       earth.Env
	Nutation  precnut.Model
	Ephemeris ephem.Earth // nil selects the analytic ephemeris
}

func (c Conditions) epoch() (timescale.Epoch, Warning, error) {
	ep, dubious, err := timescale.EpochFromUTC(c.UTC, c.DUT1)
	if err != nil {
		return timescale.Epoch{}, 0, fmt.Errorf("%w: %w", ErrUnacceptableDate, err)
	}
	var w Warning
	if dubious {
		w = WarnDubiousDate
	}
	return ep, w, nil
}

// NewFromConditions builds a terrestrial context from a UTC date.
func NewFromConditions(c Conditions) (*Context, error) {
	ep, w, err := c.epoch()
	if err != nil {
		return nil, err
	}
	ctx := Build(Params{
		TT:        ep.TT,
		UT1:       ep.UT1,
		Site:      c.Site,
		Polar:     c.Polar,
		Env:       c.Env,
		Nutation:  c.Nutation,
		Ellipsoid: c.Ellipsoid,
		Ephemeris: c.Ephemeris,
	})
	ctx.warn |= w
	return ctx, nil
}

// NewObservedFromConditions builds a context for transforms between CIRS
// and the observed place from a UTC date.
func NewObservedFromConditions(c Conditions) (*Context, error) {
	ep, w, err := c.epoch()
	if err != nil {
		return nil, err
	}
	refa, refb := earth.Refraction(c.Env)
	ctx := NewObservedOnly(ObservedParams{
		SP:        earth.TIOLocator(ep.TT),
		ERA:       earth.ERA(ep.UT1),
		Site:      c.Site,
		Polar:     c.Polar,
		Ellipsoid: c.Ellipsoid,
		RefA:      refa,
		RefB:      refb,
	})
	ctx.warn |= w
	return ctx, nil
}

// CatalogToObserved transforms one catalogue place to the observed place.
// It also returns the equation of the origins, for converting the CIO-based
// right ascension to an equinox-based one.
func CatalogToObserved(c Conditions, src Catalog) (obs Observed, eo float64, w Warning, err error) {
	ctx, err := NewFromConditions(c)
	if err != nil {
		return Observed{}, 0, 0, err
	}
	return ctx.CatalogToObserved(src), ctx.eo, ctx.warn, nil
}

// ObservedToCatalog transforms one observed place to an astrometric place.
// Space motion is not removed, so the result is the catalogue place only for
// a source without proper motion or parallax.
func ObservedToCatalog(c Conditions, t CoordType, a, b float64) (rc, dc float64, w Warning, err error) {
	ctx, err := NewFromConditions(c)
	if err != nil {
		return 0, 0, 0, err
	}
	rc, dc, err = ctx.ObservedToAstrometric(t, a, b)
	if err != nil {
		return 0, 0, 0, err
	}
	return rc, dc, ctx.warn, nil
}

// CatalogToIntermediate transforms one catalogue place to CIRS for a
// geocentric observer at a TDB date, also returning the equation of the
// origins.
func CatalogToIntermediate(tdb timescale.Date, src Catalog, eph ephem.Earth) (ri, di, eo float64, w Warning) {
	ctx := NewIntermediate(tdb, eph, precnut.ModelIAU2000B)
	ri, di = ctx.CatalogToIntermediate(src)
	return ri, di, ctx.eo, ctx.warn
}

// IntermediateToCatalog transforms one CIRS place to an astrometric place
// for a geocentric observer at a TDB date. As with ObservedToCatalog, space
// motion is not removed.
func IntermediateToCatalog(tdb timescale.Date, ri, di float64, eph ephem.Earth) (rc, dc, eo float64, w Warning) {
	ctx := NewIntermediate(tdb, eph, precnut.ModelIAU2000B)
	rc, dc = ctx.IntermediateToAstrometric(ri, di)
	return rc, dc, ctx.eo, ctx.warn
}

// IntermediateToObserved transforms one CIRS place to the observed place.
func IntermediateToObserved(c Conditions, ri, di float64) (Observed, Warning, error) {
	ctx, err := NewObservedFromConditions(c)
	if err != nil {
		return Observed{}, 0, err
	}
	return ctx.IntermediateToObserved(ri, di), ctx.warn, nil
}

// ObservedToIntermediate transforms one observed place to CIRS.
func ObservedToIntermediate(c Conditions, t CoordType, a, b float64) (ri, di float64, w Warning, err error) {
	ctx, err := NewObservedFromConditions(c)
	if err != nil {
		return 0, 0, 0, err
	}
	ri, di, err = ctx.ObservedToIntermediate(t, a, b)
	if err != nil {
		return 0, 0, 0, err
	}
	return ri, di, ctx.warn, nil
}
