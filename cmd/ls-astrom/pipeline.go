package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/litescript/ls-astrom/internal/astro"
	"github.com/litescript/ls-astrom/internal/astrom"
	"github.com/litescript/ls-astrom/internal/batch"
	"github.com/litescript/ls-astrom/internal/ephem"
	"github.com/litescript/ls-astrom/internal/logging"
	"github.com/litescript/ls-astrom/internal/report"
	"github.com/litescript/ls-astrom/internal/site"
	"github.com/litescript/ls-astrom/internal/timescale"
)

// horizonsSpan is how far either side of the observation time the
// Horizons tables reach. Windows are aligned to six hours so successive
// refreshes hit the client cache.
const (
	horizonsAlign = 6 * time.Hour
	horizonsSpan  = 12 * time.Hour
)

// pipeline turns a site and a target list into observed-place reports.
type pipeline struct {
	site       site.Config
	targets    []batch.Target
	deflectors []ephem.BodyInfo
	bodies     bool // deflect by every configured body, not just the Sun
	roundTrip  bool
	workers    int

	horizons *ephem.HorizonsClient // nil selects the analytic ephemeris
	log      *logging.Logger
}

// selectTargets picks named stars from the catalogue, or all of them when
// names is empty.
func selectTargets(cat astro.StarCatalog, names string) ([]batch.Target, error) {
	if strings.TrimSpace(names) == "" {
		return batch.TargetsFromStars(cat.Stars), nil
	}
	var stars []astro.Star
	for _, n := range strings.Split(names, ",") {
		n = strings.TrimSpace(n)
		s, ok := cat.Find(n)
		if !ok {
			return nil, fmt.Errorf("unknown star %q", n)
		}
		stars = append(stars, s)
	}
	return batch.TargetsFromStars(stars), nil
}

// source returns the ephemeris for an observation at t.
func (p *pipeline) source(ctx context.Context, t time.Time) (ephem.Source, string, error) {
	if p.horizons == nil {
		return ephem.NewAnalytic(), ephem.ModeAnalytic.String(), nil
	}

	start := t.UTC().Truncate(horizonsAlign).Add(-horizonsSpan)
	stop := start.Add(2*horizonsSpan + horizonsAlign)
	ids := make([]ephem.Body, len(p.deflectors))
	for i, d := range p.deflectors {
		ids[i] = d.ID
	}
	tab, err := p.horizons.FetchSource(ctx, start, stop, ephem.DefaultStep, ids...)
	if err != nil {
		return nil, "", fmt.Errorf("fetch ephemeris: %w", err)
	}
	return tab, ephem.ModeHorizons.String(), nil
}

// conditions returns the observing conditions at t with the ephemeris set.
func (p *pipeline) conditions(ctx context.Context, t time.Time) (astrom.Conditions, ephem.Source, string, error) {
	src, name, err := p.source(ctx, t)
	if err != nil {
		return astrom.Conditions{}, nil, "", err
	}
	cond := p.site.Conditions(t)
	cond.Ephemeris = src
	return cond, src, name, nil
}

// compute builds the context for t and applies it to every target.
func (p *pipeline) compute(ctx context.Context, t time.Time) (*report.Report, error) {
	cond, src, ephName, err := p.conditions(ctx, t)
	if err != nil {
		return nil, err
	}

	c, err := astrom.NewFromConditions(cond)
	if err != nil {
		return nil, err
	}
	if w := c.Warnings(); w != 0 {
		p.log.Warn("context built with warnings", "warnings", w.String())
	}

	cfg := batch.Config{Workers: p.workers, RoundTrip: p.roundTrip}
	if p.bodies {
		ep, _, err := timescale.EpochFromUTC(cond.UTC, cond.DUT1)
		if err != nil {
			return nil, err
		}
		cfg.Bodies, err = astrom.BodiesAt(src, ep.TT, p.deflectors)
		if err != nil {
			return nil, fmt.Errorf("deflector states: %w", err)
		}
	}

	results, err := batch.NewRunner(cfg, p.log).Run(ctx, c, p.targets)
	if err != nil {
		return nil, err
	}
	return report.Build(t, p.site.Name, ephName, c, results), nil
}
