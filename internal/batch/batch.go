// Package batch applies one astrometry context to many catalogue entries
// concurrently.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/litescript/ls-astrom/internal/astro"
	"github.com/litescript/ls-astrom/internal/astrom"
	"github.com/litescript/ls-astrom/internal/logging"
)

// Target is a named catalogue entry.
type Target struct {
	Name    string
	Mag     float64
	Catalog astrom.Catalog
}

// TargetsFromStars converts catalogue stars to targets.
func TargetsFromStars(stars []astro.Star) []Target {
	out := make([]Target, len(stars))
	for i, s := range stars {
		out[i] = Target{Name: s.Name, Mag: s.Mag, Catalog: astrom.FromStar(s)}
	}
	return out
}

// Result is the outcome for one target.
type Result struct {
	Target
	RI, DI   float64 // CIRS place
	Observed astrom.Observed

	// Recovered astrometric place and the angle between the CIRS place and
	// the one recovered from the observed place, both set when the runner
	// checks round trips.
	RC, DC    float64
	RoundTrip float64
}

// Config configures a Runner.
type Config struct {
	Workers   int           // zero selects GOMAXPROCS
	Bodies    []astrom.Body // deflectors; nil uses the Sun alone
	RoundTrip bool
}

// Runner applies a context to a list of targets.
type Runner struct {
	cfg Config
	log *logging.Logger
}

// NewRunner creates a runner. A nil logger discards.
func NewRunner(cfg Config, log *logging.Logger) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Runner{cfg: cfg, log: log.With("component", "batch")}
}

// Run transforms every target. Results are in target order. The context is
// only read, so workers share it. Run stops at the first error or when ctx
// is cancelled.
func (r *Runner) Run(ctx context.Context, c *astrom.Context, targets []Target) ([]Result, error) {
	start := time.Now()
	results := make([]Result, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for i, t := range targets {
		if gctx.Err() != nil {
			break
		}
		i, t := i, t
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := r.one(c, t)
			if err != nil {
				return fmt.Errorf("%s: %w", t.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// A cancellation that arrived before any goroutine could observe it.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.log.Debug("batch complete", "targets", len(targets), "workers", r.cfg.Workers, "elapsed", time.Since(start))
	return results, nil
}

func (r *Runner) one(c *astrom.Context, t Target) (Result, error) {
	res := Result{Target: t}

	var err error
	if r.cfg.Bodies != nil {
		res.RI, res.DI, err = c.CatalogToIntermediateBodies(t.Catalog, r.cfg.Bodies)
		if err != nil {
			return Result{}, err
		}
	} else {
		res.RI, res.DI = c.CatalogToIntermediate(t.Catalog)
	}
	res.Observed = c.IntermediateToObserved(res.RI, res.DI)

	if !r.cfg.RoundTrip {
		return res, nil
	}

	ri, di, err := c.ObservedToIntermediate(astrom.CoordAzEl, res.Observed.Azimuth, res.Observed.Elevation())
	if err != nil {
		return Result{}, err
	}
	res.RoundTrip = astro.Separation(res.RI, res.DI, ri, di)

	if r.cfg.Bodies != nil {
		res.RC, res.DC, err = c.IntermediateToAstrometricBodies(ri, di, r.cfg.Bodies)
		if err != nil {
			return Result{}, err
		}
	} else {
		res.RC, res.DC = c.IntermediateToAstrometric(ri, di)
	}
	return res, nil
}
