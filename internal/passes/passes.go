// Package passes predicts when catalogue sources are above an elevation
// threshold over a forecast window.
package passes

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/litescript/ls-astrom/internal/astro"
	"github.com/litescript/ls-astrom/internal/astrom"
	"github.com/litescript/ls-astrom/internal/batch"
	"github.com/litescript/ls-astrom/internal/timescale"
)

// Status classifies a pass relative to the plan time.
type Status int

const (
	StatusPast   Status = iota // Pass has ended
	StatusNow                  // Currently in progress
	StatusNext                 // Next upcoming pass
	StatusFuture               // Future pass (not next)
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusPast:
		return "PAST"
	case StatusNow:
		return "NOW"
	case StatusNext:
		return "NEXT"
	case StatusFuture:
		return "FUTURE"
	default:
		return "?"
	}
}

// Sample is one point of an elevation trace.
type Sample struct {
	Time      time.Time
	Elevation float64 // degrees, refracted
}

// Pass is an interval during which a source stays above the threshold.
// Start and End are clipped to the forecast window.
type Pass struct {
	Start        time.Time
	Peak         time.Time
	End          time.Time
	MaxElevation float64
	Status       Status
}

// Plan holds the passes of one source.
type Plan struct {
	Name        string
	GeneratedAt time.Time
	WindowStart time.Time
	WindowEnd   time.Time
	Passes      []Pass
}

// Config controls a forecast.
type Config struct {
	MinElevation float64 // degrees
	Step         time.Duration
	Window       time.Duration
}

// DefaultConfig returns a 24 h forecast sampled every five minutes with a
// 5° threshold.
func DefaultConfig() Config {
	return Config{
		MinElevation: 5.0,
		Step:         5 * time.Minute,
		Window:       24 * time.Hour,
	}
}

// Compute forecasts passes for each target from cond's site, starting at
// now. One context is built at now; each sample advances only the Earth
// rotation angle, which holds the CIRS place fixed over the window.
func Compute(ctx context.Context, cond astrom.Conditions, now time.Time, targets []batch.Target, cfg Config) ([]Plan, error) {
	if cfg.Step <= 0 || cfg.Window < cfg.Step {
		return nil, fmt.Errorf("%w: step %v, window %v", astrom.ErrInvalidArgument, cfg.Step, cfg.Window)
	}

	cond.UTC = timescale.FromTime(now)
	c, err := astrom.NewFromConditions(cond)
	if err != nil {
		return nil, err
	}
	ep, _, err := timescale.EpochFromUTC(cond.UTC, cond.DUT1)
	if err != nil {
		return nil, err
	}

	n := int(cfg.Window / cfg.Step)
	frames := make([]*astrom.Context, n+1)
	for i := range frames {
		dt := time.Duration(i) * cfg.Step
		frames[i] = c.WithUT1(ep.UT1.AddDays(dt.Seconds() / astro.DaySec))
	}

	plans := make([]Plan, 0, len(targets))
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ri, di := c.CatalogToIntermediate(t.Catalog)
		samples := make([]Sample, len(frames))
		for i, f := range frames {
			samples[i] = Sample{
				Time:      now.Add(time.Duration(i) * cfg.Step),
				Elevation: f.IntermediateToObserved(ri, di).Elevation() * astro.RadToDeg,
			}
		}

		passes := findPasses(samples, cfg.MinElevation)
		classifyPasses(passes, now)
		plans = append(plans, Plan{
			Name:        t.Name,
			GeneratedAt: now,
			WindowStart: samples[0].Time,
			WindowEnd:   samples[len(samples)-1].Time,
			Passes:      passes,
		})
	}
	return plans, nil
}

// findPasses finds the contiguous runs of samples at or above threshold.
func findPasses(samples []Sample, threshold float64) []Pass {
	var passes []Pass
	var cur Pass
	inPass := false

	for i, s := range samples {
		above := s.Elevation >= threshold

		if !inPass && above {
			inPass = true
			cur = Pass{Start: s.Time, Peak: s.Time, MaxElevation: s.Elevation}
			if i > 0 {
				prev := samples[i-1]
				cur.Start = interpolateCrossing(prev.Time, s.Time, prev.Elevation, s.Elevation, threshold)
			}
		}
		if !inPass {
			continue
		}

		if s.Elevation > cur.MaxElevation {
			cur.MaxElevation = s.Elevation
			cur.Peak = s.Time
		}
		if !above {
			prev := samples[i-1]
			cur.End = interpolateCrossing(prev.Time, s.Time, prev.Elevation, s.Elevation, threshold)
			passes = append(passes, cur)
			inPass = false
		}
	}

	if inPass {
		cur.End = samples[len(samples)-1].Time
		passes = append(passes, cur)
	}
	return passes
}

// interpolateCrossing finds the time when elevation crosses a threshold.
func interpolateCrossing(t1, t2 time.Time, el1, el2, threshold float64) time.Time {
	if el2 == el1 {
		return t1
	}
	fraction := (threshold - el1) / (el2 - el1)
	fraction = min(max(fraction, 0), 1)
	return t1.Add(time.Duration(float64(t2.Sub(t1)) * fraction))
}

// classifyPasses assigns a status to each pass relative to now. Passes must
// be in start order.
func classifyPasses(passes []Pass, now time.Time) {
	foundNext := false
	for i := range passes {
		p := &passes[i]
		switch {
		case now.After(p.End):
			p.Status = StatusPast
		case !now.Before(p.Start):
			p.Status = StatusNow
		case !foundNext:
			p.Status = StatusNext
			foundNext = true
		default:
			p.Status = StatusFuture
		}
	}
}

// Current returns the pass in progress, or nil.
func (p *Plan) Current() *Pass {
	for i := range p.Passes {
		if p.Passes[i].Status == StatusNow {
			return &p.Passes[i]
		}
	}
	return nil
}

// Next returns the next upcoming pass, or nil.
func (p *Plan) Next() *Pass {
	for i := range p.Passes {
		if p.Passes[i].Status == StatusNext {
			return &p.Passes[i]
		}
	}
	return nil
}

// Circumpolar reports whether the source stays above the threshold for the
// whole window.
func (p *Plan) Circumpolar() bool {
	return len(p.Passes) == 1 && p.Passes[0].Start.Equal(p.WindowStart) && p.Passes[0].End.Equal(p.WindowEnd)
}

// WriteTable writes the current or next pass of each source, soonest first.
// Sources that never clear the threshold are listed last.
func WriteTable(w io.Writer, plans []Plan, loc *time.Location) {
	type line struct {
		name string
		p    *Pass
		circ bool
	}
	var lines []line
	for i := range plans {
		pl := &plans[i]
		p := pl.Current()
		if p == nil {
			p = pl.Next()
		}
		lines = append(lines, line{pl.Name, p, pl.Circumpolar()})
	}
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i].p, lines[j].p
		switch {
		case a == nil || b == nil:
			return b == nil && a != nil
		default:
			return a.Start.Before(b.Start)
		}
	})

	if len(plans) > 0 {
		fmt.Fprintf(w, "Passes %s to %s\n\n", plans[0].WindowStart.In(loc).Format("2006-01-02 15:04"), plans[0].WindowEnd.In(loc).Format("2006-01-02 15:04 MST"))
	}
	fmt.Fprintf(w, "%-16s %-6s %5s %5s %5s %6s\n", "NAME", "STATUS", "RISE", "PEAK", "SET", "MAX EL")
	fmt.Fprintf(w, "%-16s %-6s %5s %5s %5s %6s\n", "----", "------", "----", "----", "---", "------")
	for _, l := range lines {
		name := l.name
		if len(name) > 16 {
			name = name[:16]
		}
		switch {
		case l.circ:
			fmt.Fprintf(w, "%-16s %-6s %5s %5s %5s %5.1f°\n", name, "UP", "--:--", l.p.Peak.In(loc).Format("15:04"), "--:--", l.p.MaxElevation)
		case l.p == nil:
			fmt.Fprintf(w, "%-16s %-6s %5s %5s %5s %6s\n", name, "DOWN", "-", "-", "-", "-")
		default:
			fmt.Fprintf(w, "%-16s %-6s %5s %5s %5s %5.1f°\n", name, l.p.Status,
				l.p.Start.In(loc).Format("15:04"), l.p.Peak.In(loc).Format("15:04"), l.p.End.In(loc).Format("15:04"), l.p.MaxElevation)
		}
	}
}
