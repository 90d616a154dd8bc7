// Command ls-astrom computes observed places of bright stars for an
// observing site and shows them in a terminal UI or as text and JSON.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-astrom/internal/astro"
	"github.com/litescript/ls-astrom/internal/ephem"
	"github.com/litescript/ls-astrom/internal/logging"
	"github.com/litescript/ls-astrom/internal/passes"
	"github.com/litescript/ls-astrom/internal/site"
	"github.com/litescript/ls-astrom/internal/state"
	"github.com/litescript/ls-astrom/internal/ui"
	"github.com/litescript/ls-astrom/internal/version"
)

// CLI flags for headless mode
var (
	tableMode     bool
	passesMode    bool
	watchInterval time.Duration
	jsonPath      string
)

const (
	defaultRefresh = 5 * time.Second
	minRefresh     = 1 * time.Second
	maxRefresh     = 5 * time.Minute
)

func main() {
	sitePath := flag.String("site", "", "YAML observing-site file (default: Greenwich)")
	at := flag.String("time", "", "Observation time, RFC 3339 (default: now)")
	stars := flag.String("stars", "", "Comma-separated star names (default: whole catalogue)")
	ephemFlag := flag.String("ephem", "", "Ephemeris source: analytic or horizons (overrides the site file)")
	bodies := flag.Bool("bodies", false, "Deflect light by every configured body, not just the Sun")
	roundTrip := flag.Bool("roundtrip", false, "Invert each observed place and report the residual")
	workers := flag.Int("workers", 0, "Concurrent transforms (0: one per CPU)")
	refresh := flag.Duration("refresh", defaultRefresh, "TUI refresh interval (e.g., 5s, 1m)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", "text", "Log format (text, json)")
	logFile := flag.String("log-file", "", "Write logs to file (TUI mode discards logs otherwise)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.BoolVar(&tableMode, "table", false, "Print observed places as a table instead of TUI")
	flag.BoolVar(&passesMode, "passes", false, "Print rise and set times for the next 24 hours")
	flag.DurationVar(&watchInterval, "watch", 0, "Repeat headless output at interval (e.g., 30s)")
	flag.StringVar(&jsonPath, "json", "", "Export JSON report to file (use - for stdout)")
	flag.Parse()

	if *showVersion {
		fmt.Println("ls-astrom", version.Version)
		return
	}

	if *refresh < minRefresh {
		*refresh = minRefresh
	} else if *refresh > maxRefresh {
		*refresh = maxRefresh
	}

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	headless := tableMode || passesMode || jsonPath != "" || !isTTY
	if !isTTY && !passesMode && jsonPath == "" {
		tableMode = true
	}

	// Logging goes to stderr, except under the TUI where it would
	// corrupt the screen.
	var logOut io.Writer = os.Stderr
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	} else if !headless {
		logOut = io.Discard
	}
	logger := logging.NewWithOptions(logOut, logging.ParseLevel(*logLevel), logging.ParseFormat(*logFormat))

	cfg := site.DefaultConfig()
	if *sitePath != "" {
		var err error
		if cfg, err = site.Load(*sitePath, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *ephemFlag != "" {
		cfg.Ephemeris = *ephemFlag
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	clk, err := newClock(*at)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	targets, err := selectTargets(astro.DefaultStarCatalog(), *stars)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	deflectors, err := cfg.DeflectorInfo()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := &pipeline{
		site:       cfg,
		targets:    targets,
		deflectors: deflectors,
		bodies:     *bodies,
		roundTrip:  *roundTrip,
		workers:    *workers,
		log:        logger,
	}
	if cfg.EphemerisMode() == ephem.ModeHorizons {
		p.horizons = ephem.NewHorizonsClient("", logger)
	}
	logger.Debug("configured", "site", cfg.Name, "targets", len(targets), "ephemeris", cfg.EphemerisMode().String())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	stateCfg := state.DefaultConfig()
	stateCfg.RefreshInterval = *refresh
	stateMgr := state.NewManager(stateCfg)

	if headless {
		if err := runHeadless(ctx, p, clk, stateMgr, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	model := ui.New(stateMgr)
	prog := tea.NewProgram(model, tea.WithAltScreen())

	go runComputeLoop(ctx, p, clk, stateMgr, prog)

	if _, err := prog.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// clock yields observation times. With a fixed start it runs forward from
// that instant at the wall-clock rate.
type clock struct {
	start   time.Time
	started time.Time
}

func newClock(s string) (clock, error) {
	now := time.Now()
	if s == "" {
		return clock{start: now, started: now}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return clock{}, fmt.Errorf("parse -time: %w", err)
	}
	return clock{start: t, started: now}, nil
}

func (c clock) now() time.Time {
	return c.start.Add(time.Since(c.started))
}

func runComputeLoop(ctx context.Context, p *pipeline, clk clock, stateMgr *state.Manager, prog *tea.Program) {
	doCompute(ctx, p, clk, stateMgr, prog)

	ticker := time.NewTicker(stateMgr.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log.Debug("compute loop shutting down")
			return
		case <-ticker.C:
			doCompute(ctx, p, clk, stateMgr, prog)
		}
	}
}

func doCompute(ctx context.Context, p *pipeline, clk clock, stateMgr *state.Manager, prog *tea.Program) {
	start := time.Now()
	rep, err := p.compute(ctx, clk.now())
	dur := time.Since(start)

	if err != nil {
		p.log.Error("compute failed", "error", err)
		stateMgr.Update(nil, dur, err)
		prog.Send(ui.ErrorMsg{Error: err})
		return
	}

	p.log.Debug("compute complete", "sources", len(rep.Rows), "elapsed", dur)
	stateMgr.Update(rep, dur, nil)
	prog.Send(ui.DataUpdateMsg{Snapshot: stateMgr.Snapshot()})
}

// runHeadless handles all headless modes without starting TUI.
func runHeadless(ctx context.Context, p *pipeline, clk clock, stateMgr *state.Manager, out io.Writer) error {
	outputOnce := func() error {
		t := clk.now()
		start := time.Now()
		rep, err := p.compute(ctx, t)
		if err != nil {
			return err
		}
		stateMgr.Update(rep, time.Since(start), nil)

		if jsonPath != "" {
			if err := writeJSONReport(rep.WriteJSON, jsonPath, out); err != nil {
				return err
			}
		}

		if tableMode {
			rep.WriteTable(out)
		}

		if passesMode {
			cond, _, _, err := p.conditions(ctx, t)
			if err != nil {
				return err
			}
			plans, err := passes.Compute(ctx, cond, t, p.targets, passes.DefaultConfig())
			if err != nil {
				return err
			}
			if tableMode {
				fmt.Fprintln(out)
			}
			passes.WriteTable(out, plans, time.Local)
		}

		// Rises, sets and warning changes since the previous output
		for _, e := range stateMgr.RecentEvents(10) {
			if e.Timestamp.Equal(rep.Time) {
				fmt.Fprintf(out, "%s %-7s %s%s\n", e.Timestamp.Format("15:04:05"), e.Type, e.Source, e.Detail)
			}
		}
		return nil
	}

	if watchInterval == 0 {
		return outputOnce()
	}

	// Watch mode: repeat at interval
	if err := outputOnce(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			fmt.Fprintln(out)
			if err := outputOnce(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}

// writeJSONReport writes with write to path, or to out when path is "-".
func writeJSONReport(write func(io.Writer) error, path string, out io.Writer) error {
	if path == "-" {
		if err := write(out); err != nil {
			return fmt.Errorf("write JSON to stdout: %w", err)
		}
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("write JSON to file: %w", err)
	}
	return nil
}
