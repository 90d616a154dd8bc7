// Package ephem provides solar-system ephemerides for the astrometry
// pipeline: the Earth's barycentric and heliocentric state, and the states of
// light-deflecting bodies. Positions are in au, velocities in au/day, axes
// aligned with the ICRS.
package ephem

import (
	"errors"

	"github.com/litescript/ls-astrom/internal/astro"
	"github.com/litescript/ls-astrom/internal/timescale"
)

// ErrUnknownBody is returned for a body the source cannot supply.
var ErrUnknownBody = errors.New("ephem: body not available")

// EarthState is the Earth's state at one instant.
type EarthState struct {
	Heliocentric astro.Vec3 // au
	Barycentric  astro.PV   // au, au/day

	// OutOfRange is set when the date lies outside the span over which the
	// source is accurate. The state is still usable.
	OutOfRange bool
}

// Earth supplies the Earth's state for a TDB date. Implementations must be
// pure and safe for concurrent use.
type Earth interface {
	Earth(tdb timescale.Date) EarthState
}

// Bodies supplies barycentric states of solar-system bodies.
type Bodies interface {
	Body(b Body, tdb timescale.Date) (astro.PV, error)
}

// Source combines both.
type Source interface {
	Earth
	Bodies
}

// Mode represents which ephemeris source to use.
type Mode int

const (
	ModeAnalytic Mode = iota // Built-in Keplerian model (default)
	ModeHorizons             // Vectors tabulated from JPL Horizons
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeAnalytic:
		return "analytic"
	case ModeHorizons:
		return "horizons"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode string.
func ParseMode(s string) Mode {
	switch s {
	case "horizons":
		return ModeHorizons
	default:
		return ModeAnalytic
	}
}
