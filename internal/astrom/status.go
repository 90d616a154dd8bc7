package astrom

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument is the root of all argument errors returned by this
// package. Operations that fail with it return zero coordinates.
var ErrInvalidArgument = errors.New("astrom: invalid argument")

var (
	// ErrUnknownCoordType reports an observed-coordinate selector outside
	// the CoordType enumeration.
	ErrUnknownCoordType = fmt.Errorf("%w: unknown coordinate type", ErrInvalidArgument)

	// ErrInvalidBody reports a light-deflecting body with a non-positive
	// mass or a negative limiter.
	ErrInvalidBody = fmt.Errorf("%w: invalid deflecting body", ErrInvalidArgument)

	// ErrUnacceptableDate reports a UTC date the time-scale conversion
	// rejects.
	ErrUnacceptableDate = fmt.Errorf("%w: unacceptable date", ErrInvalidArgument)
)

// Warning is a set of conditions noted while building a context. The
// context is always usable; warnings describe how far it can be trusted.
type Warning uint8

const (
	// WarnDubiousDate: the UTC date lies before 1960 or far enough past the
	// leap-second table that TAI-UTC may be wrong.
	WarnDubiousDate Warning = 1 << iota

	// WarnSiteDegraded: a site coordinate was non-finite or out of range
	// and has been replaced or clamped.
	WarnSiteDegraded

	// WarnEllipsoid: the reference ellipsoid was unknown; WGS84 was used.
	WarnEllipsoid

	// WarnEphemerisRange: the date lies outside the span of the ephemeris.
	WarnEphemerisRange
)

var warningNames = []struct {
	w    Warning
	name string
}{
	{WarnDubiousDate, "dubious-date"},
	{WarnSiteDegraded, "site-degraded"},
	{WarnEllipsoid, "ellipsoid"},
	{WarnEphemerisRange, "ephemeris-range"},
}

// Has reports whether all bits of f are set.
func (w Warning) Has(f Warning) bool {
	return w&f == f
}

// String returns the warning names joined with "|", or "ok".
func (w Warning) String() string {
	if w == 0 {
		return "ok"
	}
	var parts []string
	for _, n := range warningNames {
		if w&n.w != 0 {
			parts = append(parts, n.name)
			w &^= n.w
		}
	}
	if w != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint8(w)))
	}
	return strings.Join(parts, "|")
}
