package earth

import (
	"errors"
	"math"
	"strings"

	"github.com/litescript/ls-astrom/internal/astro"
)

// Ellipsoid identifies a reference ellipsoid.
type Ellipsoid int

const (
	WGS84 Ellipsoid = iota
	GRS80
	WGS72
)

var (
	ErrUnknownEllipsoid = errors.New("earth: unknown ellipsoid")
	ErrBadEllipsoid     = errors.New("earth: illegal ellipsoid parameters")
)

// String returns the ellipsoid name.
func (e Ellipsoid) String() string {
	switch e {
	case WGS84:
		return "WGS84"
	case GRS80:
		return "GRS80"
	case WGS72:
		return "WGS72"
	default:
		return "unknown"
	}
}

// ParseEllipsoid parses an ellipsoid name, case-insensitively.
func ParseEllipsoid(s string) (Ellipsoid, error) {
	switch strings.ToUpper(s) {
	case "WGS84", "":
		return WGS84, nil
	case "GRS80":
		return GRS80, nil
	case "WGS72":
		return WGS72, nil
	}
	return 0, ErrUnknownEllipsoid
}

// Params returns the equatorial radius (m) and flattening.
func (e Ellipsoid) Params() (a, f float64, err error) {
	switch e {
	case WGS84:
		return 6378137.0, 1 / 298.257223563, nil
	case GRS80:
		return 6378137.0, 1 / 298.257222101, nil
	case WGS72:
		return 6378135.0, 1 / 298.26, nil
	}
	return 0, 0, ErrUnknownEllipsoid
}

// Geocentric converts geodetic coordinates (longitude east and latitude in
// radians, height above the ellipsoid in metres) to geocentric XYZ in metres.
func Geocentric(e Ellipsoid, elong, phi, height float64) (astro.Vec3, error) {
	a, f, err := e.Params()
	if err != nil {
		return astro.Vec3{}, err
	}
	return GeocentricWith(a, f, elong, phi, height)
}

// GeocentricWith is Geocentric for an ellipsoid given by equatorial radius a
// and flattening f.
func GeocentricWith(a, f, elong, phi, height float64) (astro.Vec3, error) {
	if a <= 0 || f < 0 || f >= 1 {
		return astro.Vec3{}, ErrBadEllipsoid
	}

	sp, cp := math.Sincos(phi)
	w := (1 - f) * (1 - f)
	d := cp*cp + w*sp*sp
	if d <= 0 {
		return astro.Vec3{}, ErrBadEllipsoid
	}
	ac := a / math.Sqrt(d)
	as := w * ac

	r := (ac + height) * cp
	sl, cl := math.Sincos(elong)
	return astro.Vec3{X: r * cl, Y: r * sl, Z: (as + height) * sp}, nil
}

// Sidereal rotation rate of the Earth, radians per UT1 second.
const rotationRate = 1.00273781191135448 * astro.TwoPi / astro.DaySec

// ObserverPV returns the position (m) and velocity (m/s) of a terrestrial
// observer in the CIRS, given the site, the polar-motion matrix and the Earth
// rotation angle. Velocity is due to Earth rotation only.
func ObserverPV(e Ellipsoid, elong, phi, height float64, pom astro.Mat3, era float64) (astro.PV, error) {
	itrs, err := Geocentric(e, elong, phi, height)
	if err != nil {
		return astro.PV{}, err
	}

	// ITRS to TIRS.
	tirs := pom.ApplyT(itrs)

	s, c := math.Sincos(era)
	x, y, z := tirs.X, tirs.Y, tirs.Z
	return astro.PV{
		P: astro.Vec3{X: c*x - s*y, Y: s*x + c*y, Z: z},
		V: astro.Vec3{X: rotationRate * (-s*x - c*y), Y: rotationRate * (c*x - s*y)},
	}, nil
}
