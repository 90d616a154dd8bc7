package astro

import "math"

// Angle conversion constants.
const (
	TwoPi       = 2 * math.Pi
	DegToRad    = math.Pi / 180
	RadToDeg    = 180 / math.Pi
	ArcsecToRad = DegToRad / 3600
	MasToRad    = ArcsecToRad / 1000

	// TurnArcsec is one full turn in arcseconds.
	TurnArcsec = 1296000.0
)

// Physical constants shared across the astrometry packages.
const (
	// AU is the astronomical unit in metres (IAU 2012).
	AU = 149597870.7e3

	// DaySec is the length of a day in seconds.
	DaySec = 86400.0

	// LightTimeAU is the light time for one au, in seconds.
	LightTimeAU = AU / SpeedOfLight

	// SpeedOfLight in metres per second.
	SpeedOfLight = 299792458.0

	// SchwarzschildRadius of the Sun in au, 2GM/c².
	SchwarzschildRadius = 1.97412574336e-8

	// JulianYear in days.
	JulianYear = 365.25

	// JulianCentury in days.
	JulianCentury = 36525.0
)

// FromSpherical converts spherical coordinates to a unit vector.
func FromSpherical(theta, phi float64) Vec3 {
	st, ct := math.Sincos(theta)
	sp, cp := math.Sincos(phi)
	return Vec3{X: ct * cp, Y: st * cp, Z: sp}
}

// ToSpherical converts a vector to spherical coordinates. The vector need not
// be of unit length; a null vector gives (0, 0).
func ToSpherical(v Vec3) (theta, phi float64) {
	d2 := v.X*v.X + v.Y*v.Y
	if d2 != 0 {
		theta = math.Atan2(v.Y, v.X)
	}
	if v.Z != 0 {
		phi = math.Atan2(v.Z, math.Sqrt(d2))
	}
	return theta, phi
}

// NormalizeAngle wraps an angle into the range [0, 2π).
func NormalizeAngle(a float64) float64 {
	w := math.Mod(a, TwoPi)
	if w < 0 {
		w += TwoPi
	}
	return w
}

// NormalizeAngleSigned wraps an angle into the range [-π, +π).
func NormalizeAngleSigned(a float64) float64 {
	w := math.Mod(a, TwoPi)
	if math.Abs(w) >= math.Pi {
		w -= math.Copysign(TwoPi, a)
	}
	return w
}

// Separation returns the angular separation between two points on the sphere.
func Separation(al, ap, bl, bp float64) float64 {
	return FromSpherical(al, ap).Sep(FromSpherical(bl, bp))
}

// AngularSeparation calculates the angular separation between two points on
// the celestial sphere. All coordinates in degrees. Returns separation in
// degrees.
func AngularSeparation(ra1, dec1, ra2, dec2 float64) float64 {
	return Separation(ra1*DegToRad, dec1*DegToRad, ra2*DegToRad, dec2*DegToRad) * RadToDeg
}

// SunSeparationTier grades how close a source lies to the Sun. Sources in
// the warning tier are lost in the solar glare for optical work.
type SunSeparationTier int

const (
	SunSepSafe    SunSeparationTier = iota // >= 20 degrees
	SunSepCaution                          // 10-20 degrees
	SunSepWarning                          // < 10 degrees
)

// GetSunSeparationTier returns the tier for a separation in degrees.
func GetSunSeparationTier(sepDeg float64) SunSeparationTier {
	switch {
	case sepDeg < 10:
		return SunSepWarning
	case sepDeg < 20:
		return SunSepCaution
	default:
		return SunSepSafe
	}
}

func (t SunSeparationTier) String() string {
	switch t {
	case SunSepSafe:
		return "safe"
	case SunSepCaution:
		return "caution"
	case SunSepWarning:
		return "glare"
	default:
		return "unknown"
	}
}
