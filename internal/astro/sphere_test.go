package astro

import (
	"math"
	"testing"
)

func TestSphericalRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		theta, phi float64
	}{
		{"origin", 0, 0},
		{"first quadrant", 3.0123, -0.999},
		{"near pole", 1.2, 1.5707},
		{"south", 5.9, -0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := FromSpherical(tt.theta, tt.phi)
			if math.Abs(v.Norm()-1) > 1e-15 {
				t.Errorf("|v| = %v, want 1", v.Norm())
			}
			theta, phi := ToSpherical(v)
			if math.Abs(NormalizeAngleSigned(theta-tt.theta)) > 1e-12 {
				t.Errorf("theta = %v, want %v", theta, tt.theta)
			}
			if math.Abs(phi-tt.phi) > 1e-12 {
				t.Errorf("phi = %v, want %v", phi, tt.phi)
			}
		})
	}
}

func TestToSphericalKnown(t *testing.T) {
	theta, phi := ToSpherical(Vec3{100, -50, 25})
	if math.Abs(theta+0.4636476090008061162) > 1e-14 {
		t.Errorf("theta = %.16f", theta)
	}
	if math.Abs(phi-0.2199879773954594463) > 1e-14 {
		t.Errorf("phi = %.16f", phi)
	}

	if theta, phi := ToSpherical(Vec3{}); theta != 0 || phi != 0 {
		t.Errorf("null vector gives (%v, %v)", theta, phi)
	}
}

func TestNormalizeAngle(t *testing.T) {
	if got := NormalizeAngle(-0.1); math.Abs(got-6.183185307179586477) > 1e-12 {
		t.Errorf("NormalizeAngle(-0.1) = %v", got)
	}
	if got := NormalizeAngleSigned(-4.0); math.Abs(got-2.283185307179586477) > 1e-12 {
		t.Errorf("NormalizeAngleSigned(-4) = %v", got)
	}
	if got := NormalizeAngleSigned(4.0); math.Abs(got+2.283185307179586477) > 1e-12 {
		t.Errorf("NormalizeAngleSigned(4) = %v", got)
	}
}

func TestAngularSeparation(t *testing.T) {
	tests := []struct {
		name                 string
		ra1, dec1, ra2, dec2 float64
		want                 float64
	}{
		{"same point", 10, 20, 10, 20, 0},
		{"along equator", 0, 0, 90, 0, 90},
		{"pole to equator", 0, 90, 123, 0, 90},
		{"antipodes", 0, 0, 180, 0, 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngularSeparation(tt.ra1, tt.dec1, tt.ra2, tt.dec2)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("AngularSeparation = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetSunSeparationTier(t *testing.T) {
	tests := []struct {
		sep  float64
		want SunSeparationTier
	}{
		{5, SunSepWarning},
		{9.99, SunSepWarning},
		{10, SunSepCaution},
		{19.9, SunSepCaution},
		{20, SunSepSafe},
		{120, SunSepSafe},
	}

	for _, tt := range tests {
		if got := GetSunSeparationTier(tt.sep); got != tt.want {
			t.Errorf("GetSunSeparationTier(%v) = %v, want %v", tt.sep, got, tt.want)
		}
	}
}

func TestSunSeparationTierString(t *testing.T) {
	if SunSepSafe.String() != "safe" || SunSepWarning.String() != "glare" || SunSeparationTier(9).String() != "unknown" {
		t.Error("unexpected tier names")
	}
}
