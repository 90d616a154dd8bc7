package astrom

import (
	"github.com/litescript/ls-astrom/internal/astro"
)

// Catalog is a catalogue place: ICRS, epoch J2000.0.
type Catalog struct {
	RA, Dec  float64 // radians
	PMRA     float64 // μα·cos δ, radians per Julian year
	PMDec    float64 // radians per Julian year
	Parallax float64 // arcsec
	RV       float64 // km/s, positive receding
}

// FromStar converts a catalogued star to a catalogue place.
func FromStar(s astro.Star) Catalog {
	return Catalog{
		RA:       s.RAdeg * astro.DegToRad,
		Dec:      s.DecDeg * astro.DegToRad,
		PMRA:     s.PMRA * astro.MasToRad,
		PMDec:    s.PMDec * astro.MasToRad,
		Parallax: s.Parallax / 1000,
		RV:       s.RV,
	}
}
