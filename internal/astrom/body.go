package astrom

import (
	"fmt"
	"math"

	"github.com/litescript/ls-astrom/internal/astro"
	"github.com/litescript/ls-astrom/internal/ephem"
	"github.com/litescript/ls-astrom/internal/timescale"
)

// Body is a light-deflecting body. Lists of bodies are applied in order.
type Body struct {
	Mass    float64  // solar masses
	PV      astro.PV // barycentric, au and au/day
	Limiter float64  // radians; the body is ignored for sources this close
}

func validateBodies(bodies []Body) error {
	for i, b := range bodies {
		if !(b.Mass > 0) || math.IsInf(b.Mass, 0) {
			return fmt.Errorf("body %d: mass %v: %w", i, b.Mass, ErrInvalidBody)
		}
		if !(b.Limiter >= 0) {
			return fmt.Errorf("body %d: limiter %v: %w", i, b.Limiter, ErrInvalidBody)
		}
	}
	return nil
}

// BodiesAt looks up the states of catalogued deflectors at a TDB date, in
// the order given.
func BodiesAt(src ephem.Bodies, tdb timescale.Date, infos []ephem.BodyInfo) ([]Body, error) {
	out := make([]Body, 0, len(infos))
	for _, info := range infos {
		pv, err := src.Body(info.ID, tdb)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", info.ID, err)
		}
		out = append(out, Body{Mass: info.Mass, PV: pv, Limiter: info.Limiter})
	}
	return out, nil
}
