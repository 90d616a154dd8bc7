// Package astrom transforms star positions between the catalogue (ICRS),
// the celestial intermediate system (CIRS) and the observed place.
//
// A Context holds every star-independent quantity for one instant and one
// observer. It is built once, never modified, and may be applied to any
// number of stars from any number of goroutines.
package astrom

import (
	"github.com/litescript/ls-astrom/internal/astro"
)

// Site is a geodetic observing location.
type Site struct {
	Longitude float64 // radians, east positive
	Latitude  float64 // radians
	Height    float64 // metres above the ellipsoid
}

// Polar holds the coordinates of the pole, radians.
type Polar struct {
	XP, YP float64
}

// Context holds the star-independent parameters of the transformations.
type Context struct {
	pmt float64    // PM interval, Julian years TDB since J2000
	eb  astro.Vec3 // observer barycentric position, au
	eh  astro.Vec3 // Sun to observer, unit vector
	em  float64    // Sun to observer, au
	v   astro.Vec3 // observer barycentric velocity, units of c
	bm1 float64    // sqrt(1-|v|²)
	bpn astro.Mat3 // GCRS to CIRS

	// Precession-nutation and Earth orientation; zero where the
	// constructor has no use for them.
	x, y, s, eo float64
	era, sp     float64
	pom         astro.Mat3

	along  float64 // adjusted longitude
	xpl    float64 // polar motion with respect to the local meridian
	ypl    float64
	sphi   float64
	cphi   float64
	diurab float64 // diurnal aberration, zero when folded into v
	eral   float64 // local Earth rotation angle
	refa   float64
	refb   float64

	site Site
	warn Warning
}

// PMInterval returns the proper-motion interval in Julian years.
func (c *Context) PMInterval() float64 { return c.pmt }

// ObserverPosition returns the observer's barycentric position, au.
func (c *Context) ObserverPosition() astro.Vec3 { return c.eb }

// SunToObserver returns the heliocentric direction and distance (au) of
// the observer.
func (c *Context) SunToObserver() (astro.Vec3, float64) { return c.eh, c.em }

// Velocity returns the observer's barycentric velocity in units of c and
// the reciprocal of the Lorentz factor.
func (c *Context) Velocity() (astro.Vec3, float64) { return c.v, c.bm1 }

// BPN returns the bias-precession-nutation matrix, GCRS to CIRS.
func (c *Context) BPN() astro.Mat3 { return c.bpn }

// CIP returns the CIP coordinates X, Y and the CIO locator s.
func (c *Context) CIP() (x, y, s float64) { return c.x, c.y, c.s }

// EquationOfOrigins returns the equation of the origins, ERA-GST.
func (c *Context) EquationOfOrigins() float64 { return c.eo }

// ERA returns the Earth rotation angle.
func (c *Context) ERA() float64 { return c.era }

// LocalERA returns the local Earth rotation angle.
func (c *Context) LocalERA() float64 { return c.eral }

// TIOLocator returns s′.
func (c *Context) TIOLocator() float64 { return c.sp }

// PolarMotion returns the polar-motion matrix.
func (c *Context) PolarMotion() astro.Mat3 { return c.pom }

// LocalPolarMotion returns the polar motion with respect to the local
// meridian.
func (c *Context) LocalPolarMotion() (xpl, ypl float64) { return c.xpl, c.ypl }

// AdjustedLongitude returns the longitude corrected for polar motion.
func (c *Context) AdjustedLongitude() float64 { return c.along }

// DiurnalAberration returns the magnitude of diurnal aberration applied in
// the observed transform; zero when it is already part of the velocity.
func (c *Context) DiurnalAberration() float64 { return c.diurab }

// Refraction returns the refraction constants A and B.
func (c *Context) Refraction() (a, b float64) { return c.refa, c.refb }

// Site returns the observing site after sanitizing.
func (c *Context) Site() Site { return c.site }

// Warnings returns the conditions noted while building.
func (c *Context) Warnings() Warning { return c.warn }
