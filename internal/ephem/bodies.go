package ephem

import (
	"strconv"
	"strings"
)

// Body is a NAIF SPICE ID. Planets are identified by their system
// barycentres, which is what light deflection needs.
type Body int

// NAIF IDs of the bodies this package knows.
// Sourced from https://naif.jpl.nasa.gov/pub/naif/toolkit_docs/C/req/naif_ids.html
const (
	SSB       Body = 0
	Mercury   Body = 1
	Venus     Body = 2
	EarthMoon Body = 3
	Mars      Body = 4
	Jupiter   Body = 5
	Saturn    Body = 6
	Uranus    Body = 7
	Neptune   Body = 8
	Sun       Body = 10
	EarthBody Body = 399
	Moon      Body = 301
)

// BodyInfo describes a body as a light deflector.
type BodyInfo struct {
	ID      Body
	Name    string
	Mass    float64 // solar masses, including satellites
	Limiter float64 // radians; sources closer than this are not deflected
}

// Catalog lists the known deflecting bodies, Sun first. Limiters are of
// the order of the apparent radius seen from the Earth.
var Catalog = []BodyInfo{
	{ID: Sun, Name: "Sun", Mass: 1, Limiter: 3.5e-3},
	{ID: Mercury, Name: "Mercury", Mass: 1 / 6023600.0, Limiter: 4.5e-7},
	{ID: Venus, Name: "Venus", Mass: 1 / 408523.71, Limiter: 1.4e-6},
	{ID: EarthMoon, Name: "Earth-Moon", Mass: 1 / 328900.56, Limiter: 1.4e-6},
	{ID: Mars, Name: "Mars", Mass: 1 / 3098708.0, Limiter: 4.5e-7},
	{ID: Jupiter, Name: "Jupiter", Mass: 1 / 1047.3486, Limiter: 7.7e-5},
	{ID: Saturn, Name: "Saturn", Mass: 1 / 3497.898, Limiter: 2.4e-5},
	{ID: Uranus, Name: "Uranus", Mass: 1 / 22902.98, Limiter: 4.5e-6},
	{ID: Neptune, Name: "Neptune", Mass: 1 / 19412.24, Limiter: 4.5e-6},
}

// CatalogByID maps NAIF ID to catalogue entry.
var CatalogByID = func() map[Body]BodyInfo {
	m := make(map[Body]BodyInfo, len(Catalog))
	for _, b := range Catalog {
		m[b.ID] = b
	}
	return m
}()

// String returns the body name, or its NAIF ID if it is not catalogued.
func (b Body) String() string {
	if info, ok := CatalogByID[b]; ok {
		return info.Name
	}
	switch b {
	case SSB:
		return "SSB"
	case EarthBody:
		return "Earth"
	case Moon:
		return "Moon"
	}
	return "NAIF " + strconv.Itoa(int(b))
}

// LookupBody finds a catalogued body by name, case-insensitively.
func LookupBody(name string) (BodyInfo, bool) {
	for _, b := range Catalog {
		if strings.EqualFold(b.Name, name) {
			return b, true
		}
	}
	return BodyInfo{}, false
}

// DefaultDeflectors returns the bodies whose deflection matters at the
// microarcsecond level for most of the sky: Sun, Jupiter and Saturn, in the
// order they should be applied.
func DefaultDeflectors() []BodyInfo {
	return []BodyInfo{CatalogByID[Sun], CatalogByID[Jupiter], CatalogByID[Saturn]}
}
