// Package site loads observing-site configuration from YAML.
package site

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-astrom/internal/astro"
	"github.com/litescript/ls-astrom/internal/astrom"
	"github.com/litescript/ls-astrom/internal/earth"
	"github.com/litescript/ls-astrom/internal/ephem"
	"github.com/litescript/ls-astrom/internal/logging"
	"github.com/litescript/ls-astrom/internal/precnut"
	"github.com/litescript/ls-astrom/internal/timescale"
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("site: invalid configuration")

// Config describes an observing site and the conditions there.
type Config struct {
	Name      string  `yaml:"name"`
	Longitude float64 `yaml:"longitude"` // degrees, east positive
	Latitude  float64 `yaml:"latitude"`  // degrees
	Height    float64 `yaml:"height"`    // metres above the ellipsoid
	Ellipsoid string  `yaml:"ellipsoid"`

	Pressure    float64 `yaml:"pressure"`    // hPa; zero for no refraction
	Temperature float64 `yaml:"temperature"` // °C
	Humidity    float64 `yaml:"humidity"`    // 0-1
	Wavelength  float64 `yaml:"wavelength"`  // µm

	PolarMotion PolarMotion `yaml:"polar_motion"`
	DUT1        float64     `yaml:"dut1"` // UT1-UTC, seconds

	Nutation   string   `yaml:"nutation"`
	Ephemeris  string   `yaml:"ephemeris"`
	Deflectors []string `yaml:"deflectors"`
}

// PolarMotion holds the pole coordinates in arcseconds.
type PolarMotion struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// DefaultConfig returns a sea-level site at Greenwich under standard
// conditions.
func DefaultConfig() Config {
	env := earth.StandardEnv()
	return Config{
		Name:        "Greenwich",
		Longitude:   -0.0015,
		Latitude:    51.4779,
		Height:      46,
		Ellipsoid:   earth.WGS84.String(),
		Pressure:    env.Pressure,
		Temperature: env.Temperature,
		Humidity:    env.Humidity,
		Wavelength:  env.Wavelength,
		Nutation:    precnut.ModelIAU2000B.String(),
		Ephemeris:   ephem.ModeAnalytic.String(),
		Deflectors:  []string{"Sun", "Jupiter", "Saturn"},
	}
}

// Load reads and validates a config file. Fields missing from the file keep
// their DefaultConfig values.
func Load(path string, log *logging.Logger) (Config, error) {
	if log == nil {
		log = logging.Discard()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read site config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug("loaded site", "path", path, "name", cfg.Name,
		"lon", cfg.Longitude, "lat", cfg.Latitude, "height", cfg.Height)
	return cfg, nil
}

// Parse decodes and validates YAML over DefaultConfig.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse site config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks ranges and names.
func (c Config) Validate() error {
	check := func(ok bool, format string, args ...any) error {
		if ok {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}
	if err := check(c.Latitude >= -90 && c.Latitude <= 90, "latitude %v", c.Latitude); err != nil {
		return err
	}
	if err := check(c.Longitude >= -180 && c.Longitude <= 360, "longitude %v", c.Longitude); err != nil {
		return err
	}
	if err := check(c.Height >= astrom.MinHeight && c.Height <= astrom.MaxHeight, "height %v", c.Height); err != nil {
		return err
	}
	if err := check(c.Pressure >= 0, "pressure %v", c.Pressure); err != nil {
		return err
	}
	if err := check(c.Humidity >= 0 && c.Humidity <= 1, "humidity %v", c.Humidity); err != nil {
		return err
	}
	if err := check(c.Pressure == 0 || c.Wavelength > 0, "wavelength %v", c.Wavelength); err != nil {
		return err
	}
	if _, err := earth.ParseEllipsoid(c.Ellipsoid); err != nil {
		return fmt.Errorf("%w: ellipsoid %q", ErrInvalidConfig, c.Ellipsoid)
	}
	switch c.Nutation {
	case "", "iau2000b", "iau1980", "low":
	default:
		return fmt.Errorf("%w: nutation %q", ErrInvalidConfig, c.Nutation)
	}
	switch c.Ephemeris {
	case "", "analytic", "horizons":
	default:
		return fmt.Errorf("%w: ephemeris %q", ErrInvalidConfig, c.Ephemeris)
	}
	if _, err := c.DeflectorInfo(); err != nil {
		return err
	}
	return nil
}

// Site returns the geodetic site in radians.
func (c Config) Site() astrom.Site {
	return astrom.Site{
		Longitude: c.Longitude * astro.DegToRad,
		Latitude:  c.Latitude * astro.DegToRad,
		Height:    c.Height,
	}
}

// Env returns the ambient conditions.
func (c Config) Env() earth.Env {
	return earth.Env{
		Pressure:    c.Pressure,
		Temperature: c.Temperature,
		Humidity:    c.Humidity,
		Wavelength:  c.Wavelength,
	}
}

// EphemerisMode returns the configured ephemeris source.
func (c Config) EphemerisMode() ephem.Mode {
	return ephem.ParseMode(c.Ephemeris)
}

// DeflectorInfo returns the configured deflectors in order.
func (c Config) DeflectorInfo() ([]ephem.BodyInfo, error) {
	out := make([]ephem.BodyInfo, 0, len(c.Deflectors))
	for _, name := range c.Deflectors {
		info, ok := ephem.LookupBody(name)
		if !ok {
			return nil, fmt.Errorf("%w: deflector %q", ErrInvalidConfig, name)
		}
		out = append(out, info)
	}
	return out, nil
}

// Conditions returns the observing conditions at t. The ephemeris is left
// nil, selecting the analytic model; callers using Horizons set it.
func (c Config) Conditions(t time.Time) astrom.Conditions {
	ell, _ := earth.ParseEllipsoid(c.Ellipsoid) // WGS84 on error; Validate reports it
	return astrom.Conditions{
		UTC:  timescale.FromTime(t),
		DUT1: c.DUT1,
		Site: c.Site(),
		Polar: astrom.Polar{
			XP: c.PolarMotion.X * astro.ArcsecToRad,
			YP: c.PolarMotion.Y * astro.ArcsecToRad,
		},
		Ellipsoid: ell,
		Env:       c.Env(),
		Nutation:  precnut.ParseModel(c.Nutation),
	}
}
