// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Observed-to-catalogue inverse, round-trip residuals, YAML site files
// 0.2.0 - Horizons tabulated ephemeris, light deflection by Jupiter and Saturn
// 0.1.0 - Initial release: catalogue to observed places, TUI table and sky view, JSON export
