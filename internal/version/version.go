// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - HTTP surface, OpenTelemetry spans, desktop window host
// 0.2.0 - Per-layer clocks, scene files, JSON export
// 0.1.0 - Initial release: starfield, orbit rings, animated SVG, TUI orrery
