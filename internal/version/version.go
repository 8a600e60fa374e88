// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Moon transit interpolation, solar clock time, azimuth search
// 0.2.0 - Custom twilight events, deprecated alias table, site presets
// 0.1.0 - Initial release: sun/moon almanac core, TUI, headless modes
