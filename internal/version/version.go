// Package version exposes pybump's own build version.
package version

// version is overridden at build time via
// -ldflags "-X github.com/pybump/pybump/internal/version.version=...".
var version = "0.3.0"

// GetVersion returns the current pybump version.
func GetVersion() string {
	return version
}
