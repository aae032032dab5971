// Package source locates a project's version value and rewrites it in
// place. Two sources exist: the static one backed by project.version in
// pyproject.toml, and the dynamic one backed by a separate file that a
// build backend scans with a regular expression.
package source

import (
	"context"
	"errors"

	"github.com/pybump/pybump/internal/pep440"
)

var (
	// ErrVersionNotFound is returned when the configured pattern matches
	// nothing in the version file, either on read or on the re-check
	// before a write.
	ErrVersionNotFound = errors.New("version not found")

	// ErrNotConfigured is returned when dynamic versioning is requested
	// but the manifest does not declare a supported file source.
	ErrNotConfigured = errors.New("dynamic versioning not configured")

	// ErrNothingToSave is returned when Save is called before a version
	// was read or set. It indicates a caller ordering bug.
	ErrNothingToSave = errors.New("no version to save")
)

// Source is a readable and writable home for a project's version.
type Source interface {
	// IsEnabled reports whether the manifest selects this source.
	IsEnabled() bool

	// CurrentVersion returns the version currently recorded, resolving
	// it on first use.
	CurrentVersion(ctx context.Context) (pep440.Version, error)

	// SetCurrentVersion records a new version in memory.
	SetCurrentVersion(v pep440.Version)

	// Save persists the recorded version.
	Save(ctx context.Context) error
}
