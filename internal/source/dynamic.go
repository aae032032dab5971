package source

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/pybump/pybump/internal/core"
	"github.com/pybump/pybump/internal/pep440"
	"github.com/pybump/pybump/internal/pyproject"
)

// Manifest keys and values gating the dynamic file source.
const (
	// DynamicBackend is the build backend that understands file-sourced
	// dynamic versions.
	DynamicBackend = "pdm.pep517.api"

	// FileSourceKind is the tool.pdm.version.source value selecting a
	// file-based version.
	FileSourceKind = "file"
)

// Dynamic resolves a version that lives outside the manifest, in a file
// the manifest points at. It caches the version it observed or was given
// for the lifetime of one invocation: once resolved it never re-reads,
// so callers needing fresh state construct a new Dynamic.
//
// The manifest document is borrowed, not owned, and is consulted live on
// every descriptor derivation because other code may mutate it.
type Dynamic struct {
	fs      core.FileSystem
	root    string
	doc     *pyproject.Document
	pattern *regexp.Regexp

	current *pep440.Version
}

// NewDynamic creates a resolver for the project rooted at root.
func NewDynamic(fs core.FileSystem, root string, doc *pyproject.Document) *Dynamic {
	return &Dynamic{fs: fs, root: root, doc: doc}
}

// WithPattern overrides the pattern used for the version file. A nil
// pattern keeps the default.
func (d *Dynamic) WithPattern(pattern *regexp.Regexp) *Dynamic {
	d.pattern = pattern
	return d
}

// Verify Dynamic implements Source.
var _ Source = (*Dynamic)(nil)

// IsEnabled reports whether the manifest declares the version as
// dynamic (project.dynamic contains "version"). Pure query, no file I/O.
func (d *Dynamic) IsEnabled() bool {
	dynamic, ok := d.doc.GetStringSlice("project", "dynamic")
	if !ok {
		return false
	}
	for _, item := range dynamic {
		if item == "version" {
			return true
		}
	}
	return false
}

// CurrentVersion returns the cached version when already resolved.
// Otherwise it derives the file source from the manifest, reads the
// version through it, caches and returns it.
func (d *Dynamic) CurrentVersion(ctx context.Context) (pep440.Version, error) {
	if d.current != nil {
		return *d.current, nil
	}

	store, err := d.patternFile()
	if err != nil {
		return pep440.Version{}, err
	}

	raw, found, err := store.ReadCurrent(ctx)
	if err != nil {
		return pep440.Version{}, err
	}
	if !found {
		return pep440.Version{}, fmt.Errorf(
			"%w in %q: make sure the file matches pattern %s",
			ErrVersionNotFound, store.Path(), store.Pattern())
	}

	version, err := pep440.Parse(raw)
	if err != nil {
		return pep440.Version{}, err
	}

	d.current = &version
	return version, nil
}

// SetCurrentVersion overwrites the cached version. In-memory only; the
// file is not touched until Save.
func (d *Dynamic) SetCurrentVersion(v pep440.Version) {
	d.current = &v
}

// Save formats the cached version canonically and writes it through the
// pattern file. The file source is re-derived from live manifest state
// rather than remembered from the read.
func (d *Dynamic) Save(ctx context.Context) error {
	if d.current == nil {
		return fmt.Errorf("%w: no version was read or set", ErrNothingToSave)
	}

	store, err := d.patternFile()
	if err != nil {
		return err
	}
	return store.WriteVersion(ctx, d.current.String())
}

// patternFile derives the file source descriptor from the manifest. A
// dynamic file source exists iff the build backend is DynamicBackend and
// tool.pdm.version.source is "file"; the configured path is then
// resolved against the project root.
func (d *Dynamic) patternFile() (*PatternFile, error) {
	backend, _ := d.doc.GetString("build-system", "build-backend")
	kind, _ := d.doc.GetString("tool", "pdm", "version", "source")
	if backend != DynamicBackend || kind != FileSourceKind {
		return nil, fmt.Errorf(
			"%w for %q: only %s file sources are supported",
			ErrNotConfigured, d.root, DynamicBackend)
	}

	path, ok := d.doc.GetString("tool", "pdm", "version", "path")
	if !ok || path == "" {
		return nil, fmt.Errorf(
			"%w for %q: tool.pdm.version.path is missing",
			ErrNotConfigured, d.root)
	}

	return NewPatternFile(d.fs, filepath.Join(d.root, path), d.pattern), nil
}
