package source

import (
	"context"
	"fmt"

	"github.com/pybump/pybump/internal/pep440"
	"github.com/pybump/pybump/internal/pyproject"
)

// Static is the PEP 621 source: the version lives directly in the
// manifest as project.version. Reads and writes go through the borrowed
// document; Save persists the whole manifest.
type Static struct {
	doc *pyproject.Document
}

// NewStatic creates a source backed by project.version.
func NewStatic(doc *pyproject.Document) *Static {
	return &Static{doc: doc}
}

// Verify Static implements Source.
var _ Source = (*Static)(nil)

// IsEnabled reports whether the manifest declares project.version.
func (s *Static) IsEnabled() bool {
	_, ok := s.doc.GetString("project", "version")
	return ok
}

// CurrentVersion parses project.version from the manifest.
func (s *Static) CurrentVersion(ctx context.Context) (pep440.Version, error) {
	raw, ok := s.doc.GetString("project", "version")
	if !ok {
		return pep440.Version{}, fmt.Errorf(
			"%w in %q: project.version is missing", ErrVersionNotFound, s.doc.Path())
	}
	return pep440.Parse(raw)
}

// SetCurrentVersion writes the canonical form into the in-memory
// document. The manifest file is not touched until Save.
func (s *Static) SetCurrentVersion(v pep440.Version) {
	// Set on an existing project table cannot fail.
	_ = s.doc.Set(v.String(), "project", "version")
}

// Save persists the manifest.
func (s *Static) Save(ctx context.Context) error {
	return s.doc.Save(ctx)
}

// Select returns the source the manifest asks for: the dynamic one when
// project.dynamic lists "version", otherwise the static one when
// project.version exists. Neither being enabled is a configuration
// error.
func Select(dynamic *Dynamic, static *Static) (Source, error) {
	if dynamic.IsEnabled() {
		return dynamic, nil
	}
	if static.IsEnabled() {
		return static, nil
	}
	return nil, fmt.Errorf(
		"%w: manifest declares neither a dynamic nor a static version", ErrNotConfigured)
}
