// Package workspace opens a Python project for version operations: it
// resolves the project root, loads the tool configuration and the
// manifest, and picks the version source the manifest asks for.
package workspace

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pybump/pybump/internal/config"
	"github.com/pybump/pybump/internal/core"
	"github.com/pybump/pybump/internal/filesync"
	"github.com/pybump/pybump/internal/pyproject"
	"github.com/pybump/pybump/internal/source"
)

// Project is an opened project: everything a command needs to read and
// write its version.
type Project struct {
	Root   string
	FS     core.FileSystem
	Config *config.Config
	Doc    *pyproject.Document
}

// Open loads the project rooted at the resolved directory. rootFlag is
// the --project flag value; empty falls back to PYBUMP_PROJECT and then
// the working directory.
func Open(ctx context.Context, fs core.FileSystem, rootFlag string) (*Project, error) {
	root, err := config.ProjectRoot(rootFlag)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	cfg, err := config.Load(ctx, fs, root)
	if err != nil {
		return nil, err
	}

	doc, err := pyproject.LoadDir(ctx, fs, root)
	if err != nil {
		return nil, err
	}

	return &Project{Root: root, FS: fs, Config: cfg, Doc: doc}, nil
}

// Source returns the version source the manifest selects: dynamic when
// project.dynamic lists "version", otherwise static.
func (p *Project) Source() (source.Source, error) {
	dynamic, err := p.Dynamic()
	if err != nil {
		return nil, err
	}
	return source.Select(dynamic, source.NewStatic(p.Doc))
}

// Dynamic returns the dynamic source, honoring a configured pattern
// override.
func (p *Project) Dynamic() (*source.Dynamic, error) {
	pattern, err := p.Config.CompilePattern()
	if err != nil {
		return nil, err
	}
	return source.NewDynamic(p.FS, p.Root, p.Doc).WithPattern(pattern), nil
}

// SyncTargets returns the configured sync targets with their paths
// resolved against the project root.
func (p *Project) SyncTargets() []filesync.Target {
	targets := make([]filesync.Target, 0, len(p.Config.Sync))
	for _, target := range p.Config.Sync {
		if !filepath.IsAbs(target.Path) {
			target.Path = filepath.Join(p.Root, target.Path)
		}
		targets = append(targets, target)
	}
	return targets
}
