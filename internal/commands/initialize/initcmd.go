// Package initialize implements the "init" command: configure where the
// project version lives, either in pyproject.toml itself or in a
// version file the manifest points at.
package initialize

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/huh"
	"github.com/pybump/pybump/internal/config"
	"github.com/pybump/pybump/internal/core"
	"github.com/pybump/pybump/internal/pep440"
	"github.com/pybump/pybump/internal/printer"
	"github.com/pybump/pybump/internal/pyproject"
	"github.com/pybump/pybump/internal/source"
	"github.com/pybump/pybump/internal/tui"
	"github.com/urfave/cli/v3"
)

// Version source kinds accepted by the command.
const (
	SourceStatic = "static"
	SourceFile   = "file"
)

// DefaultVersion seeds newly configured projects.
const DefaultVersion = "0.1.0"

// Options collects the choices the command needs; empty fields are
// prompted for interactively.
type Options struct {
	SourceKind string
	Path       string
	Version    string
}

// Run returns the "init" command.
func Run() *cli.Command {
	return &cli.Command{
		Name:    "init",
		Aliases: []string{"initialize"},
		Usage:   "Configure where the project version lives",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "source",
				Usage: "Version source: static (project.version) or file (__version__ attribute)",
			},
			&cli.StringFlag{
				Name:  "path",
				Usage: "Version file path for the file source, relative to the project root",
			},
			&cli.StringFlag{
				Name:  "version",
				Usage: "Initial version",
				Value: DefaultVersion,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts := Options{
				SourceKind: cmd.String("source"),
				Path:       cmd.String("path"),
				Version:    cmd.String("version"),
			}
			return Initialize(ctx, core.NewOSFileSystem(), cmd.String("project"), opts, NewPrompter())
		},
	}
}

// Initialize applies the options to the project rooted at the resolved
// directory, prompting for anything missing when the terminal allows it.
func Initialize(ctx context.Context, cfs core.FileSystem, rootFlag string, opts Options, prompter Prompter) error {
	root, err := config.ProjectRoot(rootFlag)
	if err != nil {
		return fmt.Errorf("failed to resolve project root: %w", err)
	}

	doc, err := loadOrCreateManifest(ctx, cfs, root)
	if err != nil {
		return err
	}

	if opts.SourceKind == "" {
		if !tui.IsInteractive() {
			return fmt.Errorf("--source is required when not running interactively (static or file)")
		}
		if err := promptOptions(root, &opts, prompter); err != nil {
			return err
		}
	}

	if opts.Version == "" {
		opts.Version = DefaultVersion
	}
	version, err := pep440.Parse(opts.Version)
	if err != nil {
		return err
	}

	switch opts.SourceKind {
	case SourceStatic:
		return initStatic(ctx, doc, version)
	case SourceFile:
		if opts.Path == "" {
			return fmt.Errorf("--path is required for the file source")
		}
		return initFile(ctx, cfs, root, doc, opts.Path, version)
	default:
		return fmt.Errorf("invalid source %q: expected static or file", opts.SourceKind)
	}
}

// promptOptions fills the missing options through interactive prompts.
func promptOptions(root string, opts *Options, prompter Prompter) error {
	kind, err := prompter.Select(
		"Where should the project version live?",
		"",
		[]huh.Option[string]{
			huh.NewOption("pyproject.toml (project.version)", SourceStatic),
			huh.NewOption("A version file (__version__ attribute)", SourceFile),
		},
	)
	if err != nil {
		return err
	}
	opts.SourceKind = kind

	if kind == SourceFile && opts.Path == "" {
		var candidates []string
		if err := tui.Spin("Scanning for version files...", func() {
			candidates = ScanVersionFiles(root)
		}); err != nil {
			return err
		}

		initial := ""
		if len(candidates) > 0 {
			initial = candidates[0]
		}
		path, err := prompter.Input(
			"Version file path",
			"Relative to the project root",
			initial,
			candidates,
			func(s string) error {
				if s == "" {
					return fmt.Errorf("path is required")
				}
				return nil
			},
		)
		if err != nil {
			return err
		}
		opts.Path = path
	}

	initial, err := prompter.Input(
		"Initial version",
		"",
		opts.Version,
		nil,
		func(s string) error {
			if !pep440.CanParse(s) {
				return fmt.Errorf("%q is not a valid version", s)
			}
			return nil
		},
	)
	if err != nil {
		return err
	}
	opts.Version = initial
	return nil
}

// loadOrCreateManifest loads pyproject.toml, starting an empty document
// when the file does not exist yet.
func loadOrCreateManifest(ctx context.Context, cfs core.FileSystem, root string) (*pyproject.Document, error) {
	doc, err := pyproject.LoadDir(ctx, cfs, root)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return pyproject.New(cfs, filepath.Join(root, pyproject.FileName), nil), nil
}

// initStatic writes the version directly into project.version.
func initStatic(ctx context.Context, doc *pyproject.Document, version pep440.Version) error {
	if err := doc.Set(version.String(), "project", "version"); err != nil {
		return err
	}
	if err := doc.Save(ctx); err != nil {
		return err
	}
	printer.PrintSuccess(fmt.Sprintf("Configured project.version = %s in %s", version, doc.Path()))
	return nil
}

// initFile declares the version as dynamic and points the manifest at a
// version file, seeding the file when it does not exist yet.
func initFile(ctx context.Context, cfs core.FileSystem, root string, doc *pyproject.Document, path string, version pep440.Version) error {
	dynamic, _ := doc.GetStringSlice("project", "dynamic")
	if !slices.Contains(dynamic, "version") {
		dynamic = append(dynamic, "version")
	}
	if err := doc.Set(dynamic, "project", "dynamic"); err != nil {
		return err
	}
	if err := doc.Set([]string{"pdm-pep517"}, "build-system", "requires"); err != nil {
		return err
	}
	if err := doc.Set(source.DynamicBackend, "build-system", "build-backend"); err != nil {
		return err
	}
	if err := doc.Set(source.FileSourceKind, "tool", "pdm", "version", "source"); err != nil {
		return err
	}
	if err := doc.Set(path, "tool", "pdm", "version", "path"); err != nil {
		return err
	}
	if err := doc.Save(ctx); err != nil {
		return err
	}

	full := filepath.Join(root, path)
	if _, err := cfs.Stat(ctx, full); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to stat %q: %w", full, err)
		}
		if err := cfs.MkdirAll(ctx, filepath.Dir(full), core.PermDir); err != nil {
			return fmt.Errorf("failed to create %q: %w", filepath.Dir(full), err)
		}
		content := fmt.Sprintf("__version__ = %q\n", version.String())
		if err := cfs.WriteFile(ctx, full, []byte(content), core.PermOwnerRW); err != nil {
			return fmt.Errorf("failed to seed %q: %w", full, err)
		}
		printer.PrintSuccess("Created " + full)
	}

	printer.PrintSuccess(fmt.Sprintf("Configured dynamic version from %s (%s)", path, version))
	return nil
}
