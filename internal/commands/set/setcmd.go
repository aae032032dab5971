// Package set implements the "set" command: write an explicit version.
package set

import (
	"context"
	"fmt"

	"github.com/pybump/pybump/internal/core"
	"github.com/pybump/pybump/internal/filesync"
	"github.com/pybump/pybump/internal/pep440"
	"github.com/pybump/pybump/internal/printer"
	"github.com/pybump/pybump/internal/workspace"
	"github.com/urfave/cli/v3"
)

// Run returns the "set" command.
func Run() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Aliases:   []string{"to"},
		Usage:     "Set the project version to an explicit value",
		UsageText: "pybump set <version>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-sync",
				Usage: "Skip updating configured sync files",
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"n"},
				Usage:   "Show the resulting version without writing anything",
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	raw := cmd.Args().First()
	if raw == "" {
		return fmt.Errorf("missing version argument: usage: pybump set <version>")
	}

	version, err := pep440.Parse(raw)
	if err != nil {
		return err
	}

	proj, err := workspace.Open(ctx, core.NewOSFileSystem(), cmd.String("project"))
	if err != nil {
		return err
	}

	src, err := proj.Source()
	if err != nil {
		return err
	}

	if cmd.Bool("dry-run") {
		printer.PrintInfo(fmt.Sprintf("Would set version: %s", version))
		return nil
	}

	src.SetCurrentVersion(version)
	if err := src.Save(ctx); err != nil {
		return err
	}

	if !cmd.Bool("no-sync") {
		if err := filesync.NewSyncer(proj.FS).Apply(ctx, proj.SyncTargets(), version.String()); err != nil {
			return fmt.Errorf("version set to %s but sync failed: %w", version, err)
		}
	}

	printer.PrintSuccess(fmt.Sprintf("Set version: %s", version))
	return nil
}
