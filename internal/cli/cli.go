// Package cli assembles the pybump command tree.
package cli

import (
	"context"
	"fmt"

	"github.com/pybump/pybump/internal/commands/bump"
	"github.com/pybump/pybump/internal/commands/initialize"
	"github.com/pybump/pybump/internal/commands/set"
	"github.com/pybump/pybump/internal/commands/show"
	"github.com/pybump/pybump/internal/config"
	"github.com/pybump/pybump/internal/printer"
	"github.com/pybump/pybump/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

var noColorFlag bool

// New builds and returns the root CLI command, configuring all
// subcommands and flags for the pybump cli.
func New() *urfavecli.Command {
	return &urfavecli.Command{
		Name:                  "pybump",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "PEP 440 version bumper for Python projects",
		EnableShellCompletion: true,
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:        "project",
				Aliases:     []string{"C"},
				Usage:       "Path to the project root",
				DefaultText: "$" + config.EnvProject + " or the working directory",
			},
			&urfavecli.BoolFlag{
				Name:        "no-color",
				Usage:       "Disable colored output",
				Destination: &noColorFlag,
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(noColorFlag)
			return ctx, nil
		},
		Commands: []*urfavecli.Command{
			initialize.Run(),
			show.Run(),
			set.Run(),
			bump.Run(),
		},
	}
}
