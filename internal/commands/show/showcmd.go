// Package show implements the "show" command: print the current
// project version.
package show

import (
	"context"
	"fmt"

	"github.com/pybump/pybump/internal/core"
	"github.com/pybump/pybump/internal/printer"
	"github.com/pybump/pybump/internal/workspace"
	"github.com/urfave/cli/v3"
)

// Run returns the "show" command.
func Run() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print the current project version",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Also print the version parts",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			proj, err := workspace.Open(ctx, core.NewOSFileSystem(), cmd.String("project"))
			if err != nil {
				return err
			}

			src, err := proj.Source()
			if err != nil {
				return err
			}

			version, err := src.CurrentVersion(ctx)
			if err != nil {
				return err
			}

			// Plain output keeps the default form scriptable.
			fmt.Println(version.String())

			if cmd.Bool("verbose") {
				printer.PrintFaint(fmt.Sprintf("  epoch: %d", version.Epoch))
				printer.PrintFaint(fmt.Sprintf("  major: %d", version.Major()))
				printer.PrintFaint(fmt.Sprintf("  minor: %d", version.Minor()))
				printer.PrintFaint(fmt.Sprintf("  micro: %d", version.Micro()))
				if version.Pre != nil {
					printer.PrintFaint(fmt.Sprintf("  pre:   %s%d", version.Pre.Letter, version.Pre.Number))
				}
				if version.Post != nil {
					printer.PrintFaint(fmt.Sprintf("  post:  %d", *version.Post))
				}
				if version.Dev != nil {
					printer.PrintFaint(fmt.Sprintf("  dev:   %d", *version.Dev))
				}
				if version.Local != "" {
					printer.PrintFaint("  local: " + version.Local)
				}
			}
			return nil
		},
	}
}
