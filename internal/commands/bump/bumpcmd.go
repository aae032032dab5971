package bump

import (
	"context"
	"fmt"

	"github.com/pybump/pybump/internal/pep440"
	"github.com/urfave/cli/v3"
)

// Run returns the "bump" parent command.
func Run() *cli.Command {
	return &cli.Command{
		Name:      "bump",
		Usage:     "Bump the project version (major, minor, micro, pre, ...)",
		UsageText: "pybump bump <subcommand> [--flags]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "tag",
				Usage: "Create a git tag after bumping",
			},
			&cli.StringFlag{
				Name:    "message",
				Aliases: []string{"m"},
				Usage:   "Tag message (implies an annotated or signed tag)",
			},
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
		Commands: []*cli.Command{
			majorCmd(),
			minorCmd(),
			microCmd(),
			preCmd(),
			releaseCmd(),
			postCmd(),
			devCmd(),
			epochCmd(),
		},
	}
}

func majorCmd() *cli.Command {
	return &cli.Command{
		Name:  "major",
		Usage: "Increase the major part (1.2.3 -> 2.0.0)",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return applyBump(ctx, cmd, func(v pep440.Version) (pep440.Version, error) {
				return v.NextMajor(), nil
			})
		},
	}
}

func minorCmd() *cli.Command {
	return &cli.Command{
		Name:  "minor",
		Usage: "Increase the minor part (1.2.3 -> 1.3.0)",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return applyBump(ctx, cmd, func(v pep440.Version) (pep440.Version, error) {
				return v.NextMinor(), nil
			})
		},
	}
}

func microCmd() *cli.Command {
	return &cli.Command{
		Name:    "micro",
		Aliases: []string{"patch"},
		Usage:   "Increase the micro part (1.2.3 -> 1.2.4)",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return applyBump(ctx, cmd, func(v pep440.Version) (pep440.Version, error) {
				return v.NextMicro(), nil
			})
		},
	}
}

func preCmd() *cli.Command {
	return &cli.Command{
		Name:  "pre",
		Usage: "Move to the next pre-release (1.2.3 -> 1.2.4a1, 1.2.4a1 -> 1.2.4a2)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "label",
				Aliases:  []string{"l"},
				Usage:    "Pre-release label: alpha, beta, rc or c",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			transition, err := preTransition(cmd.String("label"))
			if err != nil {
				return err
			}
			return applyBump(ctx, cmd, transition)
		},
	}
}

// preTransition maps a pre-release label to its version transition.
func preTransition(label string) (func(pep440.Version) (pep440.Version, error), error) {
	switch label {
	case "alpha", "a":
		return pep440.Version.NextAlpha, nil
	case "beta", "b":
		return pep440.Version.NextBeta, nil
	case "rc", "c", "release-candidate":
		return pep440.Version.NextReleaseCandidate, nil
	}
	return nil, fmt.Errorf("invalid pre-release label %q: expected alpha, beta, rc or c", label)
}

func releaseCmd() *cli.Command {
	return &cli.Command{
		Name:    "release",
		Aliases: []string{"no-pre-release"},
		Usage:   "Finalize the version, dropping pre-release, post, dev and local parts",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return applyBump(ctx, cmd, func(v pep440.Version) (pep440.Version, error) {
				return v.Finalize(), nil
			})
		},
	}
}

func postCmd() *cli.Command {
	return &cli.Command{
		Name:  "post",
		Usage: "Increase the post-release part (1.2.3 -> 1.2.3.post1)",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return applyBump(ctx, cmd, func(v pep440.Version) (pep440.Version, error) {
				return v.NextPost(), nil
			})
		},
	}
}

func devCmd() *cli.Command {
	return &cli.Command{
		Name:  "dev",
		Usage: "Increase the development release part (1.2.3 -> 1.2.3.dev1)",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return applyBump(ctx, cmd, func(v pep440.Version) (pep440.Version, error) {
				return v.NextDev(), nil
			})
		},
	}
}

func epochCmd() *cli.Command {
	return &cli.Command{
		Name:  "epoch",
		Usage: "Increase the epoch and reset the release (1.2.3 -> 1!1)",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return applyBump(ctx, cmd, func(v pep440.Version) (pep440.Version, error) {
				return v.NextEpoch(), nil
			})
		},
	}
}
