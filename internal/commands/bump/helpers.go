package bump

import (
	"context"
	"fmt"

	"github.com/pybump/pybump/internal/core"
	"github.com/pybump/pybump/internal/filesync"
	"github.com/pybump/pybump/internal/git"
	"github.com/pybump/pybump/internal/pep440"
	"github.com/pybump/pybump/internal/printer"
	"github.com/pybump/pybump/internal/workspace"
	"github.com/urfave/cli/v3"
)

// applyBump runs one bump end to end: open the project, compute the next
// version, persist it through the selected source, sync auxiliary files
// and optionally create a git tag.
func applyBump(ctx context.Context, cmd *cli.Command, transition func(pep440.Version) (pep440.Version, error)) error {
	proj, err := workspace.Open(ctx, core.NewOSFileSystem(), cmd.String("project"))
	if err != nil {
		return err
	}

	src, err := proj.Source()
	if err != nil {
		return err
	}

	current, err := src.CurrentVersion(ctx)
	if err != nil {
		return err
	}

	next, err := transition(current)
	if err != nil {
		return err
	}

	if cmd.Bool("dry-run") {
		printer.PrintInfo(fmt.Sprintf("Would bump version: %s -> %s", current, next))
		return nil
	}

	src.SetCurrentVersion(next)
	if err := src.Save(ctx); err != nil {
		return err
	}

	if !cmd.Bool("no-sync") {
		if err := filesync.NewSyncer(proj.FS).Apply(ctx, proj.SyncTargets(), next.String()); err != nil {
			return fmt.Errorf("version bumped to %s but sync failed: %w", next, err)
		}
	}

	if cmd.Bool("tag") {
		if err := createTag(proj, next, cmd.String("message")); err != nil {
			return err
		}
	}

	printer.PrintSuccess(fmt.Sprintf("Bumped version: %s -> %s", current, next))
	return nil
}

// createTag tags the project repository with the new version, refusing
// to overwrite an existing tag.
func createTag(proj *workspace.Project, version pep440.Version, message string) error {
	tagger := git.NewTagger(proj.Root)
	if !tagger.IsRepository() {
		return fmt.Errorf("cannot tag: %q is not a git repository", proj.Root)
	}

	name := proj.Config.TagName(version.String())
	exists, err := tagger.TagExists(name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("tag %q already exists", name)
	}

	if message == "" {
		message = fmt.Sprintf("Release %s", version)
	}

	tagCfg := proj.Config.Tag
	switch {
	case tagCfg != nil && tagCfg.Signed:
		err = tagger.CreateSignedTag(name, message, tagCfg.KeyID)
	case tagCfg != nil && tagCfg.Annotated:
		err = tagger.CreateAnnotatedTag(name, message)
	default:
		err = tagger.CreateLightweightTag(name)
	}
	if err != nil {
		return err
	}

	printer.PrintSuccess("Created tag: " + name)
	return nil
}
