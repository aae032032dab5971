// Package git shells out to the git binary for the tag operations that
// follow a version bump.
package git

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// Tagger runs git tag operations in a working directory.
type Tagger struct {
	dir         string
	execCommand func(name string, arg ...string) *exec.Cmd
}

// NewTagger creates a Tagger operating in dir.
func NewTagger(dir string) *Tagger {
	return &Tagger{dir: dir, execCommand: exec.Command}
}

func (t *Tagger) run(args ...string) (string, error) {
	cmd := t.execCommand("git", args...)
	cmd.Dir = t.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w", msg, err)
		}
		return "", fmt.Errorf("git %s failed: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// IsRepository reports whether the directory is inside a git work tree.
func (t *Tagger) IsRepository() bool {
	out, err := t.run("rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// TagExists reports whether a tag with the given name exists.
func (t *Tagger) TagExists(name string) (bool, error) {
	out, err := t.run("tag", "-l", name)
	if err != nil {
		return false, fmt.Errorf("failed to list tags: %w", err)
	}
	return out == name, nil
}

// CreateLightweightTag creates a plain tag at HEAD.
func (t *Tagger) CreateLightweightTag(name string) error {
	if _, err := t.run("tag", name); err != nil {
		return fmt.Errorf("git tag (lightweight): %w", err)
	}
	return nil
}

// CreateAnnotatedTag creates an annotated tag at HEAD.
func (t *Tagger) CreateAnnotatedTag(name, message string) error {
	if _, err := t.run("tag", "-a", name, "-m", message); err != nil {
		return fmt.Errorf("git tag (annotated): %w", err)
	}
	return nil
}

// CreateSignedTag creates a GPG-signed tag at HEAD. An empty keyID uses
// the signing key git is configured with.
func (t *Tagger) CreateSignedTag(name, message, keyID string) error {
	args := []string{"tag", "-s"}
	if keyID != "" {
		args = append(args, "-u", keyID)
	}
	args = append(args, name, "-m", message)
	if _, err := t.run(args...); err != nil {
		return fmt.Errorf("git tag (signed): %w", err)
	}
	return nil
}

// LatestTag returns the most recent reachable tag name.
func (t *Tagger) LatestTag() (string, error) {
	out, err := t.run("describe", "--tags", "--abbrev=0")
	if err != nil {
		return "", fmt.Errorf("failed to find latest tag: %w", err)
	}
	return out, nil
}
