package source

import (
	"context"
	"fmt"
	"regexp"

	"github.com/pybump/pybump/internal/core"
)

// VersionGroup is the named capture group a pattern must define to mark
// the version substring inside its match.
const VersionGroup = "version"

// DefaultPattern matches the conventional version attribute line of a
// Python module: __version__ = "<value>" or __version__ = '<value>',
// optionally followed by a trailing comment. Anchors match at line
// boundaries; the first match in the file wins.
var DefaultPattern = regexp.MustCompile(`(?m)^__version__\s*=\s*["'](?P<version>.+?)["']\s*(?:#.*)?$`)

// PatternFile locates and replaces a version substring inside a text
// file using a single regular expression. It holds no state beyond the
// path and the pattern; every operation re-reads the file so that
// out-of-band edits are never masked.
//
// The pattern must define exactly one named group called "version";
// passing a pattern without it is a caller contract violation.
type PatternFile struct {
	fs      core.FileSystem
	path    string
	pattern *regexp.Regexp
}

// NewPatternFile creates a store for the file at path using the given
// pattern. A nil pattern selects DefaultPattern.
func NewPatternFile(fs core.FileSystem, path string, pattern *regexp.Regexp) *PatternFile {
	if pattern == nil {
		pattern = DefaultPattern
	}
	return &PatternFile{fs: fs, path: path, pattern: pattern}
}

// Path returns the file path the store operates on.
func (p *PatternFile) Path() string {
	return p.path
}

// Pattern returns the source text of the configured pattern.
func (p *PatternFile) Pattern() string {
	return p.pattern.String()
}

// ReadCurrent reads the file and returns the content of the pattern's
// version group for the first match. The second return value is false
// when the pattern matches nothing; that case carries no error so the
// caller decides how fatal it is.
func (p *PatternFile) ReadCurrent(ctx context.Context) (string, bool, error) {
	content, err := p.fs.ReadFile(ctx, p.path)
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q: %w", p.path, err)
	}

	span, ok := p.versionSpan(content)
	if !ok {
		return "", false, nil
	}
	return string(content[span[0]:span[1]]), true, nil
}

// WriteVersion re-reads the file, re-runs the search and replaces only
// the span captured by the version group, leaving every other byte of
// the file unchanged. The whole file is rewritten in one write.
//
// The search is never assumed to still succeed just because a prior
// read did; a vanished match fails with ErrVersionNotFound.
func (p *PatternFile) WriteVersion(ctx context.Context, newVersion string) error {
	content, err := p.fs.ReadFile(ctx, p.path)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", p.path, err)
	}

	span, ok := p.versionSpan(content)
	if !ok {
		return fmt.Errorf("%w in %q", ErrVersionNotFound, p.path)
	}

	updated := make([]byte, 0, len(content)+len(newVersion))
	updated = append(updated, content[:span[0]]...)
	updated = append(updated, newVersion...)
	updated = append(updated, content[span[1]:]...)

	if err := p.fs.WriteFile(ctx, p.path, updated, core.PermOwnerRW); err != nil {
		return fmt.Errorf("failed to write %q: %w", p.path, err)
	}
	return nil
}

// versionSpan returns the [start, end) byte offsets of the version group
// within the first match, or false when the pattern matches nothing or
// the group captured nothing.
func (p *PatternFile) versionSpan(content []byte) ([2]int, bool) {
	idx := p.pattern.FindSubmatchIndex(content)
	if idx == nil {
		return [2]int{}, false
	}

	group := p.pattern.SubexpIndex(VersionGroup)
	if group < 0 || 2*group+1 >= len(idx) {
		return [2]int{}, false
	}

	start, end := idx[2*group], idx[2*group+1]
	if start < 0 {
		return [2]int{}, false
	}
	return [2]int{start, end}, true
}
