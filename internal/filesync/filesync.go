// Package filesync propagates a freshly bumped version into auxiliary
// project files (package.json, Chart.yaml, docs configs and the like) so
// they never drift from the source of truth.
package filesync

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"github.com/pybump/pybump/internal/core"
	"github.com/tidwall/sjson"
)

// Format identifies how a sync target stores its version value.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTOML  Format = "toml"
	FormatRaw   Format = "raw"
	FormatRegex Format = "regex"
)

// IsValid reports whether the format is one of the known values.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTOML, FormatRaw, FormatRegex:
		return true
	default:
		return false
	}
}

// Target describes one file to keep in sync with the project version.
type Target struct {
	// Path is the file path, relative to the project root.
	Path string `yaml:"path"`

	// Format selects the write strategy. Empty means detect from the
	// file name.
	Format Format `yaml:"format,omitempty"`

	// Field is the dot-notation path to the version field for the
	// structured formats ("version", "package.version").
	Field string `yaml:"field,omitempty"`

	// Pattern is the regular expression for regex targets. Its first
	// capture group marks the version substring.
	Pattern string `yaml:"pattern,omitempty"`
}

// Syncer writes a version value into sync targets.
type Syncer struct {
	fs core.FileSystem
}

// NewSyncer creates a Syncer using the given filesystem.
func NewSyncer(fs core.FileSystem) *Syncer {
	return &Syncer{fs: fs}
}

// Apply writes version into every target, stopping at the first failure.
func (s *Syncer) Apply(ctx context.Context, targets []Target, version string) error {
	for _, target := range targets {
		if err := s.Write(ctx, target, version); err != nil {
			return err
		}
	}
	return nil
}

// Write updates a single target with the given version.
func (s *Syncer) Write(ctx context.Context, target Target, version string) error {
	if target.Path == "" {
		return fmt.Errorf("sync target requires a path")
	}

	format := target.Format
	if format == "" {
		format = DetectFormat(target.Path)
	}
	if !format.IsValid() {
		return fmt.Errorf("unsupported sync format %q for %q", target.Format, target.Path)
	}

	switch format {
	case FormatJSON:
		return s.writeJSON(ctx, target, version)
	case FormatYAML:
		return s.writeYAML(ctx, target, version)
	case FormatTOML:
		return s.writeTOML(ctx, target, version)
	case FormatRegex:
		return s.writeRegex(ctx, target, version)
	default:
		return s.writeRaw(ctx, target, version)
	}
}

// writeJSON updates the field via sjson, preserving document layout and
// key order.
func (s *Syncer) writeJSON(ctx context.Context, target Target, version string) error {
	field := fieldOrDefault(target)

	data, err := s.fs.ReadFile(ctx, target.Path)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", target.Path, err)
	}

	if !json.Valid(data) {
		return fmt.Errorf("invalid JSON in %q", target.Path)
	}

	updated, err := sjson.SetBytes(data, field, version)
	if err != nil {
		return fmt.Errorf("failed to set %q in %q: %w", field, target.Path, err)
	}

	if len(updated) > 0 && updated[len(updated)-1] != '\n' {
		updated = append(updated, '\n')
	}
	return s.writeBack(ctx, target.Path, updated)
}

func (s *Syncer) writeYAML(ctx context.Context, target Target, version string) error {
	field := fieldOrDefault(target)

	data, err := s.fs.ReadFile(ctx, target.Path)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", target.Path, err)
	}

	var obj map[string]any
	if err := yaml.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("failed to parse YAML in %q: %w", target.Path, err)
	}
	if obj == nil {
		obj = make(map[string]any)
	}

	if err := setNestedValue(obj, field, version); err != nil {
		return fmt.Errorf("in file %q: %w", target.Path, err)
	}

	updated, err := yaml.Marshal(obj)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML for %q: %w", target.Path, err)
	}
	return s.writeBack(ctx, target.Path, updated)
}

func (s *Syncer) writeTOML(ctx context.Context, target Target, version string) error {
	field := fieldOrDefault(target)

	data, err := s.fs.ReadFile(ctx, target.Path)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", target.Path, err)
	}

	var obj map[string]any
	if err := toml.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("failed to parse TOML in %q: %w", target.Path, err)
	}
	if obj == nil {
		obj = make(map[string]any)
	}

	if err := setNestedValue(obj, field, version); err != nil {
		return fmt.Errorf("in file %q: %w", target.Path, err)
	}

	updated, err := toml.Marshal(obj)
	if err != nil {
		return fmt.Errorf("failed to marshal TOML for %q: %w", target.Path, err)
	}
	return s.writeBack(ctx, target.Path, updated)
}

// writeRegex replaces the first capture group of the first match,
// leaving the rest of the file untouched.
func (s *Syncer) writeRegex(ctx context.Context, target Target, version string) error {
	if target.Pattern == "" {
		return fmt.Errorf("sync target %q requires a pattern", target.Path)
	}
	re, err := regexp.Compile(target.Pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern %q for %q: %w", target.Pattern, target.Path, err)
	}

	data, err := s.fs.ReadFile(ctx, target.Path)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", target.Path, err)
	}

	idx := re.FindSubmatchIndex(data)
	if idx == nil || len(idx) < 4 || idx[2] < 0 {
		return fmt.Errorf("pattern %q does not match contents of %q", target.Pattern, target.Path)
	}

	updated := make([]byte, 0, len(data)+len(version))
	updated = append(updated, data[:idx[2]]...)
	updated = append(updated, version...)
	updated = append(updated, data[idx[3]:]...)
	return s.writeBack(ctx, target.Path, updated)
}

// writeRaw replaces the whole file with the version and a newline.
func (s *Syncer) writeRaw(ctx context.Context, target Target, version string) error {
	content := version
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return s.writeBack(ctx, target.Path, []byte(content))
}

func (s *Syncer) writeBack(ctx context.Context, path string, data []byte) error {
	if err := s.fs.WriteFile(ctx, path, data, core.PermOwnerRW); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	return nil
}

func fieldOrDefault(target Target) string {
	if target.Field != "" {
		return target.Field
	}
	return DefaultField(target.Path)
}

// setNestedValue sets a value in a nested map using dot notation,
// creating intermediate maps as needed.
func setNestedValue(obj map[string]any, field string, value any) error {
	if field == "" {
		return fmt.Errorf("field path cannot be empty")
	}

	parts := strings.Split(field, ".")
	current := obj
	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		next, exists := current[part]
		if !exists {
			child := make(map[string]any)
			current[part] = child
			current = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("field %q is not an object at %q", strings.Join(parts[:i+1], "."), part)
		}
		current = child
	}

	current[parts[len(parts)-1]] = value
	return nil
}

// wellKnownFields maps common manifest names to their version field.
var wellKnownFields = map[string]string{
	"package.json":   "version",
	"composer.json":  "version",
	"Cargo.toml":     "package.version",
	"pyproject.toml": "project.version",
	"Chart.yaml":     "version",
	"pubspec.yaml":   "version",
}

// DefaultField returns the usual version field for well-known file
// names, falling back to "version".
func DefaultField(path string) string {
	base := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		base = path[i+1:]
	}
	if field, ok := wellKnownFields[base]; ok {
		return field
	}
	return "version"
}

// DetectFormat guesses the format from the file name.
func DetectFormat(path string) Format {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".json"):
		return FormatJSON
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lower, ".toml"):
		return FormatTOML
	default:
		return FormatRaw
	}
}
