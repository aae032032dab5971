// Package pyproject loads a project's pyproject.toml and exposes
// key-path access to its nested tables.
package pyproject

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pybump/pybump/internal/core"
)

// FileName is the canonical manifest file name.
const FileName = "pyproject.toml"

// Document is an in-memory pyproject.toml: the file path plus the decoded
// tree of string-keyed tables. Mutations stay in memory until Save.
type Document struct {
	fs   core.FileSystem
	path string
	root map[string]any
}

// Load reads and decodes the manifest at path.
func Load(ctx context.Context, fs core.FileSystem, path string) (*Document, error) {
	data, err := fs.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}

	var root map[string]any
	if err := toml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse TOML in %q: %w", path, err)
	}

	return &Document{fs: fs, path: path, root: root}, nil
}

// LoadDir loads the manifest from its canonical location under root.
func LoadDir(ctx context.Context, fs core.FileSystem, dir string) (*Document, error) {
	return Load(ctx, fs, filepath.Join(dir, FileName))
}

// New wraps an already decoded tree. Used by tests and callers that
// manage serialization themselves.
func New(fs core.FileSystem, path string, root map[string]any) *Document {
	if root == nil {
		root = make(map[string]any)
	}
	return &Document{fs: fs, path: path, root: root}
}

// Path returns the manifest file path.
func (d *Document) Path() string {
	return d.path
}

// Get walks the nested tables along keys and returns the value found
// there, or false when any segment is missing or not a table.
func (d *Document) Get(keys ...string) (any, bool) {
	if len(keys) == 0 {
		return nil, false
	}

	current := d.root
	for _, key := range keys[:len(keys)-1] {
		next, ok := current[key].(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}

	value, ok := current[keys[len(keys)-1]]
	return value, ok
}

// GetString returns the string value at keys, or false when the key is
// absent or holds a non-string value.
func (d *Document) GetString(keys ...string) (string, bool) {
	value, ok := d.Get(keys...)
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

// GetStringSlice returns the list of strings at keys. Non-string list
// entries are skipped; a missing or non-list value yields false.
func (d *Document) GetStringSlice(keys ...string) ([]string, bool) {
	value, ok := d.Get(keys...)
	if !ok {
		return nil, false
	}
	list, ok := value.([]any)
	if !ok {
		// go-toml decodes homogeneous string arrays as []any, but be
		// lenient when a caller seeded the tree directly.
		if strs, ok := value.([]string); ok {
			return strs, true
		}
		return nil, false
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out, true
}

// Set stores value at the nested key path, creating intermediate tables
// as needed. It fails when an intermediate segment exists but is not a
// table.
func (d *Document) Set(value any, keys ...string) error {
	if len(keys) == 0 {
		return fmt.Errorf("key path cannot be empty")
	}

	current := d.root
	for i, key := range keys[:len(keys)-1] {
		next, exists := current[key]
		if !exists {
			table := make(map[string]any)
			current[key] = table
			current = table
			continue
		}
		table, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("%q is not a table in %q", strings.Join(keys[:i+1], "."), d.path)
		}
		current = table
	}

	current[keys[len(keys)-1]] = value
	return nil
}

// Save re-encodes the tree and writes it back to the manifest path.
func (d *Document) Save(ctx context.Context) error {
	data, err := toml.Marshal(d.root)
	if err != nil {
		return fmt.Errorf("failed to marshal TOML for %q: %w", d.path, err)
	}
	if err := d.fs.WriteFile(ctx, d.path, data, core.PermOwnerRW); err != nil {
		return fmt.Errorf("failed to write %q: %w", d.path, err)
	}
	return nil
}
