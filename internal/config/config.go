// Package config loads pybump's optional tool configuration from
// .pybump.yaml in the project root.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/pybump/pybump/internal/core"
	"github.com/pybump/pybump/internal/filesync"
)

// FileName is the tool configuration file looked up in the project root.
const FileName = ".pybump.yaml"

// EnvProject overrides the project root directory when set.
const EnvProject = "PYBUMP_PROJECT"

// TagConfig controls git tagging after a bump.
type TagConfig struct {
	// Annotated selects annotated tags over lightweight ones.
	Annotated bool `yaml:"annotated,omitempty"`

	// Signed selects GPG-signed tags; implies a message.
	Signed bool `yaml:"signed,omitempty"`

	// KeyID is the signing key for signed tags. Empty uses the git
	// default.
	KeyID string `yaml:"key-id,omitempty"`

	// Prefix is prepended to the version when forming the tag name.
	Prefix string `yaml:"prefix,omitempty"`
}

// Config is the root of .pybump.yaml.
type Config struct {
	// Pattern overrides the default version-file pattern for dynamic
	// sources. It must define a named group called "version".
	Pattern string `yaml:"pattern,omitempty"`

	// Sync lists auxiliary files to update after every bump.
	Sync []filesync.Target `yaml:"sync,omitempty"`

	// Tag configures git tagging.
	Tag *TagConfig `yaml:"tag,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{Tag: &TagConfig{Annotated: true, Prefix: "v"}}
}

// Load reads .pybump.yaml from root. A missing file yields the default
// configuration; a malformed one is an error.
func Load(ctx context.Context, cfs core.FileSystem, root string) (*Config, error) {
	path := filepath.Join(root, FileName)

	data, err := cfs.ReadFile(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, err)
	}

	if _, err := cfg.CompilePattern(); err != nil {
		return nil, fmt.Errorf("in %q: %w", path, err)
	}
	return cfg, nil
}

// CompilePattern compiles the configured pattern override, or returns
// nil when no override is set. The pattern must carry the "version"
// named group the pattern store splices on.
func (c *Config) CompilePattern() (*regexp.Regexp, error) {
	if c.Pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(c.Pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", c.Pattern, err)
	}
	if re.SubexpIndex("version") < 0 {
		return nil, fmt.Errorf("pattern %q has no named group \"version\"", c.Pattern)
	}
	return re, nil
}

// TagName forms the git tag name for a version string.
func (c *Config) TagName(version string) string {
	prefix := ""
	if c.Tag != nil {
		prefix = c.Tag.Prefix
	}
	return prefix + version
}

// ProjectRoot resolves the project root directory: the flag value when
// given, then the PYBUMP_PROJECT environment variable, then the current
// directory.
func ProjectRoot(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(EnvProject); env != "" {
		return env, nil
	}
	return os.Getwd()
}
