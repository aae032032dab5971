package config

import (
	"context"
	"testing"

	"github.com/pybump/pybump/internal/core"
	"github.com/pybump/pybump/internal/filesync"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	fs := core.NewMockFileSystem()
	cfg, err := Load(context.Background(), fs, "/proj")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Pattern != "" {
		t.Errorf("default Pattern = %q, want empty", cfg.Pattern)
	}
	if cfg.Tag == nil || !cfg.Tag.Annotated || cfg.Tag.Prefix != "v" {
		t.Errorf("default Tag = %+v, want annotated with v prefix", cfg.Tag)
	}
}

func TestLoad_FullFile(t *testing.T) {
	content := `pattern: '(?m)^version = "(?P<version>[^"]+)"$'
sync:
  - path: package.json
  - path: docs/conf.py
    format: regex
    pattern: 'release = "([^"]+)"'
tag:
  annotated: true
  prefix: release-
`
	fs := core.NewMockFileSystem()
	fs.SetFile("/proj/.pybump.yaml", []byte(content))

	cfg, err := Load(context.Background(), fs, "/proj")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if re, err := cfg.CompilePattern(); err != nil || re == nil {
		t.Errorf("CompilePattern = (%v, %v), want compiled pattern", re, err)
	}
	if len(cfg.Sync) != 2 {
		t.Fatalf("len(Sync) = %d, want 2", len(cfg.Sync))
	}
	if cfg.Sync[1].Format != filesync.FormatRegex {
		t.Errorf("Sync[1].Format = %q, want regex", cfg.Sync[1].Format)
	}
	if got := cfg.TagName("1.2.3"); got != "release-1.2.3" {
		t.Errorf("TagName = %q, want release-1.2.3", got)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/proj/.pybump.yaml", []byte("pattern: [unclosed"))
	if _, err := Load(context.Background(), fs, "/proj"); err == nil {
		t.Fatal("expected parse error, got nil")
	}
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/proj/.pybump.yaml", []byte("patern: typo\n"))
	if _, err := Load(context.Background(), fs, "/proj"); err == nil {
		t.Fatal("expected strict-mode error for unknown key, got nil")
	}
}

func TestLoad_PatternWithoutVersionGroup(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/proj/.pybump.yaml", []byte("pattern: 'version = (.+)'\n"))
	if _, err := Load(context.Background(), fs, "/proj"); err == nil {
		t.Fatal("expected error for pattern without version group, got nil")
	}
}

func TestTagName_NoTagConfig(t *testing.T) {
	cfg := &Config{}
	if got := cfg.TagName("1.0.0"); got != "1.0.0" {
		t.Errorf("TagName = %q, want 1.0.0", got)
	}
}

func TestProjectRoot(t *testing.T) {
	if got, err := ProjectRoot("/explicit"); err != nil || got != "/explicit" {
		t.Errorf("ProjectRoot(explicit) = (%q, %v)", got, err)
	}

	t.Setenv(EnvProject, "/from-env")
	if got, err := ProjectRoot(""); err != nil || got != "/from-env" {
		t.Errorf("ProjectRoot(env) = (%q, %v)", got, err)
	}
}
