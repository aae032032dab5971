package source

import (
	"context"
	"strings"
	"testing"

	"github.com/pybump/pybump/internal/pep440"
)

func TestStatic_IsEnabled(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		want     bool
	}{
		{"version present", staticManifest, true},
		{"version absent", "[project]\nname = \"demo\"\n", false},
		{"no project table", "[tool.pdm]\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, doc := newProject(t, tt.manifest, "")
			s := NewStatic(doc)
			if got := s.IsEnabled(); got != tt.want {
				t.Errorf("IsEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatic_CurrentVersion(t *testing.T) {
	_, doc := newProject(t, staticManifest, "")
	s := NewStatic(doc)

	got, err := s.CurrentVersion(context.Background())
	if err != nil {
		t.Fatalf("CurrentVersion error: %v", err)
	}
	if got.String() != "1.2.3" {
		t.Errorf("CurrentVersion = %q, want 1.2.3", got)
	}
}

func TestStatic_CurrentVersion_Missing(t *testing.T) {
	_, doc := newProject(t, "[project]\nname = \"demo\"\n", "")
	s := NewStatic(doc)

	_, err := s.CurrentVersion(context.Background())
	assertErrorIs(t, err, ErrVersionNotFound)
}

func TestStatic_CurrentVersion_Invalid(t *testing.T) {
	_, doc := newProject(t, "[project]\nversion = \"one.two\"\n", "")
	s := NewStatic(doc)

	_, err := s.CurrentVersion(context.Background())
	assertErrorIs(t, err, pep440.ErrInvalidVersion)
}

func TestStatic_SetAndSave(t *testing.T) {
	fs, doc := newProject(t, staticManifest, "")
	s := NewStatic(doc)

	s.SetCurrentVersion(pep440.MustParse("2.0.0rc1"))

	// Set is in-memory only.
	data, _ := fs.GetFile("/proj/pyproject.toml")
	if strings.Contains(string(data), "2.0.0rc1") {
		t.Error("SetCurrentVersion touched the manifest before Save")
	}

	if err := s.Save(context.Background()); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	data, _ = fs.GetFile("/proj/pyproject.toml")
	if !strings.Contains(string(data), "2.0.0rc1") {
		t.Errorf("manifest after save does not contain new version:\n%s", data)
	}
}
