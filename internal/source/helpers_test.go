package source

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pybump/pybump/internal/core"
	"github.com/pybump/pybump/internal/pyproject"
)

func assertErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("error = %v, want %v", err, target)
	}
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

// newProject seeds a mock filesystem with a manifest built from the
// given TOML content plus a version file, and loads the document.
func newProject(t *testing.T, manifest, versionFile string) (*core.MockFileSystem, *pyproject.Document) {
	t.Helper()
	fs := core.NewMockFileSystem()
	fs.SetFile("/proj/pyproject.toml", []byte(manifest))
	if versionFile != "" {
		fs.SetFile("/proj/demo/_version.py", []byte(versionFile))
	}
	doc, err := pyproject.LoadDir(context.Background(), fs, "/proj")
	if err != nil {
		t.Fatalf("LoadDir error: %v", err)
	}
	return fs, doc
}

const dynamicManifest = `[project]
name = "demo"
dynamic = ["version"]

[build-system]
build-backend = "pdm.pep517.api"

[tool.pdm.version]
source = "file"
path = "demo/_version.py"
`

const staticManifest = `[project]
name = "demo"
version = "1.2.3"
`
