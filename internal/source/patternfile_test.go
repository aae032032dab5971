package source

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/pybump/pybump/internal/core"
)

func TestPatternFile_ReadCurrent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		found   bool
	}{
		{
			name:    "double quotes",
			content: "__version__ = \"1.2.3\"\n",
			want:    "1.2.3",
			found:   true,
		},
		{
			name:    "single quotes",
			content: "__version__ = '4.5.6'\n",
			want:    "4.5.6",
			found:   true,
		},
		{
			name:    "trailing comment",
			content: "__version__ = \"1.2.3\"  # managed by pybump\n",
			want:    "1.2.3",
			found:   true,
		},
		{
			name:    "no spaces around equals",
			content: "__version__=\"0.1.0\"\n",
			want:    "0.1.0",
			found:   true,
		},
		{
			name: "match in the middle of the file",
			content: "\"\"\"Demo package.\"\"\"\n" +
				"\n" +
				"AUTHOR = \"someone\"\n" +
				"\n" +
				"__version__ = \"2.0.0rc1\"\n" +
				"\n" +
				"def main():\n" +
				"    pass\n" +
				"\n" +
				"# trailing comment\n",
			want:  "2.0.0rc1",
			found: true,
		},
		{
			name: "first match wins",
			content: "__version__ = \"1.0.0\"\n" +
				"__version__ = \"2.0.0\"\n",
			want:  "1.0.0",
			found: true,
		},
		{
			name:    "no match",
			content: "VERSION = (1, 2, 3)\n",
			found:   false,
		},
		{
			name:    "indented line does not match",
			content: "    __version__ = \"1.2.3\"\n",
			found:   false,
		},
		{
			name:    "empty file",
			content: "",
			found:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := core.NewMockFileSystem()
			fs.SetFile("/pkg/_version.py", []byte(tt.content))

			store := NewPatternFile(fs, "/pkg/_version.py", nil)
			got, found, err := store.ReadCurrent(context.Background())
			if err != nil {
				t.Fatalf("ReadCurrent error: %v", err)
			}
			if found != tt.found {
				t.Fatalf("ReadCurrent found = %v, want %v", found, tt.found)
			}
			if found && got != tt.want {
				t.Errorf("ReadCurrent = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPatternFile_ReadCurrent_MissingFile(t *testing.T) {
	fs := core.NewMockFileSystem()
	store := NewPatternFile(fs, "/pkg/_version.py", nil)
	if _, _, err := store.ReadCurrent(context.Background()); err == nil {
		t.Fatal("expected read error for missing file, got nil")
	}
}

func TestPatternFile_WriteVersion_SpanPrecision(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/pkg/_version.py", []byte("__version__ = \"1.2.3\"  # comment\n"))

	store := NewPatternFile(fs, "/pkg/_version.py", nil)
	if err := store.WriteVersion(context.Background(), "9.9.9"); err != nil {
		t.Fatalf("WriteVersion error: %v", err)
	}

	data, _ := fs.GetFile("/pkg/_version.py")
	want := "__version__ = \"9.9.9\"  # comment\n"
	if string(data) != want {
		t.Errorf("file after write = %q, want %q", data, want)
	}
}

func TestPatternFile_WriteVersion_PreservesSurroundingBytes(t *testing.T) {
	content := "# generated file\n" +
		"\n" +
		"__version__ = '0.1.0'\n" +
		"\n" +
		"BUILD = \"unrelated 0.1.0\"\n"

	fs := core.NewMockFileSystem()
	fs.SetFile("/pkg/_version.py", []byte(content))

	store := NewPatternFile(fs, "/pkg/_version.py", nil)
	if err := store.WriteVersion(context.Background(), "0.2.0"); err != nil {
		t.Fatalf("WriteVersion error: %v", err)
	}

	data, _ := fs.GetFile("/pkg/_version.py")
	want := "# generated file\n" +
		"\n" +
		"__version__ = '0.2.0'\n" +
		"\n" +
		"BUILD = \"unrelated 0.1.0\"\n"
	if string(data) != want {
		t.Errorf("file after write = %q, want %q", data, want)
	}
}

func TestPatternFile_WriteVersion_RoundTrip(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/pkg/_version.py", []byte("__version__ = \"1.2.3\"  # keep\n"))

	store := NewPatternFile(fs, "/pkg/_version.py", nil)
	before, _ := fs.GetFile("/pkg/_version.py")

	if err := store.WriteVersion(context.Background(), "1.2.3"); err != nil {
		t.Fatalf("WriteVersion error: %v", err)
	}

	after, _ := fs.GetFile("/pkg/_version.py")
	if string(before) != string(after) {
		t.Errorf("writing the same version changed the file:\nbefore: %q\nafter:  %q", before, after)
	}

	got, found, err := store.ReadCurrent(context.Background())
	if err != nil || !found || got != "1.2.3" {
		t.Errorf("ReadCurrent after round-trip = (%q, %v, %v), want (1.2.3, true, nil)", got, found, err)
	}
}

func TestPatternFile_WriteVersion_NoMatch(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/pkg/_version.py", []byte("nothing to see here\n"))

	store := NewPatternFile(fs, "/pkg/_version.py", nil)
	err := store.WriteVersion(context.Background(), "1.0.0")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	assertErrorIs(t, err, ErrVersionNotFound)
	if got := err.Error(); !contains(got, "/pkg/_version.py") {
		t.Errorf("error %q does not name the file", got)
	}

	// The file must be untouched after a failed write.
	data, _ := fs.GetFile("/pkg/_version.py")
	if string(data) != "nothing to see here\n" {
		t.Errorf("file modified despite failed write: %q", data)
	}
}

func TestPatternFile_CustomPattern(t *testing.T) {
	pattern := regexp.MustCompile(`(?m)^version:\s*(?P<version>\S+)\s*$`)

	fs := core.NewMockFileSystem()
	fs.SetFile("/pkg/VERSION", []byte("version: 3.1.4\n"))

	store := NewPatternFile(fs, "/pkg/VERSION", pattern)
	got, found, err := store.ReadCurrent(context.Background())
	if err != nil || !found || got != "3.1.4" {
		t.Fatalf("ReadCurrent = (%q, %v, %v), want (3.1.4, true, nil)", got, found, err)
	}

	if err := store.WriteVersion(context.Background(), "3.1.5"); err != nil {
		t.Fatalf("WriteVersion error: %v", err)
	}
	data, _ := fs.GetFile("/pkg/VERSION")
	if string(data) != "version: 3.1.5\n" {
		t.Errorf("file after write = %q", data)
	}
}

// The store works against the real filesystem as well; the OS
// implementation is what the CLI wires in.
func TestPatternFile_OSFileSystem(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "_version.py")
	if err := os.WriteFile(path, []byte("__version__ = \"0.0.1\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewPatternFile(core.NewOSFileSystem(), path, nil)
	if err := store.WriteVersion(context.Background(), "0.0.2"); err != nil {
		t.Fatalf("WriteVersion error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "__version__ = \"0.0.2\"\n" {
		t.Errorf("file after write = %q", data)
	}
}
