package initialize

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanVersionFiles(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "pkg", "__init__.py"), "__version__ = \"1.0.0\"\n")
	writeFile(t, filepath.Join(root, "pkg", "_version.py"), "__version__ = '2.0.0'\n")

	// Candidate name without a version attribute.
	writeFile(t, filepath.Join(root, "other", "version.py"), "x = 1\n")

	// Matching content under a name nobody scans.
	writeFile(t, filepath.Join(root, "pkg", "helpers.py"), "__version__ = \"9.9.9\"\n")

	// Matching content in a skipped directory.
	writeFile(t, filepath.Join(root, "__pycache__", "__init__.py"), "__version__ = \"0.0.1\"\n")
	writeFile(t, filepath.Join(root, ".venv", "lib", "_version.py"), "__version__ = \"0.0.1\"\n")

	got := ScanVersionFiles(root)
	want := []string{
		filepath.Join("pkg", "__init__.py"),
		filepath.Join("pkg", "_version.py"),
	}

	if len(got) != len(want) {
		t.Fatalf("ScanVersionFiles = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ScanVersionFiles[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestScanVersionFiles_EmptyRoot(t *testing.T) {
	if got := ScanVersionFiles(t.TempDir()); len(got) != 0 {
		t.Errorf("ScanVersionFiles on empty root = %v, want none", got)
	}
}
