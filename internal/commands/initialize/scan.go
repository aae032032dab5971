package initialize

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/pybump/pybump/internal/source"
)

// candidateNames are file names that commonly carry a __version__
// attribute in Python projects.
var candidateNames = map[string]bool{
	"__init__.py":    true,
	"_version.py":    true,
	"version.py":     true,
	"__version__.py": true,
	"__about__.py":   true,
	"about.py":       true,
}

// skipDirs are directory names never worth descending into.
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".venv":        true,
	"venv":         true,
	".tox":         true,
	".eggs":        true,
	"node_modules": true,
	"__pycache__":  true,
	"dist":         true,
	"build":        true,
}

// ScanVersionFiles walks root looking for Python files whose content
// matches the default version pattern, returning their paths relative
// to root in sorted order. Unreadable entries are skipped.
func ScanVersionFiles(root string) []string {
	var found []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !candidateNames[d.Name()] {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		if !source.DefaultPattern.Match(data) {
			return nil
		}

		if rel, err := filepath.Rel(root, path); err == nil {
			found = append(found, rel)
		}
		return nil
	})

	sort.Strings(found)
	return found
}
