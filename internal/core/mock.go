package core

import (
	"context"
	"io/fs"
	"os"
	"time"
)

// MockFileSystem is an in-memory FileSystem for tests.
type MockFileSystem struct {
	files map[string][]byte

	// ReadErr, WriteErr and StatErr, when set, are returned by the
	// corresponding operation regardless of the stored files.
	ReadErr  error
	WriteErr error
	StatErr  error

	// ReadCalls counts ReadFile invocations, letting tests assert
	// caching behavior.
	ReadCalls int
}

// NewMockFileSystem creates an empty in-memory filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{files: make(map[string][]byte)}
}

// Verify MockFileSystem implements FileSystem.
var _ FileSystem = (*MockFileSystem)(nil)

// SetFile stores content at the given path, creating or replacing it.
func (m *MockFileSystem) SetFile(path string, data []byte) {
	m.files[path] = data
}

// GetFile returns the stored content and whether the path exists.
func (m *MockFileSystem) GetFile(path string) ([]byte, bool) {
	data, ok := m.files[path]
	return data, ok
}

func (m *MockFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.ReadCalls++
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *MockFileSystem) WriteFile(ctx context.Context, path string, data []byte, perm fs.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.WriteErr != nil {
		return m.WriteErr
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	m.files[path] = stored
	return nil
}

func (m *MockFileSystem) Stat(ctx context.Context, path string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.StatErr != nil {
		return nil, m.StatErr
	}
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return mockFileInfo{name: path, size: int64(len(data))}, nil
}

// MkdirAll is a no-op: the in-memory filesystem has no directories.
func (m *MockFileSystem) MkdirAll(ctx context.Context, path string, perm fs.FileMode) error {
	return ctx.Err()
}

type mockFileInfo struct {
	name string
	size int64
}

func (fi mockFileInfo) Name() string       { return fi.name }
func (fi mockFileInfo) Size() int64        { return fi.size }
func (fi mockFileInfo) Mode() fs.FileMode  { return PermOwnerRW }
func (fi mockFileInfo) ModTime() time.Time { return time.Time{} }
func (fi mockFileInfo) IsDir() bool        { return false }
func (fi mockFileInfo) Sys() any           { return nil }

var _ os.FileInfo = mockFileInfo{}
