// Package core provides shared abstractions used across pybump,
// most notably the FileSystem interface that lets every file-touching
// component be exercised in tests without a real disk.
package core
