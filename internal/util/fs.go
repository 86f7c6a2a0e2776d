package util

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// atomicFile encapsulates the subset of *os.File behaviour needed by WriteFileAtomic.
type atomicFile interface {
	Write([]byte) (int, error)
	Sync() error
	Close() error
	Name() string
}

// atomicFS abstracts file-system operations for atomic writes.
type atomicFS interface {
	MkdirAll(string, fs.FileMode) error
	CreateTemp(string, string) (atomicFile, error)
	Chmod(string, fs.FileMode) error
	Rename(string, string) error
	Remove(string) error
}

// osAtomicFS implements atomicFS using the standard library os package.
type osAtomicFS struct{}

func (osAtomicFS) MkdirAll(path string, perm fs.FileMode) error { return os.MkdirAll(path, perm) }
func (osAtomicFS) CreateTemp(dir, pattern string) (atomicFile, error) {
	return os.CreateTemp(dir, pattern)
}
func (osAtomicFS) Chmod(name string, perm fs.FileMode) error { return os.Chmod(name, perm) }
func (osAtomicFS) Rename(oldpath, newpath string) error      { return os.Rename(oldpath, newpath) }
func (osAtomicFS) Remove(name string) error                  { return os.Remove(name) }

var defaultAtomicFS atomicFS = osAtomicFS{}

// WriteFileAtomic writes data next to path and renames it into place, so
// readers see either the old page or the new one, never a partial write.
func WriteFileAtomic(path string, data []byte, perm fs.FileMode) error {
	return writeFileAtomic(defaultAtomicFS, path, data, perm)
}

func writeFileAtomic(fsys atomicFS, path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := fsys.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		// #nosec G104 -- cleanup best-effort after a failed write
		fsys.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		// #nosec G104 -- cleanup best-effort during write failure
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		// #nosec G104 -- cleanup best-effort during sync failure
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := fsys.Chmod(tmpName, perm); err != nil {
		cleanup()
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := fsys.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
