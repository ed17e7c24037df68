// Package adapter contains the I/O-boundary implementations imp-refactor's
// domain layer depends on: the filesystem walker, the Nix-subset file
// parser, the external evaluator subprocess, report persistence, and the
// plain-text/TUI presentation layers.
package adapter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/imp-refactor/imp-refactor/internal/domain"
)

// FilepathWalkFunc mirrors filepath.WalkFunc.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// SourceFS abstracts the filesystem operations the workflow needs: walk
// + exclude, read, and atomic write. Hiding direct os access behind an
// interface keeps the workflow testable without touching disk.
type SourceFS interface {
	// Walk visits every file under each root that is not excluded by
	// exclude, calling fn with the file's path as walked (the root
	// joined with the file's location under it). Exclusion patterns are
	// matched against the root-relative path.
	Walk(roots []string, exclude domain.ExcludeSet, fn func(path string) error) error

	// ReadFile loads a file's contents.
	ReadFile(path string) ([]byte, error)

	// WriteFileAtomic writes content to path by writing to a temp file
	// in the same directory and renaming over the original, preserving
	// the original file's mode bits.
	WriteFileAtomic(path string, content []byte) error
}

// LocalSourceFS is the concrete, disk-backed SourceFS.
type LocalSourceFS struct{}

// NewLocalSourceFS constructs a LocalSourceFS.
func NewLocalSourceFS() *LocalSourceFS { return &LocalSourceFS{} }

// Walk implements SourceFS.
func (fs *LocalSourceFS) Walk(roots []string, exclude domain.ExcludeSet, fn func(path string) error) error {
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			slog.Warn("skipping unreadable root", "root", root, "error", err)
			continue
		}

		if !info.IsDir() {
			if exclude.Matches(filepath.Base(root)) {
				continue
			}
			if err := fn(root); err != nil {
				return err
			}
			continue
		}

		err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				slog.Warn("skipping path after walk error", "path", path, "error", err)
				return nil
			}

			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}

			if info.IsDir() {
				if rel != "." && exclude.Matches(rel) {
					return filepath.SkipDir
				}
				return nil
			}

			if exclude.Matches(rel) {
				return nil
			}

			return fn(path)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// ReadFile implements SourceFS.
func (fs *LocalSourceFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFileAtomic implements SourceFS.
func (fs *LocalSourceFS) WriteFileAtomic(path string, content []byte) error {
	info, err := os.Stat(path)
	mode := os.FileMode(0o644)
	if err == nil {
		mode = info.Mode()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".imprefactor-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file over %s: %w", path, err)
	}
	return nil
}

// IsNixFile reports whether path looks like registry source: files
// with a ".nix" extension.
func IsNixFile(path string) bool {
	return filepath.Ext(path) == ".nix"
}
