package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imp-refactor/imp-refactor/internal/domain"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLocalSourceFSWalkExcludes(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "flake.nix"), "{}")
	writeTestFile(t, filepath.Join(root, "result", "out.nix"), "{}")
	writeTestFile(t, filepath.Join(root, ".git", "config"), "x")

	fs := NewLocalSourceFS()
	excl := domain.NewExcludeSet(nil, true)

	var visited []string
	err := fs.Walk([]string{root}, excl, func(path string) error {
		visited = append(visited, path)
		return nil
	})
	require.NoError(t, err)

	assert.Contains(t, visited, filepath.Join(root, "flake.nix"))
	for _, v := range visited {
		assert.NotContains(t, v, "result")
		assert.NotContains(t, v, ".git")
	}
}

func TestLocalSourceFSWalkSkipsUnreadableRootInsteadOfAborting(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "flake.nix"), "{}")

	fs := NewLocalSourceFS()
	excl := domain.NewExcludeSet(nil, false)

	var visited []string
	err := fs.Walk([]string{filepath.Join(root, "does-not-exist"), root}, excl, func(path string) error {
		visited = append(visited, path)
		return nil
	})
	require.NoError(t, err)
	assert.Contains(t, visited, filepath.Join(root, "flake.nix"))
}

func TestLocalSourceFSWriteFileAtomicPreservesMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flake.nix")
	writeTestFile(t, path, "old")
	require.NoError(t, os.Chmod(path, 0o600))

	fs := NewLocalSourceFS()
	require.NoError(t, fs.WriteFileAtomic(path, []byte("new")))

	content, err := fs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}

func TestIsNixFile(t *testing.T) {
	assert.True(t, IsNixFile("flake.nix"))
	assert.False(t, IsNixFile("flake.lock"))
}
