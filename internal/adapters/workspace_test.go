package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceAdapter_FindPackageJSON(t *testing.T) {
	root := t.TempDir()
	pkgA := filepath.Join(root, "packages", "a")
	pkgB := filepath.Join(root, "packages", "b")
	require.NoError(t, os.MkdirAll(pkgA, 0755))
	require.NoError(t, os.MkdirAll(pkgB, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(pkgA, "package.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(pkgB, "package.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(pkgA, "index.js"), []byte(""), 0644))

	paths, err := NewWorkspaceAdapter().FindPackageJSON(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "package.json"),
		filepath.Join(pkgA, "package.json"),
		filepath.Join(pkgB, "package.json"),
	}, paths)
}

func TestWorkspaceAdapter_SkipsDependencyDirs(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"node_modules", ".git", ".yarn"} {
		ignored := filepath.Join(root, dir, "pkg")
		require.NoError(t, os.MkdirAll(ignored, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(ignored, "package.json"), []byte("{}"), 0644))
	}
	real := filepath.Join(root, "src", "real_pkg")
	require.NoError(t, os.MkdirAll(real, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(real, "package.json"), []byte("{}"), 0644))

	paths, err := NewWorkspaceAdapter().FindPackageJSON(root)
	require.NoError(t, err)
	assert.Len(t, paths, 1)
	assert.Contains(t, paths[0], "real_pkg")
}

func TestWorkspaceAdapter_EmptyRootErrors(t *testing.T) {
	_, err := NewWorkspaceAdapter().FindPackageJSON("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workspace root is empty")
}

func TestWorkspaceAdapter_NonExistentRootErrors(t *testing.T) {
	_, err := NewWorkspaceAdapter().FindPackageJSON("/nonexistent/path/that/does/not/exist")
	require.Error(t, err)
}
