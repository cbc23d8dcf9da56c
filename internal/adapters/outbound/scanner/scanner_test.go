package scanner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pomlint/pomlint/internal/adapters/outbound/scanner"
)

func writePOM(t *testing.T, dir string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, "pom.xml")
	require.NoError(t, os.WriteFile(path, []byte("<project/>"), 0644))
	return path
}

func TestDiscover_FileRoot(t *testing.T) {
	pom := writePOM(t, t.TempDir())

	paths, err := scanner.New().Discover(pom, false)
	require.NoError(t, err)
	assert.Equal(t, []string{pom}, paths)
}

func TestDiscover_NonRecursive(t *testing.T) {
	root := t.TempDir()
	pom := writePOM(t, root)
	writePOM(t, filepath.Join(root, "core"))

	paths, err := scanner.New().Discover(root, false)
	require.NoError(t, err)
	assert.Equal(t, []string{pom}, paths, "subdirectories ignored without recursion")
}

func TestDiscover_NonRecursive_NoDescriptor(t *testing.T) {
	_, err := scanner.New().Discover(t.TempDir(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pom.xml")
}

func TestDiscover_Recursive_ParentFirst(t *testing.T) {
	root := t.TempDir()
	parent := writePOM(t, root)
	core := writePOM(t, filepath.Join(root, "core"))
	deep := writePOM(t, filepath.Join(root, "core", "impl"))

	paths, err := scanner.New().Discover(root, true)
	require.NoError(t, err)
	assert.Equal(t, []string{parent, core, deep}, paths)
}

func TestDiscover_Recursive_SkipsBuildDirs(t *testing.T) {
	root := t.TempDir()
	pom := writePOM(t, root)
	writePOM(t, filepath.Join(root, "target"))
	writePOM(t, filepath.Join(root, "node_modules"))
	writePOM(t, filepath.Join(root, ".hidden"))

	paths, err := scanner.New().Discover(root, true)
	require.NoError(t, err)
	assert.Equal(t, []string{pom}, paths)
}

func TestDiscover_Recursive_Excludes(t *testing.T) {
	root := t.TempDir()
	pom := writePOM(t, root)
	writePOM(t, filepath.Join(root, "legacy"))

	paths, err := scanner.New().Discover(root, true, "legacy")
	require.NoError(t, err)
	assert.Equal(t, []string{pom}, paths)
}

func TestDiscover_MissingRoot(t *testing.T) {
	_, err := scanner.New().Discover(filepath.Join(t.TempDir(), "nope"), true)
	assert.Error(t, err)
}
