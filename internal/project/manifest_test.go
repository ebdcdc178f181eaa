package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sable/internal/project"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, project.ManifestName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFullManifest(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[package]
name = "demo"
root = "src"

[lowering]
max_errors = 32
cache = true
cache_dir = ".sable-cache"
`)
	m, err := project.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", m.Name)
	assert.Equal(t, "src", m.Root)
	assert.Equal(t, uint(32), m.MaxErrors)
	assert.True(t, m.Cache)
	assert.Equal(t, ".sable-cache", m.CacheDir)
}

func TestLoadMinimalManifest(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[package]
root = "."
`)
	m, err := project.Load(path)
	require.NoError(t, err)
	assert.Empty(t, m.Name)
	assert.Equal(t, ".", m.Root)
	assert.Zero(t, m.MaxErrors)
	assert.False(t, m.Cache)
}

func TestLoadMissingPackageSection(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[lowering]
cache = true
`)
	_, err := project.Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, project.ErrPackageSectionMissing)
}

func TestLoadMissingRoot(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[package]
name = "demo"
`)
	_, err := project.Load(path)
	assert.ErrorIs(t, err, project.ErrPackageRootMissing)
}

func TestLoadBlankRoot(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[package]
root = "   "
`)
	_, err := project.Load(path)
	assert.ErrorIs(t, err, project.ErrPackageRootMissing)
}

func TestLoadMalformedTOML(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `[package`)
	_, err := project.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse TOML")
}

func TestResolveRoot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o750))

	got, err := project.ResolveRoot(dir, "src")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "src"), got)
}

func TestResolveRootDot(t *testing.T) {
	dir := t.TempDir()
	got, err := project.ResolveRoot(dir, ".")
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestResolveRootRejectsEscape(t *testing.T) {
	dir := t.TempDir()
	_, err := project.ResolveRoot(dir, "../outside")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes project root")
}

func TestResolveRootRejectsAbsolute(t *testing.T) {
	dir := t.TempDir()
	_, err := project.ResolveRoot(dir, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be relative")
}

func TestResolveRootRejectsFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src"), []byte("x"), 0o600))
	_, err := project.ResolveRoot(dir, "src")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestResolveRootMissingDir(t *testing.T) {
	_, err := project.ResolveRoot(t.TempDir(), "nope")
	require.Error(t, err)
}

func TestFindManifestWalksUp(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	want := writeManifest(t, dir, "[package]\nroot = \".\"\n")

	got, ok, err := project.FindManifest(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestFindManifestPrefersNearest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\nroot = \".\"\n")
	nested := filepath.Join(dir, "sub")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	want := writeManifest(t, nested, "[package]\nroot = \".\"\n")

	got, ok, err := project.FindManifest(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestFindManifestNotFound(t *testing.T) {
	_, ok, err := project.FindManifest(t.TempDir())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFindProjectRoot(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\nroot = \".\"\n")
	nested := filepath.Join(dir, "x")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	root, ok, err := project.FindProjectRoot(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, dir, root)
}
