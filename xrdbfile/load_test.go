package xrdbfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadResolvesIncludesRelativeToIncludingFile(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "included.xres", "Xft.dpi: 96\n")
	mainPath := writeTempFile(t, dir, "main.xres", `#include "included.xres"`+"\nxterm*foreground: white\n")

	db, err := Load(mainPath, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, db.Len())

	value, ok := db.LookupString("Xft.dpi", "")
	require.True(t, ok)
	assert.Equal(t, "96", value)
}

func TestLoadDetectsIncludeCycle(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "a.xres", `#include "b.xres"`+"\n")
	writeTempFile(t, dir, "b.xres", `#include "a.xres"`+"\n")

	_, err := Load(filepath.Join(dir, "a.xres"), LoadOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncludeCycle)
}

func TestLoadAppliesPreprocessor(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "main.xres", "Xft.dpi: 96\n")

	opts := LoadOptions{
		Preprocess: func(path, text string) (string, error) {
			return "Xft.dpi: 120\n", nil
		},
	}

	db, err := Load(path, opts)
	require.NoError(t, err)
	value, ok := db.LookupString("Xft.dpi", "")
	require.True(t, ok)
	assert.Equal(t, "120", value)
}

func TestDefaultChainPathsOnlyReturnsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, ".Xresources", "Xft.dpi: 96\n")

	paths := DefaultChainPaths(dir)
	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(dir, ".Xresources"), paths[0])
}

func TestDefaultChainPathsPrefersHostnameSpecificFile(t *testing.T) {
	dir := t.TempDir()
	hostname, err := os.Hostname()
	require.NoError(t, err)
	writeTempFile(t, dir, ".Xresources-"+hostname, "Xft.dpi: 96\n")
	writeTempFile(t, dir, ".Xresources", "Xft.dpi: 120\n")

	paths := DefaultChainPaths(dir)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, ".Xresources-"+hostname), paths[0])
	assert.Equal(t, filepath.Join(dir, ".Xresources"), paths[1])
}
