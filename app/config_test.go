package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptionsReturnsBaseWhenNoConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	base := DefaultOptions()
	loaded, err := LoadOptions(base)
	require.NoError(t, err)
	assert.Equal(t, base, loaded)
}

func TestLoadOptionsOverlaysFileContents(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	path, err := ConfigPath()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("cppcmd: m4\n"), 0644))

	loaded, err := LoadOptions(DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "m4", loaded.CppCmd)
}
