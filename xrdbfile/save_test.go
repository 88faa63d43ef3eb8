package xrdbfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretext/xrdb/xrm"
)

func TestSaveWritesSerializedDatabase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Xresources")

	db := xrm.New()
	require.NoError(t, db.PutResource("Xft.dpi", "96"))

	require.NoError(t, Save(path, db))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	reloaded := xrm.FromText(string(data), nil)
	value, ok := reloaded.LookupString("Xft.dpi", "")
	require.True(t, ok)
	assert.Equal(t, "96", value)
}

func TestSaveOverwritesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Xresources")
	require.NoError(t, os.WriteFile(path, []byte("stale: data\n"), 0644))

	db := xrm.New()
	require.NoError(t, db.PutResource("fresh", "data"))
	require.NoError(t, Save(path, db))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	reloaded := xrm.FromText(string(data), nil)
	assert.Equal(t, 1, reloaded.Len())
}
