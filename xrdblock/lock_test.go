package xrdblock

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireAndRelease(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "xrdb.lock")

	lock, err := Acquire(lockPath)
	require.NoError(t, err)
	require.NoError(t, lock.Release())
}

func TestTryAcquireFailsWhenAlreadyHeld(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "xrdb.lock")

	first, ok, err := TryAcquire(lockPath)
	require.NoError(t, err)
	require.True(t, ok)
	defer first.Release()

	_, ok, err = TryAcquire(lockPath)
	require.NoError(t, err)
	assert.False(t, ok)
}
