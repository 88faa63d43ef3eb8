package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, "cpp -P", opts.CppCmd)
	assert.True(t, opts.Override)
}

func TestOptionsApplyOverlaysNonZeroFields(t *testing.T) {
	base := Options{Display: ":0", CppCmd: "cpp -P", Override: true}
	other := Options{CppCmd: "m4"}

	merged := base.Apply(other)
	assert.Equal(t, ":0", merged.Display, "unset fields in other leave base untouched")
	assert.Equal(t, "m4", merged.CppCmd)
}

func TestOptionsApplyOverridesLockPath(t *testing.T) {
	base := Options{LockPath: "/tmp/old.lock"}
	other := Options{LockPath: "/tmp/new.lock"}

	merged := base.Apply(other)
	assert.Equal(t, "/tmp/new.lock", merged.LockPath)
}

func TestOptionsApplyOverridesScreenResources(t *testing.T) {
	base := Options{ScreenResources: true}
	other := Options{ScreenResources: false}

	merged := base.Apply(other)
	assert.False(t, merged.ScreenResources)
}
