// Package xrdblock provides an advisory file lock so concurrent xrdb
// invocations against the same resource file don't interleave writes.
package xrdblock

import (
	"io/fs"
	"os"
	"syscall"

	"github.com/pkg/errors"
)

// Lock is a held advisory lock on a lock file.
type Lock struct {
	f *os.File
}

// Acquire creates (if needed) and locks lockPath, blocking until the lock
// is available. Call Release when done.
func Acquire(lockPath string) (*Lock, error) {
	f, err := os.Create(lockPath)
	if err != nil {
		return nil, errors.Wrapf(err, "os.Create %q", lockPath)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		f.Close()
		return nil, &fs.PathError{Op: "flock", Path: lockPath, Err: err}
	}

	return &Lock{f: f}, nil
}

// TryAcquire is like Acquire but returns (nil, false, nil) immediately
// instead of blocking if the lock is already held elsewhere.
func TryAcquire(lockPath string) (*Lock, bool, error) {
	f, err := os.Create(lockPath)
	if err != nil {
		return nil, false, errors.Wrapf(err, "os.Create %q", lockPath)
	}

	err = syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
	if err == syscall.EWOULDBLOCK {
		f.Close()
		return nil, false, nil
	}
	if err != nil {
		f.Close()
		return nil, false, &fs.PathError{Op: "flock", Path: lockPath, Err: err}
	}

	return &Lock{f: f}, true, nil
}

// Release unlocks and closes the lock file.
func (l *Lock) Release() error {
	if err := syscall.Flock(int(l.f.Fd()), syscall.LOCK_UN); err != nil {
		l.f.Close()
		return errors.Wrapf(err, "syscall.Flock LOCK_UN")
	}
	return l.f.Close()
}
