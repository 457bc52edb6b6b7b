// Package filelock guards an output directory against concurrent runs.
package filelock

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is the name of the lock file created inside a locked directory
const LockFileName = ".rawpick.lock"

// ErrLocked is returned when another process holds the lock
var ErrLocked = errors.New("directory is locked by another run")

// FileLock wraps a flock file lock
type FileLock struct {
	flock *flock.Flock
	path  string
}

// New creates a lock for the given lock file path
func New(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// ForDir creates a lock whose file lives inside dir
func ForDir(dir string) *FileLock {
	return New(filepath.Join(dir, LockFileName))
}

// Path returns the lock file path
func (fl *FileLock) Path() string {
	return fl.path
}

// TryLock acquires the lock without blocking; ErrLocked means someone else has it
func (fl *FileLock) TryLock() error {
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to try lock on %s: %w", fl.path, err)
	}
	if !acquired {
		return fmt.Errorf("%w: %s", ErrLocked, fl.path)
	}
	return nil
}

// Unlock releases the lock. The lock file stays in place: removing it would
// let a waiter holding the old inode and a newcomer on a fresh file both
// believe they own the lock.
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}
