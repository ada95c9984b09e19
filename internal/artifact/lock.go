package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is created in the output directory while a build writes it.
const LockFileName = ".search.lock"

// ErrLocked is returned when another process holds the output directory lock.
var ErrLocked = errors.New("output directory is locked by another build")

// FileLock serialises builders writing to the same output directory across
// processes.
type FileLock struct {
	path   string
	flock  *flock.Flock
	locked bool
}

// NewFileLock creates a lock at <dir>/.search.lock. Nothing is touched until
// TryLock.
func NewFileLock(dir string) *FileLock {
	lockPath := filepath.Join(dir, LockFileName)
	return &FileLock{
		path:  lockPath,
		flock: flock.New(lockPath),
	}
}

// TryLock acquires the lock without blocking. A lock held elsewhere yields
// ErrLocked.
func (l *FileLock) TryLock() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}

	acquired, err := l.flock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !acquired {
		return fmt.Errorf("%w: %s", ErrLocked, l.path)
	}
	l.locked = true
	return nil
}

// Unlock releases the lock. Calling it on an unlocked FileLock is a no-op.
func (l *FileLock) Unlock() error {
	if !l.locked {
		return nil
	}
	l.locked = false
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}

// Path returns the lock file path.
func (l *FileLock) Path() string {
	return l.path
}
