// Package storage provides the locked read and atomic write primitives shared
// by the title library and the file presence sink.
package storage

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"presencesync/internal/constants"
)

// LockTimeoutError is returned when a file lock cannot be acquired within the timeout period.
type LockTimeoutError struct {
	Path    string
	Timeout time.Duration
}

func (e *LockTimeoutError) Error() string {
	return fmt.Sprintf("timeout acquiring lock on %s after %v", e.Path, e.Timeout)
}

// LockPath returns the path to the lock file guarding path.
func LockPath(path string) string {
	return path + ".lock"
}

func lockTimeout() time.Duration {
	return time.Duration(constants.FileLockTimeout) * time.Second
}

func acquire(path string, shared bool) (*flock.Flock, error) {
	lockPath := LockPath(path)
	fileLock := flock.New(lockPath)

	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout())
	defer cancel()

	retry := time.Duration(constants.FileLockRetryDelay) * time.Millisecond

	var (
		locked bool
		err    error
	)
	if shared {
		locked, err = fileLock.TryRLockContext(ctx, retry)
	} else {
		locked, err = fileLock.TryLockContext(ctx, retry)
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, &LockTimeoutError{Path: lockPath, Timeout: lockTimeout()}
		}
		return nil, fmt.Errorf("error acquiring lock: %w", err)
	}
	if !locked {
		return nil, &LockTimeoutError{Path: lockPath, Timeout: lockTimeout()}
	}

	return fileLock, nil
}

// ReadLocked reads path while holding a shared lock. Multiple readers may
// hold the lock at once.
func ReadLocked(path string) ([]byte, error) {
	fileLock, err := acquire(path, true)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock for reading %q: %w", path, err)
	}
	defer fileLock.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	return data, nil
}

// Update runs fn under an exclusive lock. fn receives the current file
// contents (nil when the file does not exist yet) and returns the bytes to
// write back, or nil to leave the file untouched.
func Update(path string, fn func(current []byte) ([]byte, error)) error {
	fileLock, err := acquire(path, false)
	if err != nil {
		return fmt.Errorf("failed to acquire lock for writing %q: %w", path, err)
	}
	defer fileLock.Unlock()

	current, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read %q: %w", path, err)
	}

	next, err := fn(current)
	if err != nil {
		return err
	}
	if next == nil {
		return nil
	}

	return writeAtomic(path, next)
}

// WriteAtomic replaces path with data under an exclusive lock.
func WriteAtomic(path string, data []byte) error {
	fileLock, err := acquire(path, false)
	if err != nil {
		return fmt.Errorf("failed to acquire lock for writing %q: %w", path, err)
	}
	defer fileLock.Unlock()

	return writeAtomic(path, data)
}

// writeAtomic writes to a temporary file in the target directory and renames
// it over path, so readers never observe a partial file. Caller holds the lock.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.tmp.%d.%d", base, time.Now().Unix(), rand.Intn(constants.TempFileRandomRange)))

	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary file %q: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to atomically replace %q from temporary %q: %w", path, tmpPath, err)
	}

	return nil
}

// Remove deletes path and its lock file. Missing files are not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %q: %w", path, err)
	}
	if err := os.Remove(LockPath(path)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete lock %q: %w", LockPath(path), err)
	}
	return nil
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
