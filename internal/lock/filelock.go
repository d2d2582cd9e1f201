// Package lock holds an advisory exclusive flock on a file next to the store.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"
)

// FileLock is a held lock. Release it exactly when the guarded work is done.
type FileLock struct {
	path string

	mu   sync.Mutex
	file *os.File // nil once released
}

// Acquire blocks until path is locked.
// The lock file and its directory are created if missing.
func Acquire(path string) (*FileLock, error) {
	return flock(path, syscall.LOCK_EX)
}

// TryAcquire locks path if nobody else holds it.
// It returns nil, nil when the lock is taken.
func TryAcquire(path string) (*FileLock, error) {
	l, err := flock(path, syscall.LOCK_EX|syscall.LOCK_NB)
	if errors.Is(err, syscall.EWOULDBLOCK) {
		return nil, nil
	}
	return l, err
}

func flock(path string, how int) (*FileLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), how); err != nil {
		f.Close()
		return nil, fmt.Errorf("flock %s: %w", path, err)
	}
	return &FileLock{path: path, file: f}, nil
}

// Path returns the lock file path.
func (l *FileLock) Path() string {
	return l.path
}

// Release unlocks and closes the lock file. Later calls do nothing.
func (l *FileLock) Release() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil

	// Closing the descriptor drops the flock even if LOCK_UN fails.
	unlockErr := syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
	closeErr := f.Close()
	return errors.Join(unlockErr, closeErr)
}
