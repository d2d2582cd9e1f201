// Package store implements the flat backing file for the task list.
package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/natefinch/atomic"

	"todo/internal/lock"
)

const (
	// LockSuffix is appended to the store path to name its lock file.
	LockSuffix = ".lock"

	dirPerms  = 0755
	filePerms = 0644
)

// Error is a store I/O failure.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsError reports whether err is (or wraps) a store Error.
func IsError(err error) bool {
	var se *Error
	return errors.As(err, &se)
}

// FileStore is a text file holding the whole task list.
type FileStore struct {
	path   string
	logger *log.Logger
}

// New returns a FileStore for path. Nothing touches the disk until the first call.
// A nil logger discards output.
func New(path string, logger *log.Logger) *FileStore {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &FileStore{path: path, logger: logger}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Read returns the whole file, creating it (and its directory) if absent.
func (s *FileStore) Read() (string, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), dirPerms); err != nil {
		return "", &Error{Op: "create", Path: s.path, Err: err}
	}

	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE, filePerms)
	if err != nil {
		return "", &Error{Op: "open", Path: s.path, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", &Error{Op: "read", Path: s.path, Err: err}
	}

	s.logger.Debug("store read", "path", s.path, "bytes", len(data))
	return string(data), nil
}

// Append adds data to the end of the file without rewriting earlier lines.
func (s *FileStore) Append(data string) error {
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, filePerms)
	if err != nil {
		return &Error{Op: "open", Path: s.path, Err: err}
	}

	if _, err := f.WriteString(data); err != nil {
		f.Close()
		return &Error{Op: "append", Path: s.path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &Error{Op: "append", Path: s.path, Err: err}
	}

	s.logger.Debug("store appended", "path", s.path, "bytes", len(data))
	return nil
}

// Replace overwrites the whole file with data.
// The new content is written to a temp file and renamed into place.
func (s *FileStore) Replace(data string) error {
	if err := atomic.WriteFile(s.path, strings.NewReader(data)); err != nil {
		return &Error{Op: "write", Path: s.path, Err: err}
	}
	s.logger.Debug("store rewritten", "path", s.path, "bytes", len(data))
	return nil
}

// Truncate empties the file.
func (s *FileStore) Truncate() error {
	if err := s.Replace(""); err != nil {
		return err
	}
	s.logger.Info("store reset", "path", s.path)
	return nil
}

// Lock takes the exclusive lock guarding the store, waiting for another
// todo process to finish if it holds it. The returned func releases it.
func (s *FileStore) Lock() (func(), error) {
	path := s.path + LockSuffix

	l, err := lock.TryAcquire(path)
	if err == nil && l == nil {
		s.logger.Info("waiting for store lock", "lock", path)
		l, err = lock.Acquire(path)
	}
	if err != nil {
		return nil, &Error{Op: "lock", Path: path, Err: err}
	}

	s.logger.Debug("store locked", "lock", path)
	return func() {
		if err := l.Release(); err != nil {
			s.logger.Warn("release store lock", "lock", path, "err", err)
		}
	}, nil
}
