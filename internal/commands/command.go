// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"todo/internal/auth"
	"todo/internal/config"
	"todo/internal/entry"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/store"
	"todo/internal/todo"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command talks to the remote service.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command with positional args and returns the exit code.
	Run(ctx context.Context, rt *Runtime, args []string, out, errOut io.Writer) int
}

// Runtime is everything a command works with besides its arguments.
type Runtime struct {
	Config *config.Config
	Store  *store.FileStore
	Logger *log.Logger

	// Service is nil unless the command NeedsAuth.
	Service service.Service
}

// withList loads the task list, holding the store lock when configured,
// runs fn and reports its error.
func withList(rt *Runtime, errOut io.Writer, fn func(l *todo.List) error) int {
	if rt.Config.Lock {
		unlock, err := rt.Store.Lock()
		if err != nil {
			return fail(errOut, err)
		}
		defer unlock()
	}

	l, err := todo.Load(rt.Store)
	if err != nil {
		return fail(errOut, err)
	}
	rt.Logger.Debug("task list loaded", "path", rt.Store.Path(), "entries", l.Len())

	if err := fn(l); err != nil {
		return fail(errOut, err)
	}
	return exitcode.Success
}

// fail prints err and returns the matching exit code.
func fail(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitCodeFor(err)
}

func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitcode.Success
	case todo.IsUsageError(err):
		return exitcode.UserError
	case store.IsError(err), errors.Is(err, entry.ErrMalformedLine):
		return exitcode.StoreError
	case isLookupError(err):
		return exitcode.UserError
	case auth.IsAuthError(err):
		return exitcode.AuthError
	default:
		return exitcode.BackendError
	}
}

// exactArgs checks the positional argument count.
func exactArgs(args []string, n int) error {
	if len(args) == 0 && n > 0 {
		return todo.ErrNoArgs
	}
	if len(args) != n {
		return fmt.Errorf("%w: expected %d, got %d", todo.ErrArgCount, n, len(args))
	}
	return nil
}

// isLookupError reports whether err is a remote list name that matched
// no list or several.
func isLookupError(err error) bool {
	return errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrAmbiguous)
}
