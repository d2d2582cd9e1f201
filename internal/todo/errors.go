package todo

import "errors"

// Argument errors. Callers match them with errors.Is; the returned errors
// usually wrap one of these with detail.
var (
	// ErrNoArgs indicates a command that needs arguments got none.
	ErrNoArgs = errors.New("args can not be empty")

	// ErrArgCount indicates the wrong number of arguments.
	ErrArgCount = errors.New("wrong number of arguments")

	// ErrInvalidIndex indicates an index that is not a positive number.
	ErrInvalidIndex = errors.New("index must be a valid number")

	// ErrOutOfBounds indicates an index of 0 or past the last entry.
	ErrOutOfBounds = errors.New("index is out of bounds")

	// ErrInvalidFilter indicates a raw filter other than done or todo.
	ErrInvalidFilter = errors.New("raw value must be either 'done' or 'todo'")

	// ErrInvalidText indicates task text that cannot be stored on one line.
	ErrInvalidText = errors.New("invalid task text")
)

// IsUsageError reports whether err is caused by bad command arguments.
func IsUsageError(err error) bool {
	for _, target := range []error{ErrNoArgs, ErrArgCount, ErrInvalidIndex, ErrOutOfBounds, ErrInvalidFilter, ErrInvalidText} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
