// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, bad index, bad filter).
	UserError = 1

	// AuthError indicates an auth/config error.
	AuthError = 2

	// BackendError indicates a remote backend/API/network error.
	BackendError = 3

	// StoreError indicates the task file could not be read, written or parsed.
	StoreError = 4
)
