// Package service defines the backend-agnostic interface for remote task lists.
package service

import "context"

// PageSize is the number of tasks returned per ListOpenTasks page.
const PageSize = 100

// Service is a remote task backend used by push and pull.
// Commands never import the Google SDK directly.
type Service interface {
	// DefaultList returns the user's default task list.
	DefaultList(ctx context.Context) (TaskList, error)

	// ListLists returns all task lists in API order.
	ListLists(ctx context.Context) ([]TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns error if not found or ambiguous.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// ListOpenTasks returns open tasks for a list.
	// page is 1-based; pages hold PageSize tasks.
	// Returns empty slice if page is out of range.
	ListOpenTasks(ctx context.Context, listID string, page int) ([]Task, error)

	// CreateTask creates a task in the list, already completed if completed is set.
	CreateTask(ctx context.Context, listID, title string, completed bool) error
}
