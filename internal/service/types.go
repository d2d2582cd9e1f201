package service

// Task status values used by the remote API.
const (
	StatusNeedsAction = "needsAction"
	StatusCompleted   = "completed"
)

// Task represents a single remote task.
type Task struct {
	ID     string
	Title  string
	Status string
}

// Completed reports whether the task is done.
func (t Task) Completed() bool {
	return t.Status == StatusCompleted
}

// TaskList represents a remote task list.
type TaskList struct {
	ID        string
	Title     string
	IsDefault bool
}
