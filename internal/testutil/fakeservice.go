// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"todo/internal/service"
)

// DefaultListID is the ID used for the default list.
const DefaultListID = "@default"

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.RWMutex
	lists  []service.TaskList
	tasks  map[string][]service.Task // listID -> tasks
	nextID int

	// Error injection for testing
	DefaultListErr   error
	ListListsErr     error
	ResolveListErr   error
	ListOpenTasksErr map[string]error // listID -> error
	CreateTaskErr    error
}

// NewFakeService creates a new FakeService with a default list.
func NewFakeService() *FakeService {
	fs := &FakeService{
		tasks:            make(map[string][]service.Task),
		ListOpenTasksErr: make(map[string]error),
	}
	fs.lists = []service.TaskList{
		{ID: DefaultListID, Title: "My Tasks", IsDefault: true},
	}
	fs.tasks[DefaultListID] = nil
	return fs
}

// AddList adds a list to the fake service.
func (f *FakeService) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Title: title})
	if f.tasks[id] == nil {
		f.tasks[id] = nil
	}
}

// AddTask adds an open task to a list.
func (f *FakeService) AddTask(listID, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appendTask(listID, title, service.StatusNeedsAction)
}

// AddCompletedTask adds a completed task to a list.
func (f *FakeService) AddCompletedTask(listID, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appendTask(listID, title, service.StatusCompleted)
}

func (f *FakeService) appendTask(listID, title, status string) {
	f.nextID++
	f.tasks[listID] = append(f.tasks[listID], service.Task{
		ID:     fmt.Sprintf("task-%d", f.nextID),
		Title:  title,
		Status: status,
	})
}

// Tasks returns a copy of every task in a list, open and completed.
func (f *FakeService) Tasks(listID string) []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Task, len(f.tasks[listID]))
	copy(result, f.tasks[listID])
	return result
}

// DefaultList implements service.Service.
func (f *FakeService) DefaultList(ctx context.Context) (service.TaskList, error) {
	if f.DefaultListErr != nil {
		return service.TaskList{}, f.DefaultListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, l := range f.lists {
		if l.IsDefault {
			return l, nil
		}
	}
	return service.TaskList{}, errors.New("no default list")
}

// ListLists implements service.Service.
func (f *FakeService) ListLists(ctx context.Context) ([]service.TaskList, error) {
	if f.ListListsErr != nil {
		return nil, f.ListListsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.TaskList, len(f.lists))
	copy(result, f.lists)
	return result, nil
}

// ResolveList implements service.Service.
func (f *FakeService) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	if f.ResolveListErr != nil {
		return service.TaskList{}, f.ResolveListErr
	}
	lists, err := f.ListLists(ctx)
	if err != nil {
		return service.TaskList{}, err
	}
	return service.MatchList(lists, name)
}

// ListOpenTasks implements service.Service.
func (f *FakeService) ListOpenTasks(ctx context.Context, listID string, page int) ([]service.Task, error) {
	if err, ok := f.ListOpenTasksErr[listID]; ok && err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	tasks, ok := f.tasks[listID]
	if !ok {
		return nil, service.ErrNotFound
	}

	var open []service.Task
	for _, t := range tasks {
		if !t.Completed() {
			open = append(open, t)
		}
	}

	start := (page - 1) * service.PageSize
	if start >= len(open) {
		return nil, nil
	}
	end := min(start+service.PageSize, len(open))
	return open[start:end], nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, listID, title string, completed bool) error {
	if f.CreateTaskErr != nil {
		return f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.tasks[listID]; !ok {
		return service.ErrNotFound
	}

	status := service.StatusNeedsAction
	if completed {
		status = service.StatusCompleted
	}
	f.appendTask(listID, title, status)
	return nil
}
