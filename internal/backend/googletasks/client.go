// Package googletasks implements the service.Service interface using Google Tasks API.
package googletasks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"todo/internal/auth"
	"todo/internal/config"
	"todo/internal/service"
)

const (
	// DefaultListID is the special ID for the default list.
	DefaultListID = "@default"

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second
)

// Client implements service.Service using Google Tasks API.
type Client struct {
	svc *tasks.Service
}

// New creates a Google Tasks client from the stored OAuth client and token.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	tokenSource, err := auth.TokenSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewWithHTTPClient(ctx, oauth2.NewClient(ctx, tokenSource))
}

// NewWithHTTPClient creates a client with a custom HTTP client.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// DefaultList returns the user's default task list.
func (c *Client) DefaultList(ctx context.Context) (service.TaskList, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	list, err := c.svc.Tasklists.Get(DefaultListID).Context(ctx).Do()
	if err != nil {
		return service.TaskList{}, wrapError(err)
	}

	return service.TaskList{
		ID:        DefaultListID,
		Title:     list.Title,
		IsDefault: true,
	}, nil
}

// ListLists returns all task lists in API order.
func (c *Client) ListLists(ctx context.Context) ([]service.TaskList, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	// The default list's real ID is needed to flag it in the listing.
	defaultList, err := c.svc.Tasklists.Get(DefaultListID).Context(ctx).Do()
	if err != nil {
		return nil, wrapError(err)
	}

	var result []service.TaskList
	err = c.svc.Tasklists.List().MaxResults(100).Pages(ctx, func(resp *tasks.TaskLists) error {
		for _, list := range resp.Items {
			isDefault := list.Id == defaultList.Id
			id := list.Id
			if isDefault {
				id = DefaultListID
			}
			result = append(result, service.TaskList{
				ID:        id,
				Title:     list.Title,
				IsDefault: isDefault,
			})
		}
		return nil
	})
	if err != nil {
		return nil, wrapError(err)
	}

	return result, nil
}

// ResolveList finds a list by name (case-insensitive, trimmed).
func (c *Client) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	lists, err := c.ListLists(ctx)
	if err != nil {
		return service.TaskList{}, err
	}
	return service.MatchList(lists, name)
}

// ListOpenTasks returns open tasks for a list.
func (c *Client) ListOpenTasks(ctx context.Context, listID string, page int) ([]service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	call := c.svc.Tasks.List(listID).
		MaxResults(service.PageSize).
		ShowCompleted(false).
		ShowDeleted(false).
		ShowHidden(false).
		Context(ctx)

	// The API pages by token, so walk forward to the requested page.
	var pageToken string
	for current := 1; current < page; current++ {
		resp, err := call.PageToken(pageToken).Do()
		if err != nil {
			return nil, wrapError(err)
		}
		if resp.NextPageToken == "" {
			return nil, nil
		}
		pageToken = resp.NextPageToken
	}

	resp, err := call.PageToken(pageToken).Do()
	if err != nil {
		return nil, wrapError(err)
	}

	result := make([]service.Task, 0, len(resp.Items))
	for _, task := range resp.Items {
		result = append(result, service.Task{
			ID:     task.Id,
			Title:  task.Title,
			Status: task.Status,
		})
	}
	return result, nil
}

// CreateTask creates a task in the specified list.
func (c *Client) CreateTask(ctx context.Context, listID, title string, completed bool) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	status := service.StatusNeedsAction
	if completed {
		status = service.StatusCompleted
	}

	_, err := c.svc.Tasks.Insert(listID, &tasks.Task{Title: title, Status: status}).Context(ctx).Do()
	if err != nil {
		return wrapError(err)
	}
	return nil
}

// wrapError maps API failures onto the errors commands report.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("token expired or revoked: %w", auth.ErrNotLoggedIn)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", service.ErrNotFound, apiErr.Message)
		}
	}
	return err
}
