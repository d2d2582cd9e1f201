package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/output"
	"todo/internal/service"
	"todo/internal/todo"
)

func init() {
	Register(&PullCmd{})
}

// PullCmd implements the pull command.
// Open remote tasks are appended unless a local entry has the same text.
type PullCmd struct {
	listName string
}

// SetListName sets the list name (for testing).
func (c *PullCmd) SetListName(name string) {
	c.listName = name
}

func (c *PullCmd) Name() string      { return "pull" }
func (c *PullCmd) Aliases() []string { return nil }
func (c *PullCmd) Synopsis() string  { return "Append open tasks from a Google Tasks list" }
func (c *PullCmd) Usage() string     { return "todo pull [common flags] [--list <list-name>]" }
func (c *PullCmd) NeedsAuth() bool   { return true }

func (c *PullCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
}

func (c *PullCmd) Run(ctx context.Context, rt *Runtime, args []string, out, errOut io.Writer) int {
	if err := exactArgs(args, 0); err != nil {
		return fail(errOut, err)
	}

	list, err := remoteList(ctx, rt, c.listName)
	if err != nil {
		return fail(errOut, err)
	}
	tasks, err := openTasks(ctx, rt.Service, list.ID)
	if err != nil {
		return fail(errOut, err)
	}

	return withList(rt, errOut, func(l *todo.List) error {
		entries, err := l.Entries()
		if err != nil {
			return err
		}
		seen := make(map[string]bool, len(entries)+len(tasks))
		for _, e := range entries {
			seen[e.Element] = true
		}

		var titles []string
		for _, t := range tasks {
			if t.Title == "" || seen[t.Title] {
				continue
			}
			if strings.ContainsAny(t.Title, "\r\n") {
				rt.Logger.Warn("skipping multi-line remote task", "id", t.ID)
				continue
			}
			seen[t.Title] = true
			titles = append(titles, t.Title)
		}

		rt.Logger.Info("pulled tasks", "list", list.Title, "remote", len(tasks), "added", len(titles))
		if len(titles) > 0 {
			if err := l.Add(titles...); err != nil {
				return err
			}
		}
		return l.Show(out, output.NewDisplay(out))
	})
}

// openTasks reads every page of open tasks in a list.
func openTasks(ctx context.Context, svc service.Service, listID string) ([]service.Task, error) {
	var all []service.Task
	for page := 1; ; page++ {
		tasks, err := svc.ListOpenTasks(ctx, listID, page)
		if err != nil {
			return nil, fmt.Errorf("backend error: %w", err)
		}
		all = append(all, tasks...)
		if len(tasks) < service.PageSize {
			return all, nil
		}
	}
}
