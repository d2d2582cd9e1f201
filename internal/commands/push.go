package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/service"
	"todo/internal/todo"
)

func init() {
	Register(&PushCmd{})
}

// PushCmd implements the push command.
// Every local entry becomes a remote task; checked entries are created completed.
type PushCmd struct {
	listName string
}

// SetListName sets the list name (for testing).
func (c *PushCmd) SetListName(name string) {
	c.listName = name
}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return nil }
func (c *PushCmd) Synopsis() string  { return "Copy tasks to a Google Tasks list" }
func (c *PushCmd) Usage() string     { return "todo push [common flags] [--list <list-name>]" }
func (c *PushCmd) NeedsAuth() bool   { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
}

func (c *PushCmd) Run(ctx context.Context, rt *Runtime, args []string, out, errOut io.Writer) int {
	if err := exactArgs(args, 0); err != nil {
		return fail(errOut, err)
	}

	list, err := remoteList(ctx, rt, c.listName)
	if err != nil {
		return fail(errOut, err)
	}

	return withList(rt, errOut, func(l *todo.List) error {
		entries, err := l.Entries()
		if err != nil {
			return err
		}
		for _, e := range entries {
			if err := rt.Service.CreateTask(ctx, list.ID, e.Element, e.Checked); err != nil {
				return fmt.Errorf("backend error: %w", err)
			}
		}
		rt.Logger.Info("pushed tasks", "list", list.Title, "count", len(entries))
		if !rt.Config.Quiet {
			fmt.Fprintf(out, "pushed %d tasks to %s\n", len(entries), list.Title)
		}
		return nil
	})
}

// remoteList resolves the sync target: the --list flag, then the configured
// remote list, then the account's default list.
func remoteList(ctx context.Context, rt *Runtime, name string) (service.TaskList, error) {
	if name == "" {
		name = rt.Config.RemoteList
	}
	if name == "" {
		list, err := rt.Service.DefaultList(ctx)
		if err != nil {
			return service.TaskList{}, fmt.Errorf("backend error: %w", err)
		}
		return list, nil
	}

	list, err := rt.Service.ResolveList(ctx, name)
	if err != nil {
		if isLookupError(err) {
			return service.TaskList{}, err
		}
		return service.TaskList{}, fmt.Errorf("backend error: %w", err)
	}
	return list, nil
}
