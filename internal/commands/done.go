package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/todo"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command.
// It toggles, so running it twice reopens the task.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's completion" }
func (c *DoneCmd) Usage() string     { return "todo done <index>" }
func (c *DoneCmd) NeedsAuth() bool   { return false }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, rt *Runtime, args []string, out, errOut io.Writer) int {
	if err := exactArgs(args, 1); err != nil {
		return fail(errOut, err)
	}

	return withList(rt, errOut, func(l *todo.List) error {
		index, err := l.Index(args[0])
		if err != nil {
			return err
		}
		if err := l.Toggle(index); err != nil {
			return err
		}
		rt.Logger.Debug("task toggled", "index", index)
		return nil
	})
}
