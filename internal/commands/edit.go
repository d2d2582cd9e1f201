package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/todo"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
type EditCmd struct{}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Replace a task's text" }
func (c *EditCmd) Usage() string     { return `todo edit <index> "<new text>"` }
func (c *EditCmd) NeedsAuth() bool   { return false }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, rt *Runtime, args []string, out, errOut io.Writer) int {
	if err := exactArgs(args, 2); err != nil {
		return fail(errOut, err)
	}

	return withList(rt, errOut, func(l *todo.List) error {
		index, err := l.Index(args[0])
		if err != nil {
			return err
		}
		if err := l.Edit(index, args[1]); err != nil {
			return err
		}
		rt.Logger.Debug("task edited", "index", index)
		return nil
	})
}
