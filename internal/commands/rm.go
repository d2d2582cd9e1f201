package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/todo"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
// Later tasks move up one index.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"remove"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "todo rm <index>" }
func (c *RmCmd) NeedsAuth() bool   { return false }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, rt *Runtime, args []string, out, errOut io.Writer) int {
	if err := exactArgs(args, 1); err != nil {
		return fail(errOut, err)
	}

	return withList(rt, errOut, func(l *todo.List) error {
		index, err := l.Index(args[0])
		if err != nil {
			return err
		}
		if err := l.Remove(index); err != nil {
			return err
		}
		rt.Logger.Debug("task removed", "index", index)
		return nil
	})
}
