package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/todo"
)

func init() {
	Register(&ResetCmd{})
}

// ResetCmd implements the reset command. There is no confirmation.
type ResetCmd struct{}

func (c *ResetCmd) Name() string      { return "reset" }
func (c *ResetCmd) Aliases() []string { return nil }
func (c *ResetCmd) Synopsis() string  { return "Delete all tasks" }
func (c *ResetCmd) Usage() string     { return "todo reset" }
func (c *ResetCmd) NeedsAuth() bool   { return false }

func (c *ResetCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ResetCmd) Run(ctx context.Context, rt *Runtime, args []string, out, errOut io.Writer) int {
	return withList(rt, errOut, func(l *todo.List) error {
		return l.Reset()
	})
}
