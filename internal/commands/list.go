package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/output"
	"todo/internal/todo"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// It also runs when todo is invoked without a command.
type ListCmd struct{}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List all tasks" }
func (c *ListCmd) Usage() string     { return "todo list" }
func (c *ListCmd) NeedsAuth() bool   { return false }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, rt *Runtime, args []string, out, errOut io.Writer) int {
	return withList(rt, errOut, func(l *todo.List) error {
		return l.Show(out, output.NewDisplay(out))
	})
}
