package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/todo"
)

func init() {
	Register(&RawCmd{})
}

// RawCmd implements the raw command: stored lines for scripts.
type RawCmd struct{}

func (c *RawCmd) Name() string      { return "raw" }
func (c *RawCmd) Aliases() []string { return nil }
func (c *RawCmd) Synopsis() string  { return "Print done or open tasks as stored lines" }
func (c *RawCmd) Usage() string     { return "todo raw <done|todo>" }
func (c *RawCmd) NeedsAuth() bool   { return false }

func (c *RawCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RawCmd) Run(ctx context.Context, rt *Runtime, args []string, out, errOut io.Writer) int {
	if err := exactArgs(args, 1); err != nil {
		return fail(errOut, err)
	}
	filter, err := todo.ParseFilter(args[0])
	if err != nil {
		return fail(errOut, err)
	}

	return withList(rt, errOut, func(l *todo.List) error {
		return l.Raw(filter, out)
	})
}
