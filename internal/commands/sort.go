package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/todo"
)

func init() {
	Register(&SortCmd{})
}

// SortCmd implements the sort command.
// Without --write the store keeps its order; only the output is sorted.
type SortCmd struct {
	write bool
}

// SetWrite sets the write flag (for testing).
func (c *SortCmd) SetWrite(write bool) {
	c.write = write
}

func (c *SortCmd) Name() string      { return "sort" }
func (c *SortCmd) Aliases() []string { return nil }
func (c *SortCmd) Synopsis() string  { return "Print tasks open first, then alphabetically" }
func (c *SortCmd) Usage() string     { return "todo sort [--write]" }
func (c *SortCmd) NeedsAuth() bool   { return false }

func (c *SortCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.write, "write", false, "")
	fs.BoolVar(&c.write, "w", false, "")
}

func (c *SortCmd) Run(ctx context.Context, rt *Runtime, args []string, out, errOut io.Writer) int {
	return withList(rt, errOut, func(l *todo.List) error {
		if err := l.Sort(out, c.write); err != nil {
			return err
		}
		if c.write {
			rt.Logger.Info("sorted order saved", "path", rt.Store.Path())
		}
		return nil
	})
}
