package commands

import (
	"context"
	"flag"
	"io"
	"strings"

	"todo/internal/output"
	"todo/internal/todo"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return nil }
func (c *AddCmd) Synopsis() string  { return "Add tasks (comma separated), then list" }
func (c *AddCmd) Usage() string     { return `todo add <task>[, <task>...]` }
func (c *AddCmd) NeedsAuth() bool   { return false }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, rt *Runtime, args []string, out, errOut io.Writer) int {
	texts := SplitTasks(args)
	if len(texts) == 0 {
		return fail(errOut, todo.ErrNoArgs)
	}

	return withList(rt, errOut, func(l *todo.List) error {
		if err := l.Add(texts...); err != nil {
			return err
		}
		rt.Logger.Debug("tasks added", "count", len(texts))
		return l.Show(out, output.NewDisplay(out))
	})
}

// SplitTasks joins args with spaces and splits the result on commas.
// Each task is trimmed and empty ones are dropped, so
// `add buy milk, call mom` adds two tasks.
func SplitTasks(args []string) []string {
	var texts []string
	for _, part := range strings.Split(strings.Join(args, " "), ",") {
		if part = strings.TrimSpace(part); part != "" {
			texts = append(texts, part)
		}
	}
	return texts
}
