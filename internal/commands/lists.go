package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/exitcode"
	"todo/internal/output"
)

func init() {
	Register(&ListsCmd{})
}

// ListsCmd implements the lists command: the Google Tasks lists push
// and pull can target, default list flagged.
type ListsCmd struct{}

func (c *ListsCmd) Name() string      { return "lists" }
func (c *ListsCmd) Aliases() []string { return nil }
func (c *ListsCmd) Synopsis() string  { return "Print Google Tasks lists" }
func (c *ListsCmd) Usage() string     { return "todo lists [common flags]" }
func (c *ListsCmd) NeedsAuth() bool   { return true }

func (c *ListsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListsCmd) Run(ctx context.Context, rt *Runtime, args []string, out, errOut io.Writer) int {
	lists, err := rt.Service.ListLists(ctx)
	if err != nil {
		return fail(errOut, fmt.Errorf("backend error: %w", err))
	}
	rt.Logger.Debug("remote lists fetched", "count", len(lists))

	for _, list := range lists {
		output.FormatListName(out, list)
	}
	return exitcode.Success
}
