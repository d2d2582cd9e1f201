package commands_test

import (
	"context"
	"flag"
	"io"
	"testing"

	"todo/internal/commands"
)

type stubCmd struct {
	name    string
	aliases []string
}

func (c *stubCmd) Name() string      { return c.name }
func (c *stubCmd) Aliases() []string { return c.aliases }
func (c *stubCmd) Synopsis() string  { return "" }
func (c *stubCmd) Usage() string     { return "" }
func (c *stubCmd) NeedsAuth() bool   { return false }

func (c *stubCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *stubCmd) Run(ctx context.Context, rt *commands.Runtime, args []string, out, errOut io.Writer) int {
	return 0
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&stubCmd{name: "rm", aliases: []string{"remove"}}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := r.Register(&stubCmd{name: "remove"}); err == nil {
		t.Error("expected error for name clashing with an alias")
	}
	if err := r.Register(&stubCmd{name: "del", aliases: []string{"rm"}}); err == nil {
		t.Error("expected error for alias clashing with a name")
	}
	if _, ok := r.Find("del"); ok {
		t.Error("a rejected command must not be partially registered")
	}
}

func TestRegistry_FindAndAll(t *testing.T) {
	r := commands.NewRegistry()
	r.Register(&stubCmd{name: "zz"})
	r.Register(&stubCmd{name: "aa", aliases: []string{"a"}})

	cmd, ok := r.Find("a")
	if !ok || cmd.Name() != "aa" {
		t.Fatalf("alias lookup failed: %v %v", cmd, ok)
	}

	all := r.All()
	if len(all) != 2 || all[0].Name() != "aa" || all[1].Name() != "zz" {
		t.Errorf("unexpected All() result")
	}
}
