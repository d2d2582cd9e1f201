package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"todo/internal/entry"
	"todo/internal/service"
)

func TestLine_PlainWriter(t *testing.T) {
	var buf bytes.Buffer
	d := NewDisplay(&buf)

	if got := d.Line(1, entry.Entry{Element: "buy milk"}); got != "1 buy milk\n" {
		t.Errorf("expected %q, got %q", "1 buy milk\n", got)
	}
	// No terminal, so a done entry is plain too.
	if got := d.Line(12, entry.Entry{Element: "wash car", Checked: true}); got != "12 wash car\n" {
		t.Errorf("expected %q, got %q", "12 wash car\n", got)
	}
}

func TestLine_StrikethroughOnTerminal(t *testing.T) {
	var buf bytes.Buffer
	r := lipgloss.NewRenderer(&buf)
	r.SetColorProfile(termenv.ANSI)
	d := NewDisplayWithRenderer(r)

	done := d.Line(1, entry.Entry{Element: "wash car", Checked: true})
	if !strings.Contains(done, "\x1b[9m") {
		t.Errorf("expected strikethrough sequence in %q", done)
	}
	if !strings.HasPrefix(done, "1 ") || !strings.HasSuffix(done, "\n") {
		t.Errorf("expected index prefix and newline, got %q", done)
	}

	open := d.Line(2, entry.Entry{Element: "call mom"})
	if open != "2 call mom\n" {
		t.Errorf("open entries must not be styled, got %q", open)
	}
}

func TestLine_KeepsTabs(t *testing.T) {
	var buf bytes.Buffer
	d := NewDisplay(&buf)

	got := d.Line(3, entry.Entry{Element: "a\tb", Checked: true})
	if got != "3 a\tb\n" {
		t.Errorf("expected tab preserved, got %q", got)
	}
}

func TestFormatListName(t *testing.T) {
	var buf bytes.Buffer
	FormatListName(&buf, service.TaskList{Title: "My Tasks", IsDefault: true})
	FormatListName(&buf, service.TaskList{Title: "  "})

	expected := "My Tasks [default]\n(untitled)\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}
