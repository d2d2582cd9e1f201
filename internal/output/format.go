// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"todo/internal/entry"
	"todo/internal/service"
)

// Display renders entries for humans.
// Done entries are struck through when the writer is a terminal.
type Display struct {
	done lipgloss.Style
}

// NewDisplay creates a Display styled for w.
func NewDisplay(w io.Writer) *Display {
	return NewDisplayWithRenderer(lipgloss.NewRenderer(w))
}

// NewDisplayWithRenderer creates a Display using r for styling.
func NewDisplayWithRenderer(r *lipgloss.Renderer) *Display {
	return &Display{
		done: r.NewStyle().
			Strikethrough(true).
			TabWidth(lipgloss.NoTabConversion),
	}
}

// Line formats an entry for the list command.
// Format: "{N} {ELEMENT}\n" where N is the 1-based position.
func (d *Display) Line(num int, e entry.Entry) string {
	text := e.Element
	if e.Checked && text != "" {
		text = d.done.Render(text)
	}
	return strconv.Itoa(num) + " " + text + "\n"
}

// FormatListName formats a remote list name for the lists command.
func FormatListName(w io.Writer, list service.TaskList) {
	title := normalizeListTitle(list.Title)
	if list.IsDefault {
		title += " [default]"
	}
	fmt.Fprintln(w, title)
}

// normalizeListTitle normalizes a list title for display.
// Empty or whitespace-only titles become "(untitled)".
func normalizeListTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
