// Package todo loads the task list from its store and applies one operation to it.
//
// Every operation works on the whole list: mutations re-encode every entry and
// replace the store content in full. Entries are addressed by their 1-based
// position at the time of the call, so removing entry k renumbers all later ones.
package todo

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"todo/internal/entry"
	"todo/internal/output"
)

// Store is the backing text for a List.
type Store interface {
	// Read returns the whole content, creating an empty store if absent.
	Read() (string, error)

	// Append adds data after the existing content.
	Append(data string) error

	// Replace overwrites the whole content with data.
	Replace(data string) error

	// Truncate empties the store.
	Truncate() error
}

// Filter selects entries by completion state for raw output.
type Filter int

const (
	// FilterDone selects checked entries.
	FilterDone Filter = iota
	// FilterTodo selects open entries.
	FilterTodo
)

// ParseFilter parses a raw filter argument: "done" or "todo".
func ParseFilter(s string) (Filter, error) {
	switch s {
	case "done":
		return FilterDone, nil
	case "todo":
		return FilterTodo, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidFilter, s)
	}
}

func (f Filter) match(e entry.Entry) bool {
	return e.Checked == (f == FilterDone)
}

// List is the task list as loaded from its store.
type List struct {
	store Store
	lines []string
}

// Load reads every line of st. Lines are decoded by each operation, not here.
func Load(st Store) (*List, error) {
	content, err := st.Read()
	if err != nil {
		return nil, err
	}
	return &List{store: st, lines: splitLines(content)}, nil
}

// splitLines splits on "\n", drops a "\r" before it, and ignores the empty
// tail left by a final newline.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Len returns the number of entries.
func (l *List) Len() int {
	return len(l.lines)
}

// Lines returns a copy of the stored lines, terminators stripped.
func (l *List) Lines() []string {
	return slices.Clone(l.lines)
}

// Entries decodes every line in order.
func (l *List) Entries() ([]entry.Entry, error) {
	entries := make([]entry.Entry, 0, len(l.lines))
	for i, line := range l.lines {
		e, err := entry.Decode(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Show writes every entry as "<index> <element>" in a single write.
func (l *List) Show(w io.Writer, d *output.Display) error {
	entries, err := l.Entries()
	if err != nil {
		return err
	}

	var b strings.Builder
	for i, e := range entries {
		b.WriteString(d.Line(i+1, e))
	}
	_, err = io.WriteString(w, b.String())
	return err
}

// Add appends open entries for texts to the store.
// Earlier lines are not rewritten.
func (l *List) Add(texts ...string) error {
	if len(texts) == 0 {
		return ErrNoArgs
	}
	for _, text := range texts {
		if err := validateText(text); err != nil {
			return err
		}
	}

	var b strings.Builder
	added := make([]string, 0, len(texts))
	for _, text := range texts {
		line := entry.Encode(entry.New(text))
		b.WriteString(line)
		added = append(added, strings.TrimSuffix(line, "\n"))
	}

	if err := l.store.Append(b.String()); err != nil {
		return err
	}
	l.lines = append(l.lines, added...)
	return nil
}

// Index parses a 1-based entry index and checks it against the current length.
func (l *List) Index(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIndex, arg)
	}
	if n == 0 || n > len(l.lines) {
		return 0, fmt.Errorf("%w: %d (have %d)", ErrOutOfBounds, n, len(l.lines))
	}
	return n, nil
}

// Toggle flips the completion flag of entry index and rewrites the store.
func (l *List) Toggle(index int) error {
	return l.rewrite(index, func(e entry.Entry) (entry.Entry, bool) {
		return e.Toggle(), true
	})
}

// Edit replaces the text of entry index, keeping its completion flag.
func (l *List) Edit(index int, text string) error {
	if err := validateText(text); err != nil {
		return err
	}
	return l.rewrite(index, func(e entry.Entry) (entry.Entry, bool) {
		return e.Replace(text), true
	})
}

// Remove deletes entry index. Later entries move up by one.
func (l *List) Remove(index int) error {
	return l.rewrite(index, func(e entry.Entry) (entry.Entry, bool) {
		return e, false
	})
}

// rewrite applies fn to the entry at index, re-encodes every entry and
// replaces the store. fn returning false drops the entry.
func (l *List) rewrite(index int, fn func(entry.Entry) (entry.Entry, bool)) error {
	if index < 1 || index > len(l.lines) {
		return fmt.Errorf("%w: %d (have %d)", ErrOutOfBounds, index, len(l.lines))
	}

	entries, err := l.Entries()
	if err != nil {
		return err
	}

	kept := make([]entry.Entry, 0, len(entries))
	for i, e := range entries {
		if i+1 == index {
			var keep bool
			if e, keep = fn(e); !keep {
				continue
			}
		}
		kept = append(kept, e)
	}
	return l.replace(kept)
}

func (l *List) replace(entries []entry.Entry) error {
	var b strings.Builder
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		line := entry.Encode(e)
		b.WriteString(line)
		lines = append(lines, strings.TrimSuffix(line, "\n"))
	}
	if err := l.store.Replace(b.String()); err != nil {
		return err
	}
	l.lines = lines
	return nil
}

// Reset empties the store.
func (l *List) Reset() error {
	if err := l.store.Truncate(); err != nil {
		return err
	}
	l.lines = nil
	return nil
}

// Sorted returns the entries ordered open first, then by text.
func (l *List) Sorted() ([]entry.Entry, error) {
	entries, err := l.Entries()
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(entries, func(a, b entry.Entry) int {
		if a.Checked != b.Checked {
			if a.Checked {
				return 1
			}
			return -1
		}
		return strings.Compare(a.Element, b.Element)
	})
	return entries, nil
}

// Sort writes the sorted entries in stored form to w.
// The store is only rewritten in the sorted order when persist is set.
func (l *List) Sort(w io.Writer, persist bool) error {
	entries, err := l.Sorted()
	if err != nil {
		return err
	}

	var b strings.Builder
	for _, e := range entries {
		b.WriteString(entry.Encode(e))
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	if persist {
		return l.replace(entries)
	}
	return nil
}

// Raw writes the stored lines matching f, unmodified, joined by newlines.
func (l *List) Raw(f Filter, w io.Writer) error {
	var matched []string
	for i, line := range l.lines {
		e, err := entry.Decode(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		if f.match(e) {
			matched = append(matched, line)
		}
	}
	_, err := io.WriteString(w, strings.Join(matched, "\n"))
	return err
}

func validateText(text string) error {
	if text == "" {
		return fmt.Errorf("%w: empty", ErrInvalidText)
	}
	if strings.ContainsAny(text, "\r\n") {
		return fmt.Errorf("%w: %q contains a line break", ErrInvalidText, text)
	}
	return nil
}
