// Package entry converts between task records and their stored line form.
package entry

import (
	"errors"
	"unicode/utf8"
)

const (
	// CheckedMarker prefixes a completed entry.
	CheckedMarker = "[*] "

	// UncheckedMarker prefixes an open entry.
	UncheckedMarker = "[ ] "

	// MarkerLen is the fixed width of the marker prefix in bytes.
	MarkerLen = 4
)

// ErrMalformedLine is returned for a stored line too short to hold a marker,
// or whose marker ends inside a multi-byte character.
var ErrMalformedLine = errors.New("malformed line")

// Entry is a single task: its text and completion flag.
type Entry struct {
	Element string
	Checked bool
}

// New creates an open entry.
func New(element string) Entry {
	return Entry{Element: element}
}

// Encode returns the stored form of e, including the trailing newline.
func Encode(e Entry) string {
	if e.Checked {
		return CheckedMarker + e.Element + "\n"
	}
	return UncheckedMarker + e.Element + "\n"
}

// Decode parses a stored line (without its terminator).
// The first MarkerLen bytes are the marker; only CheckedMarker means done,
// any other prefix is read as open. Everything after the marker is the element.
func Decode(line string) (Entry, error) {
	if len(line) < MarkerLen || !utf8.ValidString(line[:MarkerLen]) {
		return Entry{}, ErrMalformedLine
	}
	return Entry{
		Element: line[MarkerLen:],
		Checked: line[:MarkerLen] == CheckedMarker,
	}, nil
}

// Toggle returns e with its completion flag flipped.
func (e Entry) Toggle() Entry {
	e.Checked = !e.Checked
	return e
}

// Replace returns e with a new element, keeping the completion flag.
func (e Entry) Replace(element string) Entry {
	e.Element = element
	return e
}
