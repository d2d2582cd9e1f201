package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a list or task does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous is returned when a list name matches more than one list.
	ErrAmbiguous = errors.New("ambiguous")
)

// MatchList picks the single list whose title equals name,
// ignoring case and surrounding whitespace.
func MatchList(lists []TaskList, name string) (TaskList, error) {
	name = strings.TrimSpace(name)
	nameLower := strings.ToLower(name)

	var matches []TaskList
	for _, list := range lists {
		if strings.ToLower(strings.TrimSpace(list.Title)) == nameLower {
			matches = append(matches, list)
		}
	}

	switch len(matches) {
	case 0:
		return TaskList{}, fmt.Errorf("list %w: %s", ErrNotFound, name)
	case 1:
		return matches[0], nil
	default:
		return TaskList{}, fmt.Errorf("%w list name: %s", ErrAmbiguous, name)
	}
}
