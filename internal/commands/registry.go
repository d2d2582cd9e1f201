package commands

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Registry maps command names and aliases to commands.
type Registry struct {
	mu    sync.RWMutex
	names map[string]Command // primary names only
	cmds  map[string]Command // names and aliases
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		names: make(map[string]Command),
		cmds:  make(map[string]Command),
	}
}

// Register adds c under its name and aliases.
// Nothing is added if any of them is taken.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := append([]string{c.Name()}, c.Aliases()...)
	for _, key := range keys {
		if _, exists := r.cmds[key]; exists {
			return fmt.Errorf("command already registered: %s", key)
		}
	}

	r.names[c.Name()] = c
	for _, key := range keys {
		r.cmds[key] = c
	}
	return nil
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.cmds[name]
	return cmd, ok
}

// All returns each command once, sorted by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Command, 0, len(r.names))
	for _, name := range slices.Sorted(maps.Keys(r.names)) {
		result = append(result, r.names[name])
	}
	return result
}

// DefaultRegistry holds every command registered from init.
var DefaultRegistry = NewRegistry()

// Register adds c to DefaultRegistry and panics on a duplicate.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
