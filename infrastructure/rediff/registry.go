// Package rediff hosts the pluggable re-diff collaborators the engine
// calls to regenerate clean hunks for residual regions.
package rediff

import (
	"fmt"
	"sort"

	"github.com/rios0rios0/effdiff/domain"
)

// Factory builds a Differ implementation.
type Factory func() domain.Differ

// Registry manages all registered differ implementations by name.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty differ registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a differ factory under its name.
func (r *Registry) Register(name string, factory Factory) {
	r.factories[name] = factory
}

// Get builds the differ registered under the given name.
func (r *Registry) Get(name string) (domain.Differ, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown differ %q (available: %v)", name, r.Names())
	}
	return factory(), nil
}

// Names returns the registered differ names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
