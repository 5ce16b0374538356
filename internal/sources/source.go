// Package sources defines the common interface for external table
// sources. A source pulls one table out of an engine with a read-only
// extraction query so it can be joined locally.
//
// Sources are stateless, replaceable, thin. No silent retries, no
// hidden fallbacks: a source that cannot deliver its table returns an
// error and the caller decides.
package sources

import (
	"context"

	"github.com/bifrost-labs/bifrost/internal/relation"
)

// Source is the interface all table sources implement.
type Source interface {
	// Name returns the unique name of this source engine.
	Name() string

	// FetchTable runs a read-only extraction query and materialises
	// the result as a table. Must propagate errors explicitly.
	FetchTable(ctx context.Context, query, tableName string) (*relation.Table, error)

	// Ping checks if the engine is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the source.
	Close() error
}

// Registry manages table sources by engine name.
type Registry struct {
	sources map[string]Source
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[string]Source),
	}
}

// Register adds a source to the registry.
func (r *Registry) Register(source Source) {
	r.sources[source.Name()] = source
}

// Get returns a source by engine name.
func (r *Registry) Get(name string) (Source, bool) {
	source, ok := r.sources[name]
	return source, ok
}

// List returns the registered engine names.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	return names
}

// Close closes every registered source, returning the first error.
func (r *Registry) Close() error {
	var first error
	for _, source := range r.sources {
		if err := source.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
