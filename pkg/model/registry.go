package model

import (
	"sort"
	"sync"

	"github.com/leapstack-labs/leapvars/pkg/core"
)

// Factory builds a model on first use.
type Factory func() (core.Model, error)

type entry struct {
	once    sync.Once
	factory Factory
	model   core.Model
	err     error
}

func (e *entry) get() (core.Model, error) {
	e.once.Do(func() {
		e.model, e.err = e.factory()
	})
	return e.model, e.err
}

// Registry maps identifiers to singleton models. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

var _ core.ModelResolver = (*Registry)(nil)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Register binds id to an existing instance, replacing any previous binding.
func (r *Registry) Register(id string, m core.Model) {
	r.RegisterFunc(id, func() (core.Model, error) { return m, nil })
}

// RegisterFunc binds id to a factory that is called at most once.
func (r *Registry) RegisterFunc(id string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = &entry{factory: f}
}

// ResolveModel returns the singleton for id.
func (r *Registry) ResolveModel(id string) (core.Model, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return nil, &core.NotFoundError{Model: id}
	}
	return e.get()
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[id]
	return ok
}

// IDs returns all registered identifiers (sorted).
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
