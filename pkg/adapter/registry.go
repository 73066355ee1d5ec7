package adapter

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/leapstack-labs/leapvars/pkg/core"
)

// Options carries the collaborators an adapter factory may need.
type Options struct {
	// Logger receives debug output. nil uses a discard logger.
	Logger *slog.Logger

	// Models resolves model identifiers for the attribute adapter.
	Models core.ModelResolver

	// Functions are extra functions for the computed adapter.
	Functions []Function
}

// Factory builds an adapter from its raw configuration map.
type Factory func(cfg map[string]any, opts Options) (Adapter, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register adds an adapter factory to the registry.
// Called by adapter implementations in their init() functions.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Get retrieves an adapter factory by name.
func Get(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// New creates a new adapter instance of the named type.
func New(name string, cfg map[string]any, opts Options) (Adapter, error) {
	if name == "" {
		return nil, &core.ConfigurationError{Component: "adapter", Message: "adapter type not specified"}
	}

	factory, ok := Get(name)
	if !ok {
		return nil, &UnknownAdapterError{
			Type:      name,
			Available: ListAdapters(),
		}
	}
	return factory(cfg, opts)
}

// ListAdapters returns all registered adapter names (sorted).
func ListAdapters() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if an adapter type is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[name]
	return ok
}

// UnknownAdapterError is returned when an unknown adapter type is requested.
type UnknownAdapterError struct {
	Type      string
	Available []string
}

func (e *UnknownAdapterError) Error() string {
	return fmt.Sprintf("unknown adapter type %q\nAvailable adapters: %v\nHint: Check the adapters[].type entries in leapvars.yaml", e.Type, e.Available)
}

// Is matches core.ErrConfiguration.
func (e *UnknownAdapterError) Is(target error) bool { return target == core.ErrConfiguration }
