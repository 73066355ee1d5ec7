// Package resolver chains adapters into a single substitution pass.
//
// Adapters run in registration order. Each one replaces only the
// placeholders it declares, so the first adapter declaring a key wins.
package resolver

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leapvars/pkg/adapter"
	"github.com/leapstack-labs/leapvars/pkg/core"

	// Built-in adapters register themselves with pkg/adapter.
	_ "github.com/leapstack-labs/leapvars/pkg/adapters/attribute"
	_ "github.com/leapstack-labs/leapvars/pkg/adapters/computed"
	_ "github.com/leapstack-labs/leapvars/pkg/adapters/static"
)

// CollisionPolicy decides what happens when two adapters declare the same key.
type CollisionPolicy int

const (
	// CollisionFirstWins keeps every record; lookups return the first.
	CollisionFirstWins CollisionPolicy = iota
	// CollisionError makes Variables fail on a duplicated key.
	CollisionError
)

// ParseCollisionPolicy parses "first" or "error". Empty means first.
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch s {
	case "", "first":
		return CollisionFirstWins, nil
	case "error":
		return CollisionError, nil
	default:
		return 0, &core.ConfigurationError{
			Component: "resolver",
			Key:       "collision",
			Message:   fmt.Sprintf("unknown collision policy %q (want first or error)", s),
		}
	}
}

// Entry configures one adapter of the chain.
type Entry struct {
	// ID identifies the adapter for Inject. It must be unique.
	ID string `koanf:"id" yaml:"id"`

	// Type is the registered adapter type. Empty means ID.
	Type string `koanf:"type" yaml:"type"`

	Config map[string]any `koanf:"config" yaml:"config"`
}

// Named pairs an adapter instance with its identifier.
type Named struct {
	ID      string
	Adapter adapter.Adapter
}

// Resolver holds an ordered, fixed list of adapters.
type Resolver struct {
	adapters []Named
	policy   CollisionPolicy
	opts     adapter.Options
	logger   *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger passed to the resolver and its adapters.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) { r.opts.Logger = l }
}

// WithModels sets the model resolver used by attribute adapters.
func WithModels(m core.ModelResolver) Option {
	return func(r *Resolver) { r.opts.Models = m }
}

// WithFunctions registers extra functions for computed adapters.
func WithFunctions(fns ...adapter.Function) Option {
	return func(r *Resolver) { r.opts.Functions = append(r.opts.Functions, fns...) }
}

// WithCollisionPolicy sets how duplicate keys across adapters are handled.
func WithCollisionPolicy(p CollisionPolicy) Option {
	return func(r *Resolver) { r.policy = p }
}

// New builds one adapter per entry, in order.
func New(entries []Entry, opts ...Option) (*Resolver, error) {
	if len(entries) == 0 {
		return nil, errNoAdapters()
	}

	r := newResolver(opts)
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			return nil, &core.ConfigurationError{Component: "resolver", Message: "adapter entry has no id"}
		}
		if seen[e.ID] {
			return nil, &core.ConfigurationError{Component: "resolver", Key: e.ID, Message: "duplicate adapter id"}
		}
		seen[e.ID] = true

		typ := e.Type
		if typ == "" {
			typ = e.ID
		}
		a, err := adapter.New(typ, e.Config, r.opts)
		if err != nil {
			return nil, fmt.Errorf("adapter %q: %w", e.ID, err)
		}
		r.logger.Debug("adapter created", "id", e.ID, "type", typ)
		r.adapters = append(r.adapters, Named{ID: e.ID, Adapter: a})
	}
	return r, nil
}

// FromAdapters builds a resolver from existing adapter instances.
func FromAdapters(adapters []Named, opts ...Option) (*Resolver, error) {
	if len(adapters) == 0 {
		return nil, errNoAdapters()
	}
	r := newResolver(opts)
	r.adapters = append(r.adapters, adapters...)
	return r, nil
}

func newResolver(opts []Option) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = adapter.LoggerOrDiscard(r.opts.Logger)
	return r
}

func errNoAdapters() error {
	return &core.ConfigurationError{Component: "resolver", Message: "at least one adapter is required"}
}

// Interpret folds text through every adapter in order.
func (r *Resolver) Interpret(text string, values core.Values) (string, error) {
	out := text
	for _, n := range r.adapters {
		var err error
		if out, err = n.Adapter.Interpret(out, values); err != nil {
			return "", fmt.Errorf("adapter %q: %w", n.ID, err)
		}
	}
	return out, nil
}

// Variables concatenates every adapter's variables in order.
func (r *Resolver) Variables() ([]core.Variable, error) {
	var (
		all   []core.Variable
		owner map[string]string
	)
	if r.policy == CollisionError {
		owner = make(map[string]string)
	}

	for _, n := range r.adapters {
		vars, err := n.Adapter.Variables()
		if err != nil {
			return nil, fmt.Errorf("adapter %q: %w", n.ID, err)
		}
		if owner != nil {
			for _, v := range vars {
				if prev, dup := owner[v.Key]; dup {
					return nil, &core.ConfigurationError{
						Component: "resolver",
						Key:       v.Key,
						Message:   fmt.Sprintf("declared by both %q and %q", prev, n.ID),
					}
				}
				owner[v.Key] = n.ID
			}
		}
		all = append(all, vars...)
	}
	return all, nil
}

// HasVariable reports whether any adapter declares key.
func (r *Resolver) HasVariable(key string) (bool, error) {
	_, ok, err := r.Variable(key)
	return ok, err
}

// Variable returns the first variable declared under key.
func (r *Resolver) Variable(key string) (core.Variable, bool, error) {
	vars, err := r.Variables()
	if err != nil {
		return core.Variable{}, false, err
	}
	v, ok := adapter.Find(vars, key)
	return v, ok, nil
}

// Inject forwards each value map to the adapter with that ID.
func (r *Resolver) Inject(values map[string]core.Values) {
	for id, vals := range values {
		a, ok := r.AdapterByID(id)
		if !ok {
			r.logger.Debug("inject: no such adapter", "id", id)
			continue
		}
		a.Inject(vals)
	}
}

// HasAdapter reports whether an adapter of kind is registered.
func (r *Resolver) HasAdapter(kind adapter.Kind) bool {
	_, ok := r.Adapter(kind)
	return ok
}

// Adapter returns the first adapter of kind.
func (r *Resolver) Adapter(kind adapter.Kind) (adapter.Adapter, bool) {
	for _, n := range r.adapters {
		if n.Adapter.Kind() == kind {
			return n.Adapter, true
		}
	}
	return nil, false
}

// AdapterByID returns the adapter registered under id.
func (r *Resolver) AdapterByID(id string) (adapter.Adapter, bool) {
	for _, n := range r.adapters {
		if n.ID == id {
			return n.Adapter, true
		}
	}
	return nil, false
}

// IDs returns the adapter identifiers in order.
func (r *Resolver) IDs() []string {
	ids := make([]string, len(r.adapters))
	for i, n := range r.adapters {
		ids[i] = n.ID
	}
	return ids
}

// modelBinder is implemented by adapters that hold model identifiers.
type modelBinder interface {
	ResolveModels() error
}

// ResolveModels resolves model identifiers on every adapter that holds them.
func (r *Resolver) ResolveModels() error {
	for _, n := range r.adapters {
		if m, ok := n.Adapter.(modelBinder); ok {
			if err := m.ResolveModels(); err != nil {
				return fmt.Errorf("adapter %q: %w", n.ID, err)
			}
		}
	}
	return nil
}
