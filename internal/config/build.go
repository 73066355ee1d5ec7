package config

import (
	"log/slog"

	"github.com/leapstack-labs/leapvars/pkg/adapter"
	"github.com/leapstack-labs/leapvars/pkg/core"
	"github.com/leapstack-labs/leapvars/pkg/model"
	"github.com/leapstack-labs/leapvars/pkg/resolver"
)

// ModelRegistry builds a registry holding every configured model.
func (c *Config) ModelRegistry() *model.Registry {
	r := model.NewRegistry()
	for id, m := range c.Models {
		r.Register(id, model.NewMap(m.Attributes, m.Labels))
	}
	return r
}

// Resolver builds the configured adapter chain. Model identifiers are
// resolved against the configured models before returning.
func (c *Config) Resolver(logger *slog.Logger, fns ...adapter.Function) (*resolver.Resolver, error) {
	if len(c.Adapters) == 0 {
		return nil, &core.ConfigurationError{
			Component: "config",
			Key:       "adapters",
			Message:   "no adapters configured\nHint: add an adapters list to " + ConfigFileName,
		}
	}

	policy, err := resolver.ParseCollisionPolicy(c.Collision)
	if err != nil {
		return nil, err
	}

	r, err := resolver.New(c.Adapters,
		resolver.WithLogger(logger),
		resolver.WithModels(c.ModelRegistry()),
		resolver.WithFunctions(fns...),
		resolver.WithCollisionPolicy(policy),
	)
	if err != nil {
		return nil, err
	}
	if err := r.ResolveModels(); err != nil {
		return nil, err
	}
	return r, nil
}
