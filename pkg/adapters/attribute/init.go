// Package attribute provides the attribute-derived adapter for leapvars.
//
// Each declaration binds a key to a model and a list of attribute names.
// Every attribute becomes one variable keyed "<key><sep><attribute>".
// Models may be declared by identifier and resolved through a
// core.ModelResolver, or injected as instances.
//
//	import _ "github.com/leapstack-labs/leapvars/pkg/adapters/attribute"
package attribute

import (
	"github.com/leapstack-labs/leapvars/pkg/adapter"
)

func init() {
	adapter.Register(string(adapter.KindAttribute), func(raw map[string]any, opts adapter.Options) (adapter.Adapter, error) {
		cfg, err := ParseConfig(raw)
		if err != nil {
			return nil, err
		}
		return New(cfg, WithLogger(opts.Logger), WithModels(opts.Models))
	})
}
