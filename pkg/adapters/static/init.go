// Package static provides the static table adapter for leapvars.
//
// Variables are a fixed, declared list with optional defaults and
// fillability flags. Import this package with a blank identifier to register
// the adapter under the "static" type:
//
//	import _ "github.com/leapstack-labs/leapvars/pkg/adapters/static"
package static

import (
	"github.com/leapstack-labs/leapvars/pkg/adapter"
)

func init() {
	adapter.Register(string(adapter.KindStatic), func(raw map[string]any, opts adapter.Options) (adapter.Adapter, error) {
		cfg, err := ParseConfig(raw)
		if err != nil {
			return nil, err
		}
		return New(cfg, opts.Logger)
	})
}
