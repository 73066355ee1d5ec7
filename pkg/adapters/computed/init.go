// Package computed provides the computed adapter for leapvars.
//
// A declared value may encode a function call as
// "<literal>:<FUNCTION>:<arg1>,<arg2>". When FUNCTION is registered the
// variable resolves to the function's result; otherwise the value is used
// literally. The built-in CURRENT_TIME function formats the current time with
// a PHP-style date format.
//
// Import this package with a blank identifier to register the adapter under
// the "computed" type:
//
//	import _ "github.com/leapstack-labs/leapvars/pkg/adapters/computed"
package computed

import (
	"github.com/leapstack-labs/leapvars/pkg/adapter"
)

func init() {
	adapter.Register(string(adapter.KindComputed), func(raw map[string]any, opts adapter.Options) (adapter.Adapter, error) {
		cfg, err := ParseConfig(raw)
		if err != nil {
			return nil, err
		}
		return New(cfg, WithLogger(opts.Logger), WithFunctions(opts.Functions...))
	})
}
