package macro

import (
	"fmt"
	"sort"

	"github.com/leapstack-labs/leapvars/pkg/adapter"
	"go.starlark.net/starlark"
)

// Functions turns every exported callable of the modules into a computed
// function keyed "<namespace>.<name>". Labels come from docstrings.
func Functions(modules []*LoadedModule) []adapter.Function {
	var fns []adapter.Function
	for _, m := range modules {
		names := make([]string, 0, len(m.Exports))
		for name, v := range m.Exports {
			if _, ok := v.(starlark.Callable); ok {
				names = append(names, name)
			}
		}
		sort.Strings(names)

		for _, name := range names {
			key := m.Namespace + "." + name
			label := m.Docs[name]
			if label == "" {
				label = key
			}
			fns = append(fns, adapter.Function{
				Key:   key,
				Label: label,
				Func:  call(key, m.Exports[name].(starlark.Callable)),
			})
		}
	}
	return fns
}

// call adapts a Starlark callable to a computed function. Each call runs on
// its own thread. String results are returned as-is; other values use their
// Starlark representation.
func call(key string, fn starlark.Callable) func(args []string) (string, error) {
	return func(args []string) (string, error) {
		thread := &starlark.Thread{Name: "call:" + key}

		sargs := make(starlark.Tuple, len(args))
		for i, a := range args {
			sargs[i] = starlark.String(a)
		}

		v, err := starlark.Call(thread, fn, sargs, nil)
		if err != nil {
			return "", fmt.Errorf("macro %s: %w", key, err)
		}
		switch v := v.(type) {
		case starlark.String:
			return v.GoString(), nil
		case starlark.NoneType:
			return "", nil
		default:
			return v.String(), nil
		}
	}
}
