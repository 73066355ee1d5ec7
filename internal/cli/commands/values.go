package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/leapstack-labs/leapvars/pkg/core"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// valueFlags collects override values from the command line.
type valueFlags struct {
	sets    []string
	files   []string
	injects []string
}

func (f *valueFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.sets, "set", nil, "Override value as key=value (repeatable)")
	cmd.Flags().StringArrayVar(&f.files, "values", nil, "YAML file of override values (repeatable)")
	cmd.Flags().StringArrayVar(&f.injects, "inject", nil, "Inject a default as adapter:key=value (repeatable)")
}

// values merges the values files in order, then the --set pairs.
// Nested maps are flattened with ".".
func (f *valueFlags) values() (core.Values, error) {
	out := core.Values{}
	for _, path := range f.files {
		data, err := os.ReadFile(path) //nolint:gosec // G304: values path from user
		if err != nil {
			return nil, fmt.Errorf("failed to read values file: %w", err)
		}
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("invalid values file %s: %w", path, err)
		}
		flatten("", raw, out)
	}
	for _, pair := range f.sets {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: expected key=value", pair)
		}
		out[key] = value
	}
	return out, nil
}

// injections groups the --inject pairs by adapter ID.
func (f *valueFlags) injections() (map[string]core.Values, error) {
	out := make(map[string]core.Values)
	for _, arg := range f.injects {
		id, pair, ok := strings.Cut(arg, ":")
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid --inject %q: expected adapter:key=value", arg)
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --inject %q: expected adapter:key=value", arg)
		}
		if out[id] == nil {
			out[id] = core.Values{}
		}
		out[id][key] = value
	}
	return out, nil
}

func flatten(prefix string, in map[string]any, out core.Values) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + core.DefaultSeparator + k
		}
		if nested, ok := v.(map[string]any); ok {
			flatten(key, nested, out)
			continue
		}
		out[key] = v
	}
}
