package attribute

import (
	"github.com/leapstack-labs/leapvars/pkg/adapter"
	"github.com/leapstack-labs/leapvars/pkg/core"
)

// Declaration binds a key to attributes read off a model.
type Declaration struct {
	Key   core.KeyPath `mapstructure:"key"`
	Label string       `mapstructure:"label"`

	// Model is an identifier in config files, or an instance when built in code.
	Model core.ModelRef `mapstructure:"model"`

	Attributes []string `mapstructure:"attributes"`

	// Labels overrides the display label per attribute.
	Labels map[string]string `mapstructure:"labels"`

	// Fillable is a boolean or a list of fillable attribute names.
	// Unset means not fillable.
	Fillable adapter.Fillable `mapstructure:"fillable"`

	Directive map[string]any `mapstructure:"directive"`
}

// Config holds the attribute adapter configuration.
type Config struct {
	Separator string        `mapstructure:"separator"`
	Mode      core.Mode     `mapstructure:"mode"`
	Variables []Declaration `mapstructure:"variables"`
}

// ParseConfig decodes a raw configuration map.
func ParseConfig(raw map[string]any) (Config, error) {
	var cfg Config
	if err := adapter.Decode(string(adapter.KindAttribute), raw, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
