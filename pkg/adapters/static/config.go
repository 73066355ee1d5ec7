package static

import (
	"github.com/leapstack-labs/leapvars/pkg/adapter"
	"github.com/leapstack-labs/leapvars/pkg/core"
)

// Declaration is one declared variable.
type Declaration struct {
	// Key is a plain key or an ordered list of segments joined by the separator.
	Key core.KeyPath `mapstructure:"key"`

	Label string `mapstructure:"label"`

	// DefaultValue is used when no override is supplied. nil means "no default".
	DefaultValue any `mapstructure:"defaultValue"`

	// Fillable defaults to true.
	Fillable *bool `mapstructure:"fillable"`

	// Directive is passed through untouched (e.g. input widget hints).
	Directive map[string]any `mapstructure:"directive"`
}

// Config holds the static adapter configuration.
// Parsed from the adapter's config map using mapstructure.
type Config struct {
	Separator string        `mapstructure:"separator"`
	Mode      core.Mode     `mapstructure:"mode"`
	Variables []Declaration `mapstructure:"variables"`
}

// ParseConfig decodes a raw configuration map.
func ParseConfig(raw map[string]any) (Config, error) {
	var cfg Config
	if err := adapter.Decode(string(adapter.KindStatic), raw, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
