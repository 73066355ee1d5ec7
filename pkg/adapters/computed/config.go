package computed

import (
	"github.com/leapstack-labs/leapvars/pkg/adapter"
	"github.com/leapstack-labs/leapvars/pkg/core"
)

// Declaration is one declared variable. DefaultValue is either a literal or
// an encoded function invocation.
type Declaration struct {
	Key          core.KeyPath   `mapstructure:"key"`
	Label        string         `mapstructure:"label"`
	DefaultValue string         `mapstructure:"defaultValue"`
	Fillable     bool           `mapstructure:"fillable"`
	Directive    map[string]any `mapstructure:"directive"`
}

// Config holds the computed adapter configuration.
type Config struct {
	Separator string `mapstructure:"separator"`

	// Location is the IANA time zone used by CURRENT_TIME. Empty means UTC.
	Location string `mapstructure:"location"`

	Variables []Declaration `mapstructure:"variables"`
}

// ParseConfig decodes a raw configuration map. A nil map is an empty config.
func ParseConfig(raw map[string]any) (Config, error) {
	var cfg Config
	if raw == nil {
		return cfg, nil
	}
	if err := adapter.Decode(string(adapter.KindComputed), raw, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
