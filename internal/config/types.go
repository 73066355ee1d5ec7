// Package config loads the leapvars project configuration.
//
// Values are layered, lowest to highest: built-in defaults, leapvars.yaml,
// LEAPVARS_* environment variables, then explicitly set CLI flags.
package config

import (
	"github.com/leapstack-labs/leapvars/pkg/resolver"
)

// Config holds the project configuration.
type Config struct {
	StatePath string `koanf:"state_path"`
	MacrosDir string `koanf:"macros_dir"`
	LogLevel  string `koanf:"log_level"`
	Output    string `koanf:"output"`

	// Collision is the resolver collision policy: first or error.
	Collision string `koanf:"collision"`

	// Models are named attribute maps usable by attribute adapters.
	Models map[string]ModelConfig `koanf:"models"`

	// Adapters is the ordered adapter chain.
	Adapters []resolver.Entry `koanf:"adapters"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

// ModelConfig declares a map-backed model.
type ModelConfig struct {
	Attributes map[string]any    `koanf:"attributes"`
	Labels     map[string]string `koanf:"labels"`
}
