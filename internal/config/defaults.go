package config

// Default configuration values.
const (
	ConfigFileName    = "leapvars.yaml"
	ConfigFileNameAlt = "leapvars.yml"
	EnvPrefix         = "LEAPVARS_"

	DefaultStateFile = ".leapvars/state.db"
	DefaultMacrosDir = "macros"
	DefaultLogLevel  = "info"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultCollision = "first"
)

// Output formats accepted by the output setting.
const (
	OutputAuto     = "auto"
	OutputText     = "text"
	OutputJSON     = "json"
	OutputMarkdown = "markdown"
)

func defaults() map[string]any {
	return map[string]any{
		"state_path": DefaultStateFile,
		"macros_dir": DefaultMacrosDir,
		"log_level":  DefaultLogLevel,
		"output":     DefaultOutput,
		"collision":  DefaultCollision,
	}
}
