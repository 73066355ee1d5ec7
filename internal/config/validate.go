package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/leapvars/pkg/core"
	"github.com/leapstack-labs/leapvars/pkg/resolver"
)

// Validate checks the settings that are not validated by the resolver itself.
func (c *Config) Validate() error {
	switch c.Output {
	case OutputAuto, OutputText, OutputJSON, OutputMarkdown:
	default:
		return &core.ConfigurationError{
			Component: "config",
			Key:       "output",
			Message:   fmt.Sprintf("unknown output format %q (want auto, text, json or markdown)", c.Output),
		}
	}

	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := resolver.ParseCollisionPolicy(c.Collision); err != nil {
		return err
	}
	return nil
}

// Level returns the configured slog level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, &core.ConfigurationError{Component: "config", Key: "log_level", Message: err.Error()}
	}
	return l, nil
}
