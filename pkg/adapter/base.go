package adapter

import (
	"log/slog"
	"strings"

	"github.com/leapstack-labs/leapvars/pkg/core"
)

// Replacement is one resolved key/value pair ready for substitution.
type Replacement struct {
	Key   string
	Value string
}

// Substitute replaces every literal "{key}" in text with its value.
// The text is scanned once, left to right, so substituted values are never
// re-scanned for further placeholders.
func Substitute(text string, replacements []Replacement) string {
	if len(replacements) == 0 || !strings.Contains(text, "{") {
		return text
	}
	oldnew := make([]string, 0, len(replacements)*2)
	for _, r := range replacements {
		oldnew = append(oldnew, core.Placeholder(r.Key), r.Value)
	}
	return strings.NewReplacer(oldnew...).Replace(text)
}

// Fallback returns the value substituted for a variable with neither an
// override nor a default, according to mode.
func Fallback(mode core.Mode, key string) (string, error) {
	switch mode {
	case core.ModeStrict:
		return "", &core.UnresolvedVariableError{Key: key}
	case core.ModeKey:
		return core.Placeholder(key), nil
	default:
		return "", nil
	}
}

// Find returns the first variable whose flattened key equals key.
func Find(vars []core.Variable, key string) (core.Variable, bool) {
	for _, v := range vars {
		if v.Key == key {
			return v, true
		}
	}
	return core.Variable{}, false
}

// Directive returns d, or an empty map when d is nil.
func Directive(d map[string]any) map[string]any {
	if d == nil {
		return map[string]any{}
	}
	return d
}

// LoggerOrDiscard returns l, or a logger that drops everything when l is nil.
func LoggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
