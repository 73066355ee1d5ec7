package core

import (
	"fmt"
	"strings"
)

// DefaultSeparator joins key path segments into a flattened key.
const DefaultSeparator = "."

// Variable is the unit every adapter enumerates.
type Variable struct {
	// Key is the flattened, separator-joined identifier used in placeholders.
	Key string `json:"key"`

	// Label is the human-readable display name.
	Label string `json:"label"`

	// DefaultValue is used when no override is supplied. Static and computed
	// adapters store strings here; the attribute adapter stores the model's
	// live attribute value, which may be of any type.
	DefaultValue any `json:"defaultValue"`

	// Fillable reports whether end users may override the value.
	Fillable bool `json:"fillable"`

	// Directive carries opaque metadata (e.g. input widget hints).
	Directive map[string]any `json:"directive"`
}

// Placeholder returns the "{key}" token for this variable.
func (v Variable) Placeholder() string {
	return Placeholder(v.Key)
}

// Placeholder wraps a key in braces.
func Placeholder(key string) string {
	return "{" + key + "}"
}

// Values is a bag of override values keyed by flattened key.
type Values map[string]any

// Lookup returns the value for key. A key holding nil counts as absent.
func (v Values) Lookup(key string) (any, bool) {
	if v == nil {
		return nil, false
	}
	val, ok := v[key]
	if !ok || val == nil {
		return nil, false
	}
	return val, true
}

// KeyPath is a variable key expressed as ordered segments.
// A plain string key is a single-segment path.
type KeyPath []string

// Flatten joins the segments with sep. An empty sep uses DefaultSeparator.
func (p KeyPath) Flatten(sep string) string {
	if sep == "" {
		sep = DefaultSeparator
	}
	return strings.Join(p, sep)
}

// IsZero reports whether the path carries no usable segment.
func (p KeyPath) IsZero() bool {
	for _, s := range p {
		if s != "" {
			return false
		}
	}
	return true
}

// Stringify coerces a value to the string substituted into a template.
// It returns false for nil.
func Stringify(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case []byte:
		return string(val), true
	case fmt.Stringer:
		return val.String(), true
	default:
		return fmt.Sprint(val), true
	}
}
