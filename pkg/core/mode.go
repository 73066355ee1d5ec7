package core

import "strings"

// =============================================================================
// Mode
// =============================================================================

// Mode controls what an adapter substitutes when a variable has neither an
// override value nor a usable default.
type Mode int

// Resolution modes.
const (
	// ModeEmpty resolves absent values to the empty string.
	ModeEmpty Mode = iota
	// ModeStrict fails with an UnresolvedVariableError.
	ModeStrict
	// ModeKey leaves the placeholder text "{key}" in place so a later
	// adapter (or a later pass) can still resolve it.
	ModeKey
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeEmpty:
		return "empty"
	case ModeStrict:
		return "strict"
	case ModeKey:
		return "key"
	default:
		return "unknown"
	}
}

// ParseMode converts a string to a Mode value.
// The empty string maps to ModeEmpty.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "empty":
		return ModeEmpty, nil
	case "strict":
		return ModeStrict, nil
	case "key":
		return ModeKey, nil
	default:
		return ModeEmpty, &ConfigurationError{
			Component: "mode",
			Message:   "unknown resolution mode " + `"` + s + `" (expected strict, empty or key)`,
		}
	}
}
