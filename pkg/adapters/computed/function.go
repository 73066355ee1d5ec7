package computed

import (
	"strings"
	"time"

	"github.com/leapstack-labs/leapvars/pkg/adapter"
)

const (
	// CurrentTime is the key of the built-in timestamp function.
	CurrentTime = "CURRENT_TIME"

	// DefaultTimeFormat is used by CURRENT_TIME when called without arguments.
	DefaultTimeFormat = "Y/m/d H:i"

	invocationSep = ":"
	argSep        = ","
)

// Invocation is a decoded "<literal>:<name>:<args>" value.
type Invocation struct {
	Literal string
	Name    string
	Args    []string
}

// ParseInvocation decodes value. It reports false when value does not carry
// a function name, in which case the value is a plain literal.
//
// The value is split on the first two ':' only, so arguments may contain ':'
// themselves (e.g. "x:CURRENT_TIME:H:i").
func ParseInvocation(value string) (Invocation, bool) {
	parts := strings.SplitN(value, invocationSep, 3)
	if len(parts) < 2 || parts[1] == "" {
		return Invocation{}, false
	}

	inv := Invocation{Literal: parts[0], Name: parts[1]}
	if len(parts) == 3 && parts[2] != "" {
		inv.Args = strings.Split(parts[2], argSep)
	}
	return inv, true
}

// Encode renders the zero-argument invocation of name.
func Encode(name string) string {
	return invocationSep + name + invocationSep
}

func builtins(now func() time.Time) []adapter.Function {
	return []adapter.Function{
		{
			Key:   CurrentTime,
			Label: "Current Time",
			Func: func(args []string) (string, error) {
				format := DefaultTimeFormat
				// the args are rejoined so a format may contain ','
				if len(args) > 0 && args[0] != "" {
					format = strings.Join(args, argSep)
				}
				return FormatDate(now(), format), nil
			},
		},
	}
}
