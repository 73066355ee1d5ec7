// Package adapter provides the variable-source contract shared by every
// leapvars adapter, the adapter factory registry, and the helpers concrete
// adapters build on.
//
// This package contains the public contract that all adapters must implement.
// Concrete adapter implementations are in pkg/adapters/ subdirectories.
package adapter

import (
	"github.com/leapstack-labs/leapvars/pkg/core"
)

// Kind tags an adapter with its variant so callers can find adapters by
// capability without type switches.
type Kind string

// Built-in adapter kinds.
const (
	KindStatic    Kind = "static"
	KindComputed  Kind = "computed"
	KindAttribute Kind = "attribute"
)

// Adapter defines the interface that all variable sources must implement.
type Adapter interface {
	// Kind returns the adapter variant.
	Kind() Kind

	// Variables enumerates every declared variable with flattened keys and
	// defaults resolved to their current state. It never mutates the adapter.
	Variables() ([]core.Variable, error)

	// HasVariable reports whether some declared variable has the flattened key.
	HasVariable(key string) (bool, error)

	// Variable returns the first declared variable with the flattened key.
	Variable(key string) (core.Variable, bool, error)

	// Inject overwrites declarations matched by flattened key.
	// Unmatched keys are ignored.
	Inject(values core.Values)

	// Interpret replaces every "{key}" the adapter declares in text.
	// Placeholders the adapter does not declare are left untouched.
	Interpret(text string, values core.Values) (string, error)
}

// Function is a named function the computed adapter can invoke from a
// variable's default value ("literal:NAME:arg1,arg2").
type Function struct {
	Key   string
	Label string
	Func  func(args []string) (string, error)
}
