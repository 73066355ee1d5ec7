package core

import (
	"errors"
	"fmt"
)

// Error kinds. Every typed error below matches exactly one of these with errors.Is.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrState         = errors.New("invalid state")
	ErrUnresolved    = errors.New("unresolved variable")
)

// ConfigurationError reports an invalid adapter, resolver or declaration setup.
type ConfigurationError struct {
	Component string // adapter type, "resolver", "mode", ...
	Key       string // declaration key, if any
	Message   string
}

func (e *ConfigurationError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s: %s: %s", e.Component, e.Key, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Component, e.Message)
}

// Is matches ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// NotFoundError reports a model identifier or attribute that does not exist.
type NotFoundError struct {
	Model     string
	Attribute string
}

func (e *NotFoundError) Error() string {
	if e.Attribute == "" {
		return fmt.Sprintf("model %q not found", e.Model)
	}
	return fmt.Sprintf("attribute %q not found on model %q", e.Attribute, e.Model)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// StateError reports an operation attempted on a declaration that is not ready
// for it, such as substituting from an unresolved model reference.
type StateError struct {
	Key     string
	Message string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Key, e.Message)
}

// Is matches ErrState.
func (e *StateError) Is(target error) bool { return target == ErrState }

// UnresolvedVariableError is raised in strict mode when a variable has neither
// an override value nor a default.
type UnresolvedVariableError struct {
	Key string
}

func (e *UnresolvedVariableError) Error() string {
	return fmt.Sprintf("variable %q has no value nor default value", e.Key)
}

// Is matches ErrUnresolved.
func (e *UnresolvedVariableError) Is(target error) bool { return target == ErrUnresolved }
