package adapter

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/leapstack-labs/leapvars/pkg/core"
)

// Fillable is a declaration-level fillability rule. It is either a boolean
// or the list of attribute names that are fillable.
// Parsed from adapter config as `fillable: true` or `fillable: [a, b]`.
type Fillable struct {
	set        bool
	value      bool
	attributes []string
	isList     bool
}

// FillableBool returns a boolean rule.
func FillableBool(b bool) Fillable {
	return Fillable{set: true, value: b}
}

// FillableAttributes returns a rule that only marks the named attributes fillable.
func FillableAttributes(names ...string) Fillable {
	return Fillable{set: true, isList: true, attributes: names}
}

// IsSet reports whether the rule was given explicitly.
func (f Fillable) IsSet() bool { return f.set }

// Bool resolves the rule for a variable without attributes.
// A list rule is true when it names at least one attribute.
func (f Fillable) Bool(def bool) bool {
	switch {
	case !f.set:
		return def
	case f.isList:
		return len(f.attributes) > 0
	default:
		return f.value
	}
}

// For resolves the rule for a single attribute.
func (f Fillable) For(attribute string, def bool) bool {
	if !f.set {
		return def
	}
	if !f.isList {
		return f.value
	}
	for _, a := range f.attributes {
		if a == attribute {
			return true
		}
	}
	return false
}

var (
	keyPathType  = reflect.TypeOf(core.KeyPath{})
	modeType     = reflect.TypeOf(core.Mode(0))
	fillableType = reflect.TypeOf(Fillable{})
	modelRefType = reflect.TypeOf(core.ModelRef{})
)

// keyPathHook lets a key be given as a plain string.
func keyPathHook(from, to reflect.Type, data any) (any, error) {
	if to != keyPathType || from.Kind() != reflect.String {
		return data, nil
	}
	s := reflect.ValueOf(data).String()
	if s == "" {
		return core.KeyPath{}, nil
	}
	return core.KeyPath{s}, nil
}

// modeHook parses mode names.
func modeHook(from, to reflect.Type, data any) (any, error) {
	if to != modeType || from.Kind() != reflect.String {
		return data, nil
	}
	return core.ParseMode(reflect.ValueOf(data).String())
}

// modelRefHook reads a model identifier.
func modelRefHook(from, to reflect.Type, data any) (any, error) {
	if to != modelRefType || from.Kind() != reflect.String {
		return data, nil
	}
	return core.ModelID(reflect.ValueOf(data).String()), nil
}

// fillableHook accepts a boolean or a list of attribute names.
func fillableHook(from, to reflect.Type, data any) (any, error) {
	if to != fillableType {
		return data, nil
	}
	switch from.Kind() {
	case reflect.Bool:
		return FillableBool(reflect.ValueOf(data).Bool()), nil
	case reflect.Slice, reflect.Array:
		var names []string
		if err := mapstructure.Decode(data, &names); err != nil {
			return nil, fmt.Errorf("fillable: %w", err)
		}
		return FillableAttributes(names...), nil
	default:
		return nil, fmt.Errorf("fillable must be a boolean or a list of attribute names, got %T", data)
	}
}

// Decode decodes a raw adapter configuration map into out.
// Unknown keys are rejected so that typos in leapvars.yaml surface early.
func Decode(component string, input map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.DecodeHookFuncType(keyPathHook),
			mapstructure.DecodeHookFuncType(modeHook),
			mapstructure.DecodeHookFuncType(fillableHook),
			mapstructure.DecodeHookFuncType(modelRefHook),
		),
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(input); err != nil {
		return &core.ConfigurationError{Component: component, Message: err.Error()}
	}
	return nil
}
