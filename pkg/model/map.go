package model

import (
	"fmt"
	"sort"

	"github.com/go-viper/mapstructure/v2"
	"github.com/leapstack-labs/leapvars/pkg/core"
)

// Map is a model backed by an attribute map.
type Map struct {
	attributes map[string]any
	labels     map[string]string
}

var (
	_ core.Model            = (*Map)(nil)
	_ core.AttributeLabeler = (*Map)(nil)
)

// NewMap creates a model from attributes and optional display labels.
// Both maps are copied.
func NewMap(attributes map[string]any, labels map[string]string) *Map {
	m := &Map{
		attributes: make(map[string]any, len(attributes)),
		labels:     make(map[string]string, len(labels)),
	}
	for k, v := range attributes {
		m.attributes[k] = v
	}
	for k, v := range labels {
		m.labels[k] = v
	}
	return m
}

// FromStruct creates a model from the exported fields of a struct (or a
// pointer to one). Attribute names follow the `attr` struct tag, falling
// back to the field name.
func FromStruct(v any, labels map[string]string) (*Map, error) {
	attrs := make(map[string]any)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "attr",
		Result:  &attrs,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(v); err != nil {
		return nil, fmt.Errorf("model from %T: %w", v, err)
	}
	return NewMap(attrs, labels), nil
}

// HasAttribute reports whether name is set.
func (m *Map) HasAttribute(name string) bool {
	_, ok := m.attributes[name]
	return ok
}

// Attribute returns the value of name.
func (m *Map) Attribute(name string) (any, bool) {
	v, ok := m.attributes[name]
	return v, ok
}

// AttributeLabels returns the display labels.
func (m *Map) AttributeLabels() map[string]string {
	return m.labels
}

// Set assigns an attribute value.
func (m *Map) Set(name string, value any) {
	m.attributes[name] = value
}

// Attributes returns the attribute names, sorted.
func (m *Map) Attributes() []string {
	names := make([]string, 0, len(m.attributes))
	for name := range m.attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
