// Package manager extracts the variables a template references and reduces
// a consumer's values to the storable subset.
package manager

import (
	"regexp"

	"github.com/leapstack-labs/leapvars/pkg/core"
	"github.com/leapstack-labs/leapvars/pkg/resolver"
)

// PlaceholderPattern matches "{name}" tokens. The name is captured
// non-greedily up to the next '}'.
var PlaceholderPattern = regexp.MustCompile(`\{(.*?)\}`)

// Manager works on templates through a resolver.
type Manager struct {
	resolver *resolver.Resolver
}

// New creates a manager around r.
func New(r *resolver.Resolver) *Manager {
	return &Manager{resolver: r}
}

// Resolver returns the underlying resolver.
func (m *Manager) Resolver() *resolver.Resolver {
	return m.resolver
}

// ExtractAll returns every placeholder name in the template, in order,
// duplicates included.
func (m *Manager) ExtractAll(tmpl core.InterpretableTemplate) []string {
	return ExtractNames(tmpl.InterpretableContent())
}

// ExtractNames returns every placeholder name in text.
func ExtractNames(text string) []string {
	matches := PlaceholderPattern.FindAllStringSubmatch(text, -1)
	names := make([]string, 0, len(matches))
	for _, match := range matches {
		names = append(names, match[1])
	}
	return names
}

// Extract returns the declared variable for each placeholder occurrence.
// Placeholders no adapter declares are dropped.
func (m *Manager) Extract(tmpl core.InterpretableTemplate) ([]core.Variable, error) {
	vars, err := m.resolver.Variables()
	if err != nil {
		return nil, err
	}

	index := make(map[string]core.Variable, len(vars))
	for _, v := range vars {
		if _, dup := index[v.Key]; !dup {
			index[v.Key] = v
		}
	}

	var out []core.Variable
	for _, name := range m.ExtractAll(tmpl) {
		if v, ok := index[name]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

// Storables reduces the interpretable's values to what should be persisted
// for its template. Fixed variables keep their default; fillable ones take
// the supplied value, or "" when none is supplied.
func (m *Manager) Storables(in core.Interpretable) (map[string]any, error) {
	vars, err := m.Extract(in.InterpretableTemplate())
	if err != nil {
		return nil, err
	}

	values := in.InterpretableVariables()
	out := make(map[string]any, len(vars))
	for _, v := range vars {
		if !v.Fillable {
			out[v.Key] = v.DefaultValue
			continue
		}
		if value, ok := values.Lookup(v.Key); ok {
			out[v.Key] = value
		} else {
			out[v.Key] = ""
		}
	}
	return out, nil
}

// Interpret substitutes the interpretable's template with its values.
func (m *Manager) Interpret(in core.Interpretable) (string, error) {
	return m.resolver.Interpret(in.InterpretableTemplate().InterpretableContent(), in.InterpretableVariables())
}

// Variables returns every declared variable.
func (m *Manager) Variables() ([]core.Variable, error) {
	return m.resolver.Variables()
}

// Inject forwards per-adapter values to the resolver.
func (m *Manager) Inject(values map[string]core.Values) *Manager {
	m.resolver.Inject(values)
	return m
}
