package manager

import "github.com/leapstack-labs/leapvars/pkg/core"

// Template is a plain-text template.
type Template string

// InterpretableContent returns the text.
func (t Template) InterpretableContent() string { return string(t) }

// Document pairs a template with the values a user supplied for it.
type Document struct {
	Template Template
	Values   core.Values
}

var _ core.Interpretable = Document{}

// InterpretableVariables returns the supplied values.
func (d Document) InterpretableVariables() core.Values { return d.Values }

// InterpretableTemplate returns the template.
func (d Document) InterpretableTemplate() core.InterpretableTemplate { return d.Template }
