package core

// InterpretableTemplate is implemented by anything that holds template text.
type InterpretableTemplate interface {
	InterpretableContent() string
}

// Interpretable pairs a template with the caller-supplied override values.
type Interpretable interface {
	InterpretableVariables() Values
	InterpretableTemplate() InterpretableTemplate
}
