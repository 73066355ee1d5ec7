package core

// Model is the host-object capability read by the attribute adapter.
type Model interface {
	// HasAttribute reports whether the model exposes the named attribute.
	HasAttribute(name string) bool

	// Attribute returns the attribute's current value.
	Attribute(name string) (any, bool)
}

// AttributeLabeler is optionally implemented by models that carry display
// labels for their attributes.
type AttributeLabeler interface {
	AttributeLabels() map[string]string
}

// ModelResolver resolves a model identifier to its (usually singleton) instance.
type ModelResolver interface {
	ResolveModel(id string) (Model, error)
}

// ModelResolverFunc adapts a function to ModelResolver.
type ModelResolverFunc func(id string) (Model, error)

// ResolveModel calls f(id).
func (f ModelResolverFunc) ResolveModel(id string) (Model, error) {
	return f(id)
}

// ModelRef is either an unresolved model identifier or a resolved instance.
// Attributes can only be read from the Model returned by Resolve or Instance.
type ModelRef struct {
	id    string
	model Model
}

// ModelID returns an unresolved reference.
func ModelID(id string) ModelRef {
	return ModelRef{id: id}
}

// ModelOf returns a resolved reference.
func ModelOf(m Model) ModelRef {
	return ModelRef{model: m}
}

// IsResolved reports whether the reference holds an instance.
func (r ModelRef) IsResolved() bool {
	return r.model != nil
}

// IsZero reports whether the reference holds neither an identifier nor an instance.
func (r ModelRef) IsZero() bool {
	return r.model == nil && r.id == ""
}

// ID returns the identifier of an unresolved reference.
func (r ModelRef) ID() string {
	return r.id
}

// Instance returns the resolved model, if any.
func (r ModelRef) Instance() (Model, bool) {
	return r.model, r.model != nil
}

// Resolve returns the model, looking up unresolved identifiers through res.
// The reference itself is left unchanged.
func (r ModelRef) Resolve(res ModelResolver) (Model, error) {
	if r.model != nil {
		return r.model, nil
	}
	if r.id == "" {
		return nil, &ConfigurationError{Component: "model", Message: "model reference is empty"}
	}
	if res == nil {
		return nil, &ConfigurationError{
			Component: "model",
			Message:   "cannot resolve model " + `"` + r.id + `"` + ": no model resolver configured",
		}
	}
	m, err := res.ResolveModel(r.id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, &NotFoundError{Model: r.id}
	}
	return m, nil
}

// String describes the reference for logs and errors.
func (r ModelRef) String() string {
	switch {
	case r.model != nil:
		return "<instance>"
	case r.id != "":
		return r.id
	default:
		return "<empty>"
	}
}
