package attribute

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leapvars/pkg/adapter"
	"github.com/leapstack-labs/leapvars/pkg/core"
)

// Adapter flattens model attributes into variables.
type Adapter struct {
	separator string
	mode      core.Mode
	decls     []Declaration
	models    core.ModelResolver
	logger    *slog.Logger
}

var _ adapter.Adapter = (*Adapter)(nil)

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger. nil discards.
func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) { a.logger = adapter.LoggerOrDiscard(l) }
}

// WithModels sets the resolver used for declarations holding a model identifier.
func WithModels(r core.ModelResolver) Option {
	return func(a *Adapter) { a.models = r }
}

// New creates an attribute adapter. Declarations are validated lazily by
// Variables, since models may only become available through Inject.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	sep := cfg.Separator
	if sep == "" {
		sep = core.DefaultSeparator
	}

	decls := make([]Declaration, len(cfg.Variables))
	for i, d := range cfg.Variables {
		if d.Key.IsZero() {
			return nil, &core.ConfigurationError{
				Component: string(adapter.KindAttribute),
				Message:   "variable has no key property",
			}
		}
		decls[i] = d
	}

	a := &Adapter{
		separator: sep,
		mode:      cfg.Mode,
		decls:     decls,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Kind returns adapter.KindAttribute.
func (a *Adapter) Kind() adapter.Kind { return adapter.KindAttribute }

// Mode returns the resolution mode.
func (a *Adapter) Mode() core.Mode { return a.mode }

// Variables enumerates one variable per declared attribute.
// Model identifiers are resolved for reading only; the declaration keeps
// its identifier.
func (a *Adapter) Variables() ([]core.Variable, error) {
	var vars []core.Variable
	for _, d := range a.decls {
		parent := d.Key.Flatten(a.separator)
		if len(d.Attributes) == 0 {
			return nil, &core.ConfigurationError{
				Component: string(adapter.KindAttribute),
				Key:       parent,
				Message:   "declaration has no attributes",
			}
		}

		m, err := d.Model.Resolve(a.models)
		if err != nil {
			return nil, err
		}

		var modelLabels map[string]string
		if l, ok := m.(core.AttributeLabeler); ok {
			modelLabels = l.AttributeLabels()
		}

		for _, attr := range d.Attributes {
			if !m.HasAttribute(attr) {
				return nil, &core.NotFoundError{Model: d.Model.String(), Attribute: attr}
			}
			value, _ := m.Attribute(attr)
			vars = append(vars, core.Variable{
				Key:          a.key(parent, attr),
				Label:        label(d, modelLabels, attr),
				DefaultValue: value,
				Fillable:     d.Fillable.For(attr, false),
				Directive:    adapter.Directive(d.Directive),
			})
		}
	}
	return vars, nil
}

// HasVariable reports whether key names a declared attribute.
func (a *Adapter) HasVariable(key string) (bool, error) {
	_, ok, err := a.Variable(key)
	return ok, err
}

// Variable returns the variable for key.
func (a *Adapter) Variable(key string) (core.Variable, bool, error) {
	vars, err := a.Variables()
	if err != nil {
		return core.Variable{}, false, err
	}
	v, ok := adapter.Find(vars, key)
	return v, ok, nil
}

// Inject replaces the model of each matched declaration. A value may be an
// identifier string, a core.Model or a core.ModelRef.
func (a *Adapter) Inject(values core.Values) {
	for key, value := range values {
		i := a.index(key)
		if i < 0 {
			a.logger.Debug("inject: no such declaration", "adapter", adapter.KindAttribute, "key", key)
			continue
		}

		switch v := value.(type) {
		case core.ModelRef:
			a.decls[i].Model = v
		case string:
			a.decls[i].Model = core.ModelID(v)
		case core.Model:
			a.decls[i].Model = core.ModelOf(v)
		default:
			a.logger.Warn("inject: unsupported model value", "adapter", adapter.KindAttribute, "key", key, "type", fmt.Sprintf("%T", value))
		}
	}
}

// ResolveModels replaces every model identifier with its resolved instance.
func (a *Adapter) ResolveModels() error {
	for i, d := range a.decls {
		if d.Model.IsResolved() {
			continue
		}
		m, err := d.Model.Resolve(a.models)
		if err != nil {
			return err
		}
		a.decls[i].Model = core.ModelOf(m)
	}
	return nil
}

// Interpret substitutes the declared attributes into text. Every
// declaration must hold a resolved model. Only string values are
// substituted; other values leave their placeholder untouched.
func (a *Adapter) Interpret(text string, values core.Values) (string, error) {
	var replacements []adapter.Replacement
	for _, d := range a.decls {
		parent := d.Key.Flatten(a.separator)
		m, ok := d.Model.Instance()
		if !ok {
			return "", &core.StateError{
				Key:     parent,
				Message: "model " + d.Model.String() + " is not resolved",
			}
		}

		for _, attr := range d.Attributes {
			key := a.key(parent, attr)

			value, ok := values.Lookup(key)
			if !ok {
				value, _ = m.Attribute(attr)
			}

			switch v := value.(type) {
			case nil:
				s, err := adapter.Fallback(a.mode, key)
				if err != nil {
					return "", err
				}
				replacements = append(replacements, adapter.Replacement{Key: key, Value: s})
			case string:
				replacements = append(replacements, adapter.Replacement{Key: key, Value: v})
			default:
				a.logger.Debug("interpret: skipping non-string value", "adapter", adapter.KindAttribute, "key", key)
			}
		}
	}
	return adapter.Substitute(text, replacements), nil
}

func (a *Adapter) key(parent, attr string) string {
	return parent + a.separator + attr
}

func (a *Adapter) index(key string) int {
	for i, d := range a.decls {
		if d.Key.Flatten(a.separator) == key {
			return i
		}
	}
	return -1
}

// label builds "<attribute label> <declaration label>".
func label(d Declaration, modelLabels map[string]string, attr string) string {
	l, ok := d.Labels[attr]
	if !ok {
		l, ok = modelLabels[attr]
	}
	if !ok || l == "" {
		l = attr
	}
	if d.Label != "" {
		l += " " + d.Label
	}
	return l
}
