package static

import (
	"log/slog"

	"github.com/leapstack-labs/leapvars/pkg/adapter"
	"github.com/leapstack-labs/leapvars/pkg/core"
)

// Adapter serves a fixed table of declared variables.
type Adapter struct {
	separator string
	mode      core.Mode
	decls     []Declaration
	logger    *slog.Logger
}

var _ adapter.Adapter = (*Adapter)(nil)

// New creates a static adapter. Every declaration must carry a key.
func New(cfg Config, logger *slog.Logger) (*Adapter, error) {
	sep := cfg.Separator
	if sep == "" {
		sep = core.DefaultSeparator
	}

	decls := make([]Declaration, len(cfg.Variables))
	for i, d := range cfg.Variables {
		if d.Key.IsZero() {
			return nil, &core.ConfigurationError{
				Component: string(adapter.KindStatic),
				Message:   "variable has no key property",
			}
		}
		decls[i] = d
	}

	return &Adapter{
		separator: sep,
		mode:      cfg.Mode,
		decls:     decls,
		logger:    adapter.LoggerOrDiscard(logger),
	}, nil
}

// Kind returns adapter.KindStatic.
func (a *Adapter) Kind() adapter.Kind { return adapter.KindStatic }

// Mode returns the resolution mode.
func (a *Adapter) Mode() core.Mode { return a.mode }

// Variables enumerates the declared variables.
func (a *Adapter) Variables() ([]core.Variable, error) {
	vars := make([]core.Variable, 0, len(a.decls))
	for _, d := range a.decls {
		def, _ := core.Stringify(d.DefaultValue)
		fillable := true
		if d.Fillable != nil {
			fillable = *d.Fillable
		}
		vars = append(vars, core.Variable{
			Key:          d.Key.Flatten(a.separator),
			Label:        d.Label,
			DefaultValue: def,
			Fillable:     fillable,
			Directive:    adapter.Directive(d.Directive),
		})
	}
	return vars, nil
}

// HasVariable reports whether key is declared.
func (a *Adapter) HasVariable(key string) (bool, error) {
	_, ok, err := a.Variable(key)
	return ok, err
}

// Variable returns the declared variable for key.
func (a *Adapter) Variable(key string) (core.Variable, bool, error) {
	vars, err := a.Variables()
	if err != nil {
		return core.Variable{}, false, err
	}
	v, ok := adapter.Find(vars, key)
	return v, ok, nil
}

// Inject overwrites the default value of each matched declaration.
func (a *Adapter) Inject(values core.Values) {
	for key, value := range values {
		i := a.index(key)
		if i < 0 {
			a.logger.Debug("inject: no such variable", "adapter", adapter.KindStatic, "key", key)
			continue
		}
		a.decls[i].DefaultValue = value
	}
}

// Interpret substitutes every declared variable into text.
// The value for a key is the override, else the stored default, else the
// mode fallback.
func (a *Adapter) Interpret(text string, values core.Values) (string, error) {
	replacements := make([]adapter.Replacement, 0, len(a.decls))
	for _, d := range a.decls {
		key := d.Key.Flatten(a.separator)

		value, ok := values.Lookup(key)
		if !ok {
			value = d.DefaultValue
		}
		s, ok := core.Stringify(value)
		if !ok {
			var err error
			if s, err = adapter.Fallback(a.mode, key); err != nil {
				return "", err
			}
		}
		replacements = append(replacements, adapter.Replacement{Key: key, Value: s})
	}

	return adapter.Substitute(text, replacements), nil
}

// index returns the position of the declaration with the flattened key, or -1.
func (a *Adapter) index(key string) int {
	for i, d := range a.decls {
		if d.Key.Flatten(a.separator) == key {
			return i
		}
	}
	return -1
}
