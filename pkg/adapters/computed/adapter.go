package computed

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/leapstack-labs/leapvars/pkg/adapter"
	"github.com/leapstack-labs/leapvars/pkg/core"
)

// Adapter resolves declared values through registered functions.
// Override values passed to Interpret are ignored.
type Adapter struct {
	separator  string
	decls      []Declaration
	extensions []adapter.Function
	now        func() time.Time
	logger     *slog.Logger
}

var _ adapter.Adapter = (*Adapter)(nil)

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger. nil discards.
func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) { a.logger = adapter.LoggerOrDiscard(l) }
}

// WithFunctions registers extension functions. They are searched after the
// built-ins, so an extension cannot shadow CURRENT_TIME.
func WithFunctions(fns ...adapter.Function) Option {
	return func(a *Adapter) { a.extensions = append(a.extensions, fns...) }
}

// WithNowFunc replaces the clock used by CURRENT_TIME.
func WithNowFunc(now func() time.Time) Option {
	return func(a *Adapter) { a.now = now }
}

// New creates a computed adapter.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	sep := cfg.Separator
	if sep == "" {
		sep = core.DefaultSeparator
	}

	loc := time.UTC
	if cfg.Location != "" {
		l, err := time.LoadLocation(cfg.Location)
		if err != nil {
			return nil, &core.ConfigurationError{
				Component: string(adapter.KindComputed),
				Key:       "location",
				Message:   err.Error(),
			}
		}
		loc = l
	}

	decls := make([]Declaration, len(cfg.Variables))
	for i, d := range cfg.Variables {
		if d.Key.IsZero() {
			return nil, &core.ConfigurationError{
				Component: string(adapter.KindComputed),
				Message:   "variable has no key property",
			}
		}
		decls[i] = d
	}

	a := &Adapter{
		separator: sep,
		decls:     decls,
		now:       time.Now,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}

	now := a.now
	a.now = func() time.Time { return now().In(loc) }

	for _, fn := range a.extensions {
		if fn.Key == "" || fn.Func == nil {
			return nil, &core.ConfigurationError{
				Component: string(adapter.KindComputed),
				Key:       fn.Key,
				Message:   "function needs a key and a func",
			}
		}
	}
	return a, nil
}

// Kind returns adapter.KindComputed.
func (a *Adapter) Kind() adapter.Kind { return adapter.KindComputed }

// Functions returns the lookup list: built-ins first, then extensions.
func (a *Adapter) Functions() []adapter.Function {
	fns := builtins(a.now)
	return append(fns, a.extensions...)
}

// Function returns the first function registered under name.
func (a *Adapter) Function(name string) (adapter.Function, bool) {
	for _, fn := range a.Functions() {
		if fn.Key == name {
			return fn, true
		}
	}
	return adapter.Function{}, false
}

// Variables enumerates declared variables followed by one record per
// registered function, whose default is the function's bare invocation.
func (a *Adapter) Variables() ([]core.Variable, error) {
	fns := a.Functions()
	vars := make([]core.Variable, 0, len(a.decls)+len(fns))
	for _, d := range a.decls {
		vars = append(vars, core.Variable{
			Key:          d.Key.Flatten(a.separator),
			Label:        d.Label,
			DefaultValue: d.DefaultValue,
			Fillable:     d.Fillable,
			Directive:    adapter.Directive(d.Directive),
		})
	}
	for _, fn := range fns {
		vars = append(vars, core.Variable{
			Key:          fn.Key,
			Label:        fn.Label,
			DefaultValue: Encode(fn.Key),
			Directive:    map[string]any{},
		})
	}
	return vars, nil
}

// HasVariable reports whether key is declared or names a function.
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

// Inject overwrites the default value of each matched declaration.
// Function records cannot be injected.
func (a *Adapter) Inject(values core.Values) {
	for key, value := range values {
		i := a.index(key)
		if i < 0 {
			a.logger.Debug("inject: no such variable", "adapter", adapter.KindComputed, "key", key)
			continue
		}
		s, _ := core.Stringify(value)
		a.decls[i].DefaultValue = s
	}
}

// Interpret substitutes the variables referenced by text with their computed
// values. Variables whose placeholder does not occur are not evaluated.
func (a *Adapter) Interpret(text string, _ core.Values) (string, error) {
	vars, err := a.Variables()
	if err != nil {
		return "", err
	}

	replacements := make([]adapter.Replacement, 0, len(vars))
	for _, v := range vars {
		if !strings.Contains(text, core.Placeholder(v.Key)) {
			continue
		}
		raw, _ := v.DefaultValue.(string)
		value, err := a.Evaluate(raw)
		if err != nil {
			return "", fmt.Errorf("computed variable %q: %w", v.Key, err)
		}
		replacements = append(replacements, adapter.Replacement{Key: v.Key, Value: value})
	}
	return adapter.Substitute(text, replacements), nil
}

// Evaluate resolves a single encoded value. Values that are not an
// invocation of a registered function are returned unchanged.
func (a *Adapter) Evaluate(value string) (string, error) {
	inv, ok := ParseInvocation(value)
	if !ok {
		return value, nil
	}
	fn, ok := a.Function(inv.Name)
	if !ok {
		return value, nil
	}
	return fn.Func(inv.Args)
}

func (a *Adapter) index(key string) int {
	for i, d := range a.decls {
		if d.Key.Flatten(a.separator) == key {
			return i
		}
	}
	return -1
}
