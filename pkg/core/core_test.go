package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{input: "", want: ModeEmpty},
		{input: "empty", want: ModeEmpty},
		{input: "STRICT", want: ModeStrict},
		{input: " key ", want: ModeKey},
		{input: "loose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()), "String() should round-trip")
		})
	}
}

func mustParse(t *testing.T, s string) Mode {
	t.Helper()
	m, err := ParseMode(s)
	require.NoError(t, err)
	return m
}

func TestKeyPath_Flatten(t *testing.T) {
	assert.Equal(t, "user.name", KeyPath{"user", "name"}.Flatten(""))
	assert.Equal(t, "user_name", KeyPath{"user", "name"}.Flatten("_"))
	assert.Equal(t, "plain", KeyPath{"plain"}.Flatten("."))
	assert.True(t, KeyPath{}.IsZero())
	assert.True(t, KeyPath{""}.IsZero())
	assert.False(t, KeyPath{"a"}.IsZero())
}

func TestValues_Lookup(t *testing.T) {
	v := Values{"a": "x", "b": nil}

	got, ok := v.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, "x", got)

	_, ok = v.Lookup("b")
	assert.False(t, ok, "nil values count as absent")

	_, ok = v.Lookup("c")
	assert.False(t, ok)

	_, ok = Values(nil).Lookup("a")
	assert.False(t, ok)
}

func TestStringify(t *testing.T) {
	s, ok := Stringify(nil)
	assert.False(t, ok)
	assert.Empty(t, s)

	s, _ = Stringify("x")
	assert.Equal(t, "x", s)
	s, _ = Stringify(42)
	assert.Equal(t, "42", s)
	s, _ = Stringify([]byte("raw"))
	assert.Equal(t, "raw", s)
	s, _ = Stringify(ModeKey)
	assert.Equal(t, "key", s)
}

type staticModel map[string]any

func (m staticModel) HasAttribute(name string) bool { _, ok := m[name]; return ok }
func (m staticModel) Attribute(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

func TestModelRef_Resolve(t *testing.T) {
	inst := staticModel{"total": 42}

	t.Run("resolved instance", func(t *testing.T) {
		ref := ModelOf(inst)
		assert.True(t, ref.IsResolved())
		got, err := ref.Resolve(nil)
		require.NoError(t, err)
		assert.Equal(t, inst, got)
	})

	t.Run("identifier through resolver", func(t *testing.T) {
		ref := ModelID("order")
		assert.False(t, ref.IsResolved())
		assert.Equal(t, "order", ref.ID())

		got, err := ref.Resolve(ModelResolverFunc(func(id string) (Model, error) {
			assert.Equal(t, "order", id)
			return inst, nil
		}))
		require.NoError(t, err)
		assert.Equal(t, inst, got)
		assert.False(t, ref.IsResolved(), "Resolve must not mutate the reference")
	})

	t.Run("identifier without resolver", func(t *testing.T) {
		_, err := ModelID("order").Resolve(nil)
		assert.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("resolver returns nil", func(t *testing.T) {
		_, err := ModelID("ghost").Resolve(ModelResolverFunc(func(string) (Model, error) { return nil, nil }))
		var nf *NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, "ghost", nf.Model)
	})

	t.Run("empty reference", func(t *testing.T) {
		assert.True(t, ModelRef{}.IsZero())
		_, err := ModelRef{}.Resolve(nil)
		assert.ErrorIs(t, err, ErrConfiguration)
	})
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
		msg  string
	}{
		{
			name: "configuration with key",
			err:  &ConfigurationError{Component: "static", Key: "user.name", Message: "bad"},
			kind: ErrConfiguration,
			msg:  "static: user.name: bad",
		},
		{
			name: "attribute not found",
			err:  &NotFoundError{Model: "order", Attribute: "total"},
			kind: ErrNotFound,
			msg:  `attribute "total" not found on model "order"`,
		},
		{
			name: "state",
			err:  &StateError{Key: "order", Message: "model is unresolved"},
			kind: ErrState,
			msg:  "order: model is unresolved",
		},
		{
			name: "unresolved",
			err:  &UnresolvedVariableError{Key: "a"},
			kind: ErrUnresolved,
			msg:  `variable "a" has no value nor default value`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.msg, tt.err.Error())
			assert.ErrorIs(t, tt.err, tt.kind)
			for _, other := range []error{ErrConfiguration, ErrNotFound, ErrState, ErrUnresolved} {
				if other != tt.kind {
					assert.NotErrorIs(t, tt.err, other)
				}
			}
		})
	}
}

func TestVariable_Placeholder(t *testing.T) {
	assert.Equal(t, "{user.name}", Variable{Key: "user.name"}.Placeholder())
}
