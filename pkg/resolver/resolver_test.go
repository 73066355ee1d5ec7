package resolver

import (
	"testing"

	"github.com/leapstack-labs/leapvars/internal/testutil"
	"github.com/leapstack-labs/leapvars/pkg/adapter"
	"github.com/leapstack-labs/leapvars/pkg/adapters/static"
	"github.com/leapstack-labs/leapvars/pkg/core"
	"github.com/leapstack-labs/leapvars/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticEntry(id, key, def string) Entry {
	return Entry{
		ID:   id,
		Type: "static",
		Config: map[string]any{
			"variables": []any{
				map[string]any{"key": key, "label": key, "defaultValue": def},
			},
		},
	}
}

func TestNew_Empty(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrConfiguration)

	_, err = FromAdapters(nil)
	assert.ErrorIs(t, err, core.ErrConfiguration)
}

func TestNew_InvalidEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{name: "missing id", entries: []Entry{{Type: "static"}}},
		{name: "duplicate id", entries: []Entry{staticEntry("a", "k", "v"), staticEntry("a", "j", "w")}},
		{name: "unknown type", entries: []Entry{{ID: "nope"}}},
		{name: "bad config", entries: []Entry{{ID: "static", Config: map[string]any{"bogus": 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.entries)
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrConfiguration)
		})
	}
}

func TestNew_TypeDefaultsToID(t *testing.T) {
	r, err := New([]Entry{{ID: "computed"}}, WithLogger(testutil.NewTestLogger(t)))
	require.NoError(t, err)
	assert.True(t, r.HasAdapter(adapter.KindComputed))
	assert.Equal(t, []string{"computed"}, r.IDs())
}

func TestInterpret_FirstRegisteredWins(t *testing.T) {
	r, err := New([]Entry{
		staticEntry("first", "a.b", "one"),
		staticEntry("second", "a.b", "two"),
	})
	require.NoError(t, err)

	got, err := r.Interpret("{a.b}", nil)
	require.NoError(t, err)
	assert.Equal(t, "one", got)

	vars, err := r.Variables()
	require.NoError(t, err)
	require.Len(t, vars, 2, "no de-duplication across adapters")

	v, ok, err := r.Variable("a.b")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "one", v.DefaultValue)
}

func TestVariables_CollisionError(t *testing.T) {
	r, err := New([]Entry{
		staticEntry("first", "a.b", "one"),
		staticEntry("second", "a.b", "two"),
	}, WithCollisionPolicy(CollisionError))
	require.NoError(t, err)

	_, err = r.Variables()
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrConfiguration)
	assert.Contains(t, err.Error(), `"first"`)
	assert.Contains(t, err.Error(), `"second"`)
}

func TestParseCollisionPolicy(t *testing.T) {
	p, err := ParseCollisionPolicy("")
	require.NoError(t, err)
	assert.Equal(t, CollisionFirstWins, p)

	p, err = ParseCollisionPolicy("error")
	require.NoError(t, err)
	assert.Equal(t, CollisionError, p)

	_, err = ParseCollisionPolicy("last")
	assert.ErrorIs(t, err, core.ErrConfiguration)
}

func TestInterpret_Chain(t *testing.T) {
	models := model.NewRegistry()
	models.Register("site", model.NewMap(map[string]any{"name": "Acme"}, nil))

	r, err := New([]Entry{
		{ID: "static", Config: map[string]any{
			"mode":      "key",
			"variables": []any{map[string]any{"key": "user.name", "label": "Name"}},
		}},
		{ID: "computed", Config: map[string]any{
			"variables": []any{map[string]any{"key": "greeting", "label": "Greeting", "defaultValue": "Welcome"}},
		}},
		{ID: "attribute", Config: map[string]any{
			"variables": []any{map[string]any{"key": "site", "label": "Site", "model": "site", "attributes": []any{"name"}}},
		}},
	}, WithModels(models), WithLogger(testutil.NewTestLogger(t)))
	require.NoError(t, err)
	require.NoError(t, r.ResolveModels())

	got, err := r.Interpret("{greeting} to {site.name}, {user.name}! {other}", core.Values{"user.name": "Bob"})
	require.NoError(t, err)
	assert.Equal(t, "Welcome to Acme, Bob! {other}", got)

	got, err = r.Interpret("{user.name}", nil)
	require.NoError(t, err)
	assert.Equal(t, "{user.name}", got, "key mode leaves the placeholder for a later pass")
}

func TestInterpret_PropagatesAdapterError(t *testing.T) {
	r, err := New([]Entry{{ID: "static", Config: map[string]any{
		"mode":      "strict",
		"variables": []any{map[string]any{"key": "k", "label": "K"}},
	}}})
	require.NoError(t, err)

	_, err = r.Interpret("{k}", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnresolved)
	assert.Contains(t, err.Error(), `adapter "static"`)
}

func TestInject(t *testing.T) {
	r, err := New([]Entry{
		staticEntry("one", "k", "a"),
		staticEntry("two", "j", "b"),
	})
	require.NoError(t, err)

	r.Inject(map[string]core.Values{
		"two":     {"j": "B"},
		"missing": {"k": "ignored"},
	})

	got, err := r.Interpret("{k}{j}", nil)
	require.NoError(t, err)
	assert.Equal(t, "aB", got)
}

func TestAdapterLookup(t *testing.T) {
	s, err := static.New(static.Config{Variables: []static.Declaration{{Key: core.KeyPath{"k"}, Label: "K"}}}, nil)
	require.NoError(t, err)

	r, err := FromAdapters([]Named{{ID: "mine", Adapter: s}})
	require.NoError(t, err)

	assert.True(t, r.HasAdapter(adapter.KindStatic))
	assert.False(t, r.HasAdapter(adapter.KindAttribute))

	a, ok := r.Adapter(adapter.KindStatic)
	require.True(t, ok)
	assert.Same(t, s, a)

	a, ok = r.AdapterByID("mine")
	require.True(t, ok)
	assert.Same(t, s, a)

	_, ok = r.AdapterByID("other")
	assert.False(t, ok)

	ok, err = r.HasVariable("k")
	require.NoError(t, err)
	assert.True(t, ok)
}
