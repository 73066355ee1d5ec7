package model

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/leapstack-labs/leapvars/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	attrs := map[string]any{"total": 42, "status": "paid"}
	m := NewMap(attrs, map[string]string{"total": "Total"})

	attrs["status"] = "mutated"

	assert.True(t, m.HasAttribute("total"))
	assert.False(t, m.HasAttribute("missing"))

	v, ok := m.Attribute("status")
	require.True(t, ok)
	assert.Equal(t, "paid", v, "attributes are copied")

	m.Set("status", "refunded")
	v, _ = m.Attribute("status")
	assert.Equal(t, "refunded", v)

	assert.Equal(t, []string{"status", "total"}, m.Attributes())
	assert.Equal(t, map[string]string{"total": "Total"}, m.AttributeLabels())
}

type order struct {
	ID       string `attr:"id"`
	Total    int    `attr:"total"`
	Customer string
	internal string
}

func TestFromStruct(t *testing.T) {
	m, err := FromStruct(&order{ID: "o-1", Total: 42, Customer: "Ann", internal: "x"}, nil)
	require.NoError(t, err)

	v, ok := m.Attribute("id")
	require.True(t, ok)
	assert.Equal(t, "o-1", v)

	v, ok = m.Attribute("total")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	assert.True(t, m.HasAttribute("Customer"))
	assert.False(t, m.HasAttribute("internal"))
}

func TestFromStruct_NotAStruct(t *testing.T) {
	_, err := FromStruct(42, nil)
	assert.Error(t, err)
}

func TestRegistry_Resolve(t *testing.T) {
	r := NewRegistry()
	site := NewMap(map[string]any{"name": "Acme"}, nil)
	r.Register("site", site)

	m, err := r.ResolveModel("site")
	require.NoError(t, err)
	assert.Same(t, site, m)

	_, err = r.ResolveModel("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)

	assert.True(t, r.Has("site"))
	assert.Equal(t, []string{"site"}, r.IDs())
}

func TestRegistry_FactoryCalledOnce(t *testing.T) {
	r := NewRegistry()
	var calls atomic.Int32
	r.RegisterFunc("lazy", func() (core.Model, error) {
		calls.Add(1)
		return NewMap(map[string]any{"n": 1}, nil), nil
	})

	var wg sync.WaitGroup
	results := make([]core.Model, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, err := r.ResolveModel("lazy")
			assert.NoError(t, err)
			results[i] = m
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, m := range results {
		assert.Same(t, results[0], m)
	}
}

func TestRegistry_FactoryError(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	r.RegisterFunc("broken", func() (core.Model, error) { return nil, boom })

	_, err := r.ResolveModel("broken")
	assert.ErrorIs(t, err, boom)

	_, err = r.ResolveModel("broken")
	assert.ErrorIs(t, err, boom, "the failed result is memoized")
}
