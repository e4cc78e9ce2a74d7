package handle

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/tracked-mcp/tracked"
)

func TestRegistry_SharedStampReleasedWithLastHandle(t *testing.T) {
	registry := NewRegistry(0)
	m := tracked.NewMapOf(tracked.Entry{Key: "a", Value: tracked.Int(1)})

	first, err := registry.Register(Acquire(m))
	require.NoError(t, err)
	second, err := registry.Register(Acquire(m))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.EqualValues(t, 2, registry.Len())

	h1, err := registry.Lookup(first)
	require.NoError(t, err)
	h2, err := registry.Lookup(second)
	require.NoError(t, err)
	assert.Same(t, h1.Stamp(), h2.Stamp())

	require.NoError(t, registry.Release(first))
	_, err = h1.Map()
	assert.True(t, errors.Is(err, ErrReleased))
	_, ok := h2.Validate(1)
	assert.True(t, ok, "other handles keep watching")
	assert.NotNil(t, m.Stamp())

	require.NoError(t, registry.Release(second))
	assert.Nil(t, m.Stamp())
	assert.False(t, m.Destroyed())

	err = registry.Release(second)
	assert.True(t, errors.Is(err, ErrUnknownHandle))
}

func TestRegistry_Iterators(t *testing.T) {
	registry := NewRegistry(0)
	id, err := registry.Register(New())
	require.NoError(t, err)
	h, err := registry.Lookup(id)
	require.NoError(t, err)

	it, err := h.Iterate()
	require.NoError(t, err)
	itID, err := registry.RegisterIterator(id, it)
	require.NoError(t, err)
	got, err := registry.LookupIterator(itID)
	require.NoError(t, err)
	assert.Same(t, it, got)
	assert.EqualValues(t, 1, registry.IteratorLen())

	_, err = registry.RegisterIterator("missing", it)
	assert.True(t, errors.Is(err, ErrUnknownHandle))

	require.NoError(t, registry.Release(id))
	assert.EqualValues(t, 0, registry.IteratorLen())
	_, err = registry.LookupIterator(itID)
	assert.True(t, errors.Is(err, ErrUnknownHandle))
}

func TestRegistry_Limit(t *testing.T) {
	registry := NewRegistry(1)
	_, err := registry.Register(New())
	require.NoError(t, err)
	_, err = registry.Register(New())
	assert.True(t, errors.Is(err, ErrTooManyHandles))

	released := New()
	released.Release()
	_, err = NewRegistry(0).Register(released)
	assert.True(t, errors.Is(err, ErrReleased))
}

func TestRegistry_Sweep(t *testing.T) {
	registry := NewRegistry(0)
	dropped := tracked.NewMap()
	kept := tracked.NewMap()
	droppedID, err := registry.Register(Acquire(dropped))
	require.NoError(t, err)
	keptID, err := registry.Register(Acquire(kept))
	require.NoError(t, err)

	dropped.Destroy()
	var swept []string
	require.NoError(t, registry.Do(func() error {
		swept = registry.Sweep()
		return nil
	}))
	assert.EqualValues(t, []string{droppedID}, swept)
	assert.EqualValues(t, []string{keptID}, registry.IDs())
	assert.NotNil(t, kept.Stamp())
}

func TestRegistry_Do(t *testing.T) {
	registry := NewRegistry(0)
	id, err := registry.Register(New())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = registry.Do(func() error {
				h, err := registry.Lookup(id)
				if err != nil {
					return err
				}
				m, err := h.Map()
				if err != nil {
					return err
				}
				m.Set(string(rune('a'+i%26)), tracked.Int(i))
				return nil
			})
		}(i)
	}
	wg.Wait()

	h, err := registry.Lookup(id)
	require.NoError(t, err)
	m, err := h.Map()
	require.NoError(t, err)
	assert.EqualValues(t, 26, m.Len())
	assert.EqualValues(t, 1, h.Version())
}
