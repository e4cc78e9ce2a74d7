package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/tracked-mcp/tracked"
)

func TestStore_DropTombstones(t *testing.T) {
	s := New()
	m := tracked.NewMapOf(tracked.Entry{Key: "a", Value: tracked.Int(1)})
	s.PutMap("users", m)
	stamp := m.GetOrCreateStamp()

	assert.True(t, s.Drop("users"))
	assert.True(t, m.Destroyed())
	assert.EqualValues(t, tracked.Tombstone, stamp.Version())
	assert.False(t, s.Drop("users"))

	_, err := s.Map("users")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStore_PutReplacesAndDestroys(t *testing.T) {
	s := New()
	old := tracked.NewSequence()
	s.PutSequence("x", old)
	s.PutMap("x", tracked.NewMap())
	assert.True(t, old.Destroyed())
	_, err := s.Sequence("x")
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = s.Map("x")
	assert.NoError(t, err)
}

func TestStore_Relocate(t *testing.T) {
	s := New()
	m := tracked.NewMapOf(tracked.Entry{Key: "a", Value: tracked.Int(1)})
	s.PutMap("from", m)
	stamp := m.GetOrCreateStamp()
	s.PutMap("taken", tracked.NewMap())

	err := s.Relocate("from", "taken")
	assert.True(t, errors.Is(err, ErrExists))

	require.NoError(t, s.Relocate("from", "to"))
	assert.True(t, stamp.IsTombstoned())
	moved, err := s.Map("to")
	require.NoError(t, err)
	assert.EqualValues(t, []string{"a"}, moved.Keys())
	assert.Nil(t, moved.Stamp())

	err = s.Relocate("missing", "other")
	assert.True(t, errors.Is(err, ErrNotFound))

	seq := tracked.NewSequenceOf(tracked.Int(1))
	s.PutSequence("list", seq)
	require.NoError(t, s.Relocate("list", "list2"))
	assert.True(t, seq.Destroyed())
	maps, sequences := s.Names()
	assert.EqualValues(t, []string{"taken", "to"}, maps)
	assert.EqualValues(t, []string{"list2"}, sequences)
}

func TestStore_Swap(t *testing.T) {
	s := New()
	a := tracked.NewMapOf(tracked.Entry{Key: "a", Value: tracked.Int(1)})
	b := tracked.NewMapOf(tracked.Entry{Key: "b", Value: tracked.Int(2)})
	s.PutMap("a", a)
	s.PutMap("b", b)
	stampA := a.GetOrCreateStamp()

	require.NoError(t, s.Swap("a", "b"))
	assert.EqualValues(t, []string{"b"}, a.Keys())
	assert.EqualValues(t, 2, stampA.Version())

	s.PutSequence("seq", tracked.NewSequence())
	err := s.Swap("a", "seq")
	assert.True(t, errors.Is(err, ErrNotFound))

	s.Clear()
	assert.True(t, a.Destroyed())
	assert.True(t, b.Destroyed())
}
