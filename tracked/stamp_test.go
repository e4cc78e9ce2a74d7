package tracked

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStamp_OwningRelease(t *testing.T) {
	s := NewOwningMapStamp()
	assert.EqualValues(t, 1, s.Version())
	assert.True(t, s.IsOwning())
	assert.True(t, s.IsAttached())

	m, ok := s.Map()
	require.True(t, ok)
	assert.Same(t, s, m.Stamp())
	_, ok = s.Sequence()
	assert.False(t, ok)

	m.Set("a", Int(1))
	m.Clear()
	assert.EqualValues(t, 2, s.Version())

	s.Release()
	assert.True(t, m.Destroyed())
	assert.True(t, s.IsTombstoned())
	assert.False(t, s.IsAttached())
	assert.False(t, s.IsOwning())

	s.Release()
	assert.True(t, s.IsTombstoned())
}

func TestStamp_AttachedReleaseKeepsContainer(t *testing.T) {
	m := NewMapOf(Entry{Key: "a", Value: Int(1)})
	s := m.GetOrCreateStamp()

	s.Release()
	assert.False(t, m.Destroyed())
	assert.Nil(t, m.Stamp())
	assert.True(t, s.IsTombstoned())

	m.Erase("a")
	assert.EqualValues(t, Tombstone, s.Version())

	fresh := m.GetOrCreateStamp()
	assert.NotSame(t, s, fresh)
	assert.EqualValues(t, 1, fresh.Version())
}

func TestStamp_RetainedReleasesWithLastHolder(t *testing.T) {
	owner := NewOwningMapStamp()
	owner.Retain()
	owner.Retain()
	m, ok := owner.Map()
	require.True(t, ok)

	owner.Release()
	assert.EqualValues(t, 1, owner.Holders())
	assert.False(t, m.Destroyed())
	assert.EqualValues(t, 1, owner.Version())

	owner.Release()
	assert.True(t, m.Destroyed())
	assert.True(t, owner.IsTombstoned())
	assert.EqualValues(t, 0, owner.Holders())

	owner.Retain()
	assert.EqualValues(t, 0, owner.Holders(), "a tombstoned stamp takes no holders")
}

func TestStamp_ReleaseAfterContainerDestroyed(t *testing.T) {
	m := NewMap()
	s := m.GetOrCreateStamp()
	m.Destroy()
	assert.NotPanics(t, s.Release)
	assert.True(t, s.IsTombstoned())

	owner := NewOwningSequenceStamp()
	q, ok := owner.Sequence()
	require.True(t, ok)
	moved := q.Move()
	assert.True(t, owner.IsTombstoned())
	assert.NotPanics(t, owner.Release)
	assert.False(t, moved.Destroyed())
}

func TestStamp_BumpOnTombstonePanics(t *testing.T) {
	s := NewMap().GetOrCreateStamp()
	s.tombstone()
	assert.Panics(t, s.bump)
}

func TestStamp_String(t *testing.T) {
	owner := NewOwningSequenceStamp()
	assert.EqualValues(t, "stamp(v1, owning)", owner.String())
	attachedStamp := NewMap().GetOrCreateStamp()
	assert.EqualValues(t, "stamp(v1, attached)", attachedStamp.String())
	owner.Release()
	assert.EqualValues(t, "stamp(tombstoned)", owner.String())
}

func TestStamp_OwningFrom(t *testing.T) {
	src := NewMapOf(Entry{Key: "a", Value: Int(1)})
	watcher := src.GetOrCreateStamp()
	s := NewOwningMapStampFrom(src)
	m, ok := s.Map()
	require.True(t, ok)
	assert.EqualValues(t, 1, s.Version())
	assert.EqualValues(t, []string{"a"}, m.Keys())
	assert.True(t, src.Empty())
	assert.EqualValues(t, 2, watcher.Version())

	seq := NewSequenceOf(Int(1), Int(2))
	owner := NewOwningSequenceStampFrom(seq)
	q, ok := owner.Sequence()
	require.True(t, ok)
	assert.EqualValues(t, 2, q.Len())
	assert.True(t, seq.Empty())
	assert.EqualValues(t, 1, owner.Version())
}
