package tracked

import (
	"iter"

	"github.com/google/btree"
)

const btreeDegree = 16

// Entry is a key/value pair stored in a Map.
type Entry struct {
	Key   string
	Value Value
}

func lessEntry(a, b Entry) bool { return a.Key < b.Key }

func newTree() *btree.BTreeG[Entry] {
	return btree.NewG[Entry](btreeDegree, lessEntry)
}

// Map is an ordered mapping from string keys to Values, iterated in key
// order. Assignment, Clear, every form of Erase and Swap bump the attached
// stamp before changing the structure; lookups and insertions do not.
//
// The zero Map is empty and ready to use. A destroyed Map must not be used
// again.
type Map struct {
	tree      *btree.BTreeG[Entry]
	stamp     *Stamp
	destroyed bool
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{tree: newTree()}
}

// NewMapOf returns a map holding entries; later duplicates win.
func NewMapOf(entries ...Entry) *Map {
	m := NewMap()
	for _, e := range entries {
		m.Set(e.Key, e.Value)
	}
	return m
}

func (m *Map) items() *btree.BTreeG[Entry] {
	m.mustBeLive()
	if m.tree == nil {
		m.tree = newTree()
	}
	return m.tree
}

func (m *Map) mustBeLive() {
	if m.destroyed {
		panic("tracked: use of destroyed map")
	}
}

// mutate records an iterator-invalidating operation.
func (m *Map) mutate() {
	if m.stamp != nil {
		m.stamp.bump()
	}
}

// GetOrCreateStamp returns the attached stamp, creating one in attached
// mode on first use. Repeated calls return the same stamp.
func (m *Map) GetOrCreateStamp() *Stamp {
	m.mustBeLive()
	if m.stamp == nil {
		m.stamp = newAttachedStamp(m)
	}
	return m.stamp
}

// Stamp returns the attached stamp or nil.
func (m *Map) Stamp() *Stamp { return m.stamp }

func (m *Map) detachStamp(s *Stamp) {
	if m.stamp == s {
		m.stamp = nil
	}
}

// Destroyed reports whether Destroy or Move has been called.
func (m *Map) Destroyed() bool { return m.destroyed }

// Destroy tombstones the attached stamp, then releases the contents,
// destroying nested containers. Calling Destroy again has no effect.
func (m *Map) Destroy() {
	if m.destroyed {
		return
	}
	m.teardown()
	if m.tree != nil {
		m.tree.Ascend(func(e Entry) bool {
			e.Value.release()
			return true
		})
	}
	m.tree = nil
}

// Move relocates the contents into a new map and destroys m. The new map
// has no stamp; m's stamp is tombstoned exactly as by Destroy.
func (m *Map) Move() *Map {
	dst := &Map{tree: m.items()}
	m.tree = nil
	m.teardown()
	return dst
}

func (m *Map) teardown() {
	m.destroyed = true
	if s := m.stamp; s != nil {
		m.stamp = nil
		s.tombstone()
	}
}

// Clone returns a deep copy of m. The copy is a new identity and starts
// without a stamp.
func (m *Map) Clone() *Map {
	dst := NewMap()
	m.Ascend(func(key string, v Value) bool {
		dst.tree.ReplaceOrInsert(Entry{Key: key, Value: v.Clone()})
		return true
	})
	return dst
}

// Len returns the number of entries.
func (m *Map) Len() int {
	m.mustBeLive()
	if m.tree == nil {
		return 0
	}
	return m.tree.Len()
}

// Empty reports whether m has no entries.
func (m *Map) Empty() bool { return m.Len() == 0 }

// Get returns the value stored at key.
func (m *Map) Get(key string) (Value, bool) {
	if m.Len() == 0 {
		return Value{}, false
	}
	e, ok := m.tree.Get(Entry{Key: key})
	return e.Value, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Count returns 1 when key is present, 0 otherwise.
func (m *Map) Count(key string) int {
	if m.Has(key) {
		return 1
	}
	return 0
}

// Keys returns all keys in order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, m.Len())
	m.Ascend(func(key string, _ Value) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Ascend calls fn for every entry in key order until fn returns false.
func (m *Map) Ascend(fn func(key string, v Value) bool) {
	if m.Len() == 0 {
		return
	}
	m.tree.Ascend(func(e Entry) bool {
		return fn(e.Key, e.Value)
	})
}

// All iterates entries in key order.
func (m *Map) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		m.Ascend(yield)
	}
}

// Set inserts or overwrites the value at key. Set never bumps the stamp;
// a nested container being overwritten is destroyed.
func (m *Map) Set(key string, v Value) {
	prev, replaced := m.items().ReplaceOrInsert(Entry{Key: key, Value: v})
	if replaced && !prev.Value.sameContainer(v) {
		prev.Value.release()
	}
}

// Insert stores v at key only when key is absent and reports whether it did.
func (m *Map) Insert(key string, v Value) bool {
	if m.Has(key) {
		return false
	}
	m.items().ReplaceOrInsert(Entry{Key: key, Value: v})
	return true
}

// InsertAll inserts every entry whose key is absent and returns how many
// were inserted.
func (m *Map) InsertAll(entries ...Entry) int {
	n := 0
	for _, e := range entries {
		if m.Insert(e.Key, e.Value) {
			n++
		}
	}
	return n
}

// Assign replaces the contents of m with a deep copy of src.
func (m *Map) Assign(src *Map) {
	if m == src {
		m.mutate()
		return
	}
	copied := src.Clone()
	m.mutate()
	m.replaceTree(copied.tree)
}

// MoveAssign replaces the contents of m with those of src, leaving src
// empty. Both stamps are bumped.
func (m *Map) MoveAssign(src *Map) {
	m.mutate()
	if m == src {
		return
	}
	src.mutate()
	tree := src.items()
	src.tree = newTree()
	m.replaceTree(tree)
}

// AssignEntries replaces the contents of m with entries.
func (m *Map) AssignEntries(entries ...Entry) {
	m.mutate()
	tree := newTree()
	for _, e := range entries {
		tree.ReplaceOrInsert(e)
	}
	m.replaceTree(tree)
}

func (m *Map) replaceTree(tree *btree.BTreeG[Entry]) {
	old := m.items()
	m.tree = tree
	old.Ascend(func(e Entry) bool {
		e.Value.release()
		return true
	})
}

// Clear removes all entries.
func (m *Map) Clear() {
	m.mutate()
	m.replaceTree(newTree())
}

// Erase removes key and returns the number of entries removed.
func (m *Map) Erase(key string) int {
	m.mutate()
	e, ok := m.items().Delete(Entry{Key: key})
	if !ok {
		return 0
	}
	e.Value.release()
	return 1
}

// EraseAt removes the entry at c and returns the position following it.
func (m *Map) EraseAt(c Cursor) Cursor {
	m.mutate()
	if c.end {
		return m.End()
	}
	if e, ok := m.items().Delete(Entry{Key: c.key}); ok {
		e.Value.release()
	}
	return m.UpperBound(c.key)
}

// EraseRange removes entries in [first, last) and returns last.
func (m *Map) EraseRange(first, last Cursor) Cursor {
	m.mutate()
	if first.end {
		return m.End()
	}
	var doomed []Entry
	collect := func(e Entry) bool {
		doomed = append(doomed, e)
		return true
	}
	tree := m.items()
	if last.end {
		tree.AscendGreaterOrEqual(Entry{Key: first.key}, collect)
	} else {
		tree.AscendRange(Entry{Key: first.key}, Entry{Key: last.key}, collect)
	}
	for _, e := range doomed {
		tree.Delete(e)
		e.Value.release()
	}
	if last.end {
		return m.End()
	}
	return m.LowerBound(last.key)
}

// Swap exchanges the contents of m and other. Both stamps are bumped and,
// unless either owns its container, exchanged as well so that each stamp
// keeps watching the data it watched before.
func (m *Map) Swap(other *Map) {
	m.mustBeLive()
	other.mustBeLive()
	m.mutate()
	if m == other {
		return
	}
	other.mutate()
	m.tree, other.tree = other.items(), m.items()
	if !exchangeable(m.stamp, other.stamp) {
		return
	}
	m.stamp, other.stamp = other.stamp, m.stamp
	if m.stamp != nil {
		m.stamp.rebind(m)
	}
	if other.stamp != nil {
		other.stamp.rebind(other)
	}
}

// Equal reports whether both maps hold equal entries.
func (m *Map) Equal(other *Map) bool {
	if m == other {
		return true
	}
	if m == nil || other == nil || m.Len() != other.Len() {
		return false
	}
	equal := true
	m.Ascend(func(key string, v Value) bool {
		ov, ok := other.Get(key)
		equal = ok && v.Equal(ov)
		return equal
	})
	return equal
}

// GetIfSet stores the value at key into out when key is present and holds
// a payload readable as T (see As). It reports whether out was written.
func GetIfSet[T any](m *Map, key string, out *T) bool {
	if out == nil {
		return false
	}
	v, ok := m.Get(key)
	if !ok {
		return false
	}
	p, ok := As[T](v)
	if !ok {
		return false
	}
	*out = p
	return true
}

// SetDefault reads or initializes key. When key holds a payload readable
// as T, *value is overwritten with it and SetDefault returns true. Otherwise
// *value is inserted at key (an existing entry of another type is kept) and
// SetDefault returns false. A value SetDefault inserted is always read back
// by the next SetDefault or GetIfSet with the same T.
func SetDefault[T any](m *Map, key string, value *T) bool {
	if value == nil {
		return false
	}
	if GetIfSet(m, key, value) {
		return true
	}
	v, err := ValueOf(*value)
	if err != nil {
		return false
	}
	if !m.Insert(key, v) {
		switch any(*value).(type) {
		case map[string]any, []any:
			v.Destroy()
		}
	}
	return false
}
