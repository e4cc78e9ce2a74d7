package tracked

// Cursor is a position in a Map, identified by key. The end position
// follows the last entry.
//
// A cursor keeps no reference into the map's storage, but like any position
// it is only meaningful until the next invalidating operation.
type Cursor struct {
	m   *Map
	key string
	end bool
}

// AtEnd reports whether c is the end position.
func (c Cursor) AtEnd() bool { return c.end }

// Key returns the key at c, or "" at the end position.
func (c Cursor) Key() string { return c.key }

// Value returns the value at c; null at the end or when the key is gone.
func (c Cursor) Value() Value {
	if c.end {
		return Value{}
	}
	v, _ := c.m.Get(c.key)
	return v
}

// Next returns the position following c.
func (c Cursor) Next() Cursor {
	if c.end {
		return c
	}
	return c.m.UpperBound(c.key)
}

// Equal reports whether both cursors denote the same position.
func (c Cursor) Equal(other Cursor) bool {
	if c.end || other.end {
		return c.end == other.end && c.m == other.m
	}
	return c.m == other.m && c.key == other.key
}

// Begin returns the position of the smallest key.
func (m *Map) Begin() Cursor {
	if m.Len() == 0 {
		return m.End()
	}
	e, _ := m.tree.Min()
	return Cursor{m: m, key: e.Key}
}

// End returns the position past the last entry.
func (m *Map) End() Cursor {
	return Cursor{m: m, end: true}
}

// Find returns the position of key, or End when absent.
func (m *Map) Find(key string) Cursor {
	if !m.Has(key) {
		return m.End()
	}
	return Cursor{m: m, key: key}
}

// LowerBound returns the first position whose key is not less than key.
func (m *Map) LowerBound(key string) Cursor {
	c := m.End()
	if m.Len() == 0 {
		return c
	}
	m.tree.AscendGreaterOrEqual(Entry{Key: key}, func(e Entry) bool {
		c = Cursor{m: m, key: e.Key}
		return false
	})
	return c
}

// UpperBound returns the first position whose key is greater than key.
func (m *Map) UpperBound(key string) Cursor {
	c := m.End()
	if m.Len() == 0 {
		return c
	}
	m.tree.AscendGreaterOrEqual(Entry{Key: key}, func(e Entry) bool {
		if e.Key == key {
			return true
		}
		c = Cursor{m: m, key: e.Key}
		return false
	})
	return c
}

// EqualRange returns the bounds of the entries matching key.
func (m *Map) EqualRange(key string) (Cursor, Cursor) {
	return m.LowerBound(key), m.UpperBound(key)
}
