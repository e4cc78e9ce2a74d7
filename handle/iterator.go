package handle

import "github.com/viant/tracked-mcp/tracked"

// Entry is one element produced by an Iterator. Key is set for maps, Index
// for sequences.
type Entry struct {
	Key   string
	Index int
	Value tracked.Value
}

// Iterator walks a container through a handle. It remembers the version it
// was built against and the last position it produced; Next refuses to
// continue once the version moved.
type Iterator struct {
	handle  *Handle
	seen    int64
	key     string
	index   int
	started bool
}

// Iterate returns an iterator positioned before the first element.
func (h *Handle) Iterate() (*Iterator, error) {
	if err := h.Err(); err != nil {
		return nil, err
	}
	return &Iterator{handle: h, seen: h.Version()}, nil
}

// Version returns the stamp version the iterator was built against.
func (it *Iterator) Version() int64 { return it.seen }

// Handle returns the handle the iterator walks.
func (it *Iterator) Handle() *Handle { return it.handle }

// Next returns the next element. ok is false once the iteration is done.
// When the container was mutated since the iterator last synchronized, Next
// returns ErrStale and leaves the position untouched.
func (it *Iterator) Next() (entry Entry, ok bool, err error) {
	if _, valid := it.handle.Validate(it.seen); !valid {
		if err = it.handle.Err(); err != nil {
			return Entry{}, false, err
		}
		return Entry{}, false, ErrStale
	}
	if s, serr := it.handle.Sequence(); serr == nil {
		v, found := s.At(it.index)
		if !found {
			return Entry{}, false, nil
		}
		entry = Entry{Index: it.index, Value: v}
		it.index++
		return entry, true, nil
	}
	m, err := it.handle.Map()
	if err != nil {
		return Entry{}, false, err
	}
	c := m.Begin()
	if it.started {
		c = m.UpperBound(it.key)
	}
	if c.AtEnd() {
		return Entry{}, false, nil
	}
	it.key = c.Key()
	it.started = true
	return Entry{Key: it.key, Value: c.Value()}, true, nil
}

// Resync accepts the current version and re-resolves the position from the
// last key (or index) produced, so iteration continues after it.
func (it *Iterator) Resync() error {
	if err := it.handle.Err(); err != nil {
		return err
	}
	it.seen = it.handle.Version()
	return nil
}

// Rewind accepts the current version and restarts from the beginning.
func (it *Iterator) Rewind() error {
	if err := it.Resync(); err != nil {
		return err
	}
	it.key, it.index, it.started = "", 0, false
	return nil
}
