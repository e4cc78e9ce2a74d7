package tracked

import "fmt"

// Tombstone is the terminal stamp version: the watched container is gone.
const Tombstone int64 = -1

// container is implemented by *Map and *Sequence.
type container interface {
	detachStamp(s *Stamp)
	Destroy()
}

// binding is the stamp's back-reference; nil once tombstoned.
type binding interface {
	target() container
}

// attached watches a container owned elsewhere.
type attached struct{ c container }

// owning watches a container the stamp allocated for itself.
type owning struct{ c container }

func (a attached) target() container { return a.c }
func (o owning) target() container   { return o.c }

// Stamp records how many invalidating operations a container has undergone
// and whether it is still alive. A container holds at most one stamp and a
// stamp watches at most one container.
//
// The container side bumps the version and tombstones it on destruction;
// the external side only reads it and eventually calls Release.
type Stamp struct {
	version int64
	link    binding
	holders int
}

func newAttachedStamp(c container) *Stamp {
	return &Stamp{version: 1, link: attached{c: c}}
}

// NewOwningMapStamp allocates a fresh Map watched and owned by the returned
// stamp. Releasing the stamp destroys the map.
func NewOwningMapStamp() *Stamp {
	m := NewMap()
	s := &Stamp{version: 1, link: owning{c: m}}
	m.stamp = s
	return s
}

// NewOwningSequenceStamp is the Sequence counterpart of NewOwningMapStamp.
func NewOwningSequenceStamp() *Stamp {
	q := NewSequence()
	s := &Stamp{version: 1, link: owning{c: q}}
	q.stamp = s
	return s
}

// NewOwningMapStampFrom is NewOwningMapStamp with the new map taking over
// the contents of src, which is left empty. The new stamp starts at version
// 1; a stamp attached to src is bumped.
func NewOwningMapStampFrom(src *Map) *Stamp {
	s := NewOwningMapStamp()
	m, _ := s.Map()
	src.mutate()
	m.tree, src.tree = src.items(), newTree()
	return s
}

// NewOwningSequenceStampFrom is the Sequence counterpart of
// NewOwningMapStampFrom.
func NewOwningSequenceStampFrom(src *Sequence) *Stamp {
	s := NewOwningSequenceStamp()
	q, _ := s.Sequence()
	src.mustBeLive()
	src.mutate()
	q.items, src.items = src.items, nil
	return s
}

// Version returns the current version, or Tombstone.
func (s *Stamp) Version() int64 { return s.version }

// IsAttached reports whether the stamp still watches a live container.
func (s *Stamp) IsAttached() bool { return s.link != nil }

// IsOwning reports whether the stamp owns the container it watches.
func (s *Stamp) IsOwning() bool {
	_, ok := s.link.(owning)
	return ok
}

// IsTombstoned reports whether the stamp reached its terminal state.
func (s *Stamp) IsTombstoned() bool { return s.version == Tombstone }

// Map returns the watched map when the stamp is attached to one.
func (s *Stamp) Map() (*Map, bool) {
	if s.link == nil {
		return nil, false
	}
	m, ok := s.link.target().(*Map)
	return m, ok
}

// Sequence returns the watched sequence when the stamp is attached to one.
func (s *Stamp) Sequence() (*Sequence, bool) {
	if s.link == nil {
		return nil, false
	}
	q, ok := s.link.target().(*Sequence)
	return q, ok
}

// Retain records one more external holder of the stamp. While more than one
// holder remains, Release only drops a holder.
func (s *Stamp) Retain() {
	if s.link != nil {
		s.holders++
	}
}

// Holders returns the number of external holders recorded by Retain.
func (s *Stamp) Holders() int { return s.holders }

// Release ends the external side of the stamp. An owning stamp destroys its
// container; an attached stamp detaches from the container, which survives.
// Either way the stamp is tombstoned afterwards. With several holders only
// the last Release does this. Release is idempotent.
func (s *Stamp) Release() {
	if s.holders > 1 {
		s.holders--
		return
	}
	s.holders = 0
	switch l := s.link.(type) {
	case owning:
		l.c.Destroy()
	case attached:
		l.c.detachStamp(s)
	case nil:
	}
	s.tombstone()
}

func (s *Stamp) String() string {
	switch s.link.(type) {
	case owning:
		return fmt.Sprintf("stamp(v%d, owning)", s.version)
	case attached:
		return fmt.Sprintf("stamp(v%d, attached)", s.version)
	}
	return "stamp(tombstoned)"
}

// bump records one invalidating operation. Containers drop their stamp
// pointer when tombstoning, so reaching a tombstoned stamp here is a bug.
func (s *Stamp) bump() {
	if s.version == Tombstone {
		panic("tracked: mutation recorded on a tombstoned stamp")
	}
	s.version++
}

func (s *Stamp) tombstone() {
	s.version = Tombstone
	s.link = nil
	s.holders = 0
}

// rebind points an attached stamp at c after a swap.
func (s *Stamp) rebind(c container) {
	s.link = attached{c: c}
}

// exchangeable reports whether two stamps may trade containers on swap.
// Owning stamps stay pinned to the container they allocated.
func exchangeable(a, b *Stamp) bool {
	return !isOwning(a) && !isOwning(b)
}

func isOwning(s *Stamp) bool {
	return s != nil && s.IsOwning()
}
