package handle

import "github.com/viant/tracked-mcp/tracked"

// Handle aliases a tracked container through its stamp. It never holds the
// container directly; every access resolves it through the stamp.
type Handle struct {
	stamp    *tracked.Stamp
	released bool
}

// Acquire returns a handle on m, creating m's stamp when needed. Handles
// acquired on the same map share its stamp; the stamp detaches from m only
// when the last of them is released.
func Acquire(m *tracked.Map) *Handle {
	return hold(m.GetOrCreateStamp())
}

// AcquireSequence returns a handle on s, creating s's stamp when needed.
func AcquireSequence(s *tracked.Sequence) *Handle {
	return hold(s.GetOrCreateStamp())
}

func hold(stamp *tracked.Stamp) *Handle {
	stamp.Retain()
	return &Handle{stamp: stamp}
}

// New returns a handle owning a fresh, empty map.
func New() *Handle {
	return hold(tracked.NewOwningMapStamp())
}

// NewSequence returns a handle owning a fresh, empty sequence.
func NewSequence() *Handle {
	return hold(tracked.NewOwningSequenceStamp())
}

// NewFrom returns a handle owning a map that takes over the contents of src;
// src is left empty.
func NewFrom(src *tracked.Map) *Handle {
	return hold(tracked.NewOwningMapStampFrom(src))
}

// NewSequenceFrom is the sequence counterpart of NewFrom.
func NewSequenceFrom(src *tracked.Sequence) *Handle {
	return hold(tracked.NewOwningSequenceStampFrom(src))
}

// Stamp returns the underlying stamp.
func (h *Handle) Stamp() *tracked.Stamp { return h.stamp }

// Version returns the live stamp version, or tracked.Tombstone once the
// container is gone or the handle released.
func (h *Handle) Version() int64 {
	if h.released {
		return tracked.Tombstone
	}
	return h.stamp.Version()
}

// Owning reports whether the handle owns its container.
func (h *Handle) Owning() bool { return !h.released && h.stamp.IsOwning() }

// Released reports whether Release has been called.
func (h *Handle) Released() bool { return h.released }

// Validate compares the live version with seen. It returns the live
// version and true only when the container is alive and unchanged since
// seen was cached.
func (h *Handle) Validate(seen int64) (int64, bool) {
	return Validate(h.Version(), seen)
}

// Validate implements the stale check against an already read version.
func Validate(live, seen int64) (int64, bool) {
	if live == tracked.Tombstone || live != seen {
		return live, false
	}
	return live, true
}

// Err returns nil while the container is reachable, or the reason it is not.
func (h *Handle) Err() error {
	if h.released {
		return ErrReleased
	}
	if h.stamp.IsTombstoned() {
		return ErrDestroyed
	}
	return nil
}

// Map resolves the watched map.
func (h *Handle) Map() (*tracked.Map, error) {
	if err := h.Err(); err != nil {
		return nil, err
	}
	m, ok := h.stamp.Map()
	if !ok {
		return nil, ErrKind
	}
	return m, nil
}

// Sequence resolves the watched sequence.
func (h *Handle) Sequence() (*tracked.Sequence, error) {
	if err := h.Err(); err != nil {
		return nil, err
	}
	s, ok := h.stamp.Sequence()
	if !ok {
		return nil, ErrKind
	}
	return s, nil
}

// Release drops h's hold on the stamp. With the last hold gone an owned
// container is destroyed and an aliased one merely forgets the stamp.
// Further access through h fails with ErrReleased. Release is idempotent.
func (h *Handle) Release() {
	if h.released {
		return
	}
	h.released = true
	h.stamp.Release()
}
