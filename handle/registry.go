package handle

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/viant/tracked-mcp/internal/syncmap"
)

type iteratorEntry struct {
	handleID string
	iterator *Iterator
}

// Registry maps opaque ids to handles and iterators so that they can cross a
// process boundary. Lookups are safe for concurrent use; containers are not,
// so any code touching them (including Release) runs inside Do.
type Registry struct {
	mu        sync.Mutex
	handles   *syncmap.Map[*Handle]
	iterators *syncmap.Map[*iteratorEntry]
	limitMu   sync.Mutex
	limit     int
}

// NewRegistry creates a registry holding at most limit handles; limit <= 0
// means unbounded.
func NewRegistry(limit int) *Registry {
	return &Registry{
		handles:   syncmap.New[*Handle](),
		iterators: syncmap.New[*iteratorEntry](),
		limit:     limit,
	}
}

// Do runs fn with exclusive access to every container reachable from the
// registry.
func (r *Registry) Do(fn func() error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn()
}

// Register stores h and returns its id.
func (r *Registry) Register(h *Handle) (string, error) {
	if err := h.Err(); err != nil {
		return "", err
	}
	r.limitMu.Lock()
	defer r.limitMu.Unlock()
	if r.limit > 0 && r.handles.Len() >= r.limit {
		return "", fmt.Errorf("%w: limit %d", ErrTooManyHandles, r.limit)
	}
	id := uuid.New().String()
	r.handles.Set(id, h)
	return id, nil
}

// Lookup returns the handle registered under id.
func (r *Registry) Lookup(id string) (*Handle, error) {
	h, ok := r.handles.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownHandle, id)
	}
	return h, nil
}

// Release unregisters the handle, drops its iterators and releases it.
// A stamp shared with other handles stays attached until the last of them
// is released.
func (r *Registry) Release(id string) error {
	h, ok := r.handles.Delete(id)
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownHandle, id)
	}
	r.iterators.DeleteFunc(func(_ string, entry *iteratorEntry) bool {
		return entry.handleID == id
	})
	h.Release()
	return nil
}

// RegisterIterator stores it under a new id tied to handleID.
func (r *Registry) RegisterIterator(handleID string, it *Iterator) (string, error) {
	if _, err := r.Lookup(handleID); err != nil {
		return "", err
	}
	id := uuid.New().String()
	r.iterators.Set(id, &iteratorEntry{handleID: handleID, iterator: it})
	return id, nil
}

// LookupIterator returns the iterator registered under id.
func (r *Registry) LookupIterator(id string) (*Iterator, error) {
	entry, ok := r.iterators.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: iterator %v", ErrUnknownHandle, id)
	}
	return entry.iterator, nil
}

// ReleaseIterator forgets the iterator registered under id.
func (r *Registry) ReleaseIterator(id string) bool {
	_, ok := r.iterators.Delete(id)
	return ok
}

// Sweep releases every handle whose container is gone and returns their ids.
// Like any other container access it must run inside Do.
func (r *Registry) Sweep() []string {
	var stale []string
	for _, id := range r.handles.IDs() {
		if h, ok := r.handles.Lookup(id); ok && h.Err() != nil {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		_ = r.Release(id)
	}
	return stale
}

// Len returns the number of registered handles.
func (r *Registry) Len() int { return r.handles.Len() }

// IteratorLen returns the number of registered iterators.
func (r *Registry) IteratorLen() int { return r.iterators.Len() }

// IDs returns registered handle ids in sorted order.
func (r *Registry) IDs() []string { return r.handles.IDs() }
