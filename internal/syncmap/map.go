package syncmap

import (
	"sort"
	"sync"
)

// Map is a thread-safe generic map structure
type Map[T any] struct {
	mux sync.RWMutex
	m   map[string]T
}

// New creates a new instance of Map
func New[T any]() *Map[T] {
	return &Map[T]{
		m: make(map[string]T),
	}
}

// Lookup retrieves an item by id and reports its presence
func (r *Map[T]) Lookup(id string) (T, bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	v, ok := r.m[id]
	return v, ok
}

// Set adds or updates an item by id
func (r *Map[T]) Set(id string, value T) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.m[id] = value
}

// Delete removes an item by id and returns it
func (r *Map[T]) Delete(id string) (T, bool) {
	r.mux.Lock()
	defer r.mux.Unlock()
	v, ok := r.m[id]
	if ok {
		delete(r.m, id)
	}
	return v, ok
}

// DeleteFunc removes every item matching fn and returns how many were removed
func (r *Map[T]) DeleteFunc(fn func(id string, value T) bool) int {
	r.mux.Lock()
	defer r.mux.Unlock()
	removed := 0
	for id, v := range r.m {
		if fn(id, v) {
			delete(r.m, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of items
func (r *Map[T]) Len() int {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return len(r.m)
}

// IDs returns all ids sorted
func (r *Map[T]) IDs() []string {
	r.mux.RLock()
	defer r.mux.RUnlock()
	ret := make([]string, 0, len(r.m))
	for id := range r.m {
		ret = append(ret, id)
	}
	sort.Strings(ret)
	return ret
}
