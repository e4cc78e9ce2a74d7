package store

import (
	"errors"
	"fmt"

	"github.com/viant/tracked-mcp/internal/syncmap"
	"github.com/viant/tracked-mcp/tracked"
)

// ErrNotFound reports an unknown container name.
var ErrNotFound = errors.New("container not found")

// ErrExists reports a relocation onto an existing name.
var ErrExists = errors.New("container already exists")

// Store holds named maps and sequences. The registry is safe for concurrent
// use; the containers themselves are not and must be accessed under the
// handle registry's Do.
type Store struct {
	maps      *syncmap.Map[*tracked.Map]
	sequences *syncmap.Map[*tracked.Sequence]
}

// New creates an empty store.
func New() *Store {
	return &Store{
		maps:      syncmap.New[*tracked.Map](),
		sequences: syncmap.New[*tracked.Sequence](),
	}
}

// PutMap stores m under name, destroying whatever container held the name.
func (s *Store) PutMap(name string, m *tracked.Map) {
	s.Drop(name)
	s.maps.Set(name, m)
}

// PutSequence stores seq under name, destroying whatever container held the name.
func (s *Store) PutSequence(name string, seq *tracked.Sequence) {
	s.Drop(name)
	s.sequences.Set(name, seq)
}

// Map returns the map stored under name.
func (s *Store) Map(name string) (*tracked.Map, error) {
	if m, ok := s.maps.Lookup(name); ok {
		return m, nil
	}
	return nil, fmt.Errorf("%w: map %v", ErrNotFound, name)
}

// Sequence returns the sequence stored under name.
func (s *Store) Sequence(name string) (*tracked.Sequence, error) {
	if seq, ok := s.sequences.Lookup(name); ok {
		return seq, nil
	}
	return nil, fmt.Errorf("%w: sequence %v", ErrNotFound, name)
}

// Drop removes and destroys the container stored under name.
func (s *Store) Drop(name string) bool {
	if m, ok := s.maps.Delete(name); ok {
		m.Destroy()
		return true
	}
	if seq, ok := s.sequences.Delete(name); ok {
		seq.Destroy()
		return true
	}
	return false
}

// Relocate moves the container stored under from into a fresh container
// stored under to. The old identity is destroyed, so references to it go
// stale while the data survives under the new name.
func (s *Store) Relocate(from, to string) error {
	if from == to {
		return nil
	}
	if s.has(to) {
		return fmt.Errorf("%w: %v", ErrExists, to)
	}
	if m, ok := s.maps.Delete(from); ok {
		s.maps.Set(to, m.Move())
		return nil
	}
	if seq, ok := s.sequences.Delete(from); ok {
		s.sequences.Set(to, seq.Move())
		return nil
	}
	return fmt.Errorf("%w: %v", ErrNotFound, from)
}

// Swap exchanges the contents of two containers of the same kind. Both stay
// under their names and both of their stamps are bumped.
func (s *Store) Swap(a, b string) error {
	if ma, ok := s.maps.Lookup(a); ok {
		mb, err := s.Map(b)
		if err != nil {
			return err
		}
		ma.Swap(mb)
		return nil
	}
	if sa, ok := s.sequences.Lookup(a); ok {
		sb, err := s.Sequence(b)
		if err != nil {
			return err
		}
		sa.Swap(sb)
		return nil
	}
	return fmt.Errorf("%w: %v", ErrNotFound, a)
}

// Names returns the stored map and sequence names, each sorted.
func (s *Store) Names() (maps []string, sequences []string) {
	return s.maps.IDs(), s.sequences.IDs()
}

// Clear destroys every stored container.
func (s *Store) Clear() {
	maps, sequences := s.Names()
	for _, name := range append(maps, sequences...) {
		s.Drop(name)
	}
}

func (s *Store) has(name string) bool {
	_, isMap := s.maps.Lookup(name)
	_, isSequence := s.sequences.Lookup(name)
	return isMap || isSequence
}
