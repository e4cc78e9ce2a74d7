package tracked

import (
	"fmt"
	"iter"
	"slices"
)

// Sequence is an ordered list of Values under the same stamp protocol as
// Map. Positions are indexes: Append and Set keep them valid, while
// assignment, Clear, Insert, every form of Erase, PopBack, Resize and Swap
// bump the attached stamp.
type Sequence struct {
	items     []Value
	stamp     *Stamp
	destroyed bool
}

// NewSequence returns an empty sequence.
func NewSequence() *Sequence {
	return &Sequence{}
}

// NewSequenceOf returns a sequence holding values.
func NewSequenceOf(values ...Value) *Sequence {
	return &Sequence{items: slices.Clone(values)}
}

func (s *Sequence) mustBeLive() {
	if s.destroyed {
		panic("tracked: use of destroyed sequence")
	}
}

func (s *Sequence) mutate() {
	if s.stamp != nil {
		s.stamp.bump()
	}
}

// GetOrCreateStamp returns the attached stamp, creating one on first use.
func (s *Sequence) GetOrCreateStamp() *Stamp {
	s.mustBeLive()
	if s.stamp == nil {
		s.stamp = newAttachedStamp(s)
	}
	return s.stamp
}

// Stamp returns the attached stamp or nil.
func (s *Sequence) Stamp() *Stamp { return s.stamp }

func (s *Sequence) detachStamp(st *Stamp) {
	if s.stamp == st {
		s.stamp = nil
	}
}

// Destroyed reports whether Destroy or Move has been called.
func (s *Sequence) Destroyed() bool { return s.destroyed }

// Destroy tombstones the attached stamp and releases the contents.
func (s *Sequence) Destroy() {
	if s.destroyed {
		return
	}
	s.teardown()
	releaseAll(s.items)
	s.items = nil
}

// Move relocates the contents into a new sequence and destroys s.
func (s *Sequence) Move() *Sequence {
	s.mustBeLive()
	dst := &Sequence{items: s.items}
	s.items = nil
	s.teardown()
	return dst
}

func (s *Sequence) teardown() {
	s.destroyed = true
	if st := s.stamp; st != nil {
		s.stamp = nil
		st.tombstone()
	}
}

// Clone returns a deep copy without a stamp.
func (s *Sequence) Clone() *Sequence {
	s.mustBeLive()
	dst := &Sequence{items: make([]Value, len(s.items))}
	for i, v := range s.items {
		dst.items[i] = v.Clone()
	}
	return dst
}

// Len returns the number of values.
func (s *Sequence) Len() int {
	s.mustBeLive()
	return len(s.items)
}

// Empty reports whether s has no values.
func (s *Sequence) Empty() bool { return s.Len() == 0 }

// At returns the value at index i.
func (s *Sequence) At(i int) (Value, bool) {
	if i < 0 || i >= s.Len() {
		return Value{}, false
	}
	return s.items[i], true
}

// All iterates values in order.
func (s *Sequence) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i := 0; i < s.Len(); i++ {
			if !yield(i, s.items[i]) {
				return
			}
		}
	}
}

// Values returns a shallow copy of the contents.
func (s *Sequence) Values() []Value {
	s.mustBeLive()
	return slices.Clone(s.items)
}

// Append adds values at the end.
func (s *Sequence) Append(values ...Value) {
	s.mustBeLive()
	s.items = append(s.items, values...)
}

// Set overwrites the value at index i.
func (s *Sequence) Set(i int, v Value) error {
	if err := s.checkIndex(i, s.Len()); err != nil {
		return err
	}
	prev := s.items[i]
	s.items[i] = v
	if !prev.sameContainer(v) {
		prev.release()
	}
	return nil
}

// Insert places values before index i; i may equal Len.
func (s *Sequence) Insert(i int, values ...Value) error {
	if err := s.checkIndex(i, s.Len()+1); err != nil {
		return err
	}
	s.mutate()
	s.items = slices.Insert(s.items, i, values...)
	return nil
}

// Erase removes the value at index i.
func (s *Sequence) Erase(i int) error {
	return s.EraseRange(i, i+1)
}

// EraseRange removes values in [i, j).
func (s *Sequence) EraseRange(i, j int) error {
	n := s.Len()
	if i < 0 || j > n || i > j {
		return fmt.Errorf("tracked: range [%d:%d] out of bounds for length %d", i, j, n)
	}
	s.mutate()
	releaseAll(s.items[i:j])
	s.items = slices.Delete(s.items, i, j)
	return nil
}

// PopBack removes and returns the last value. A nested container in the
// returned value is handed to the caller rather than destroyed.
func (s *Sequence) PopBack() (Value, bool) {
	n := s.Len()
	if n == 0 {
		return Value{}, false
	}
	s.mutate()
	v := s.items[n-1]
	s.items[n-1] = Value{}
	s.items = s.items[:n-1]
	return v, true
}

// Resize truncates or pads the sequence with null values.
func (s *Sequence) Resize(n int) {
	if n < 0 {
		n = 0
	}
	s.mutate()
	if n < len(s.items) {
		releaseAll(s.items[n:])
		clear(s.items[n:])
		s.items = s.items[:n]
		return
	}
	s.items = append(s.items, make([]Value, n-len(s.items))...)
}

// Clear removes all values.
func (s *Sequence) Clear() {
	s.mutate()
	s.mustBeLive()
	releaseAll(s.items)
	s.items = nil
}

// Assign replaces the contents with a deep copy of src.
func (s *Sequence) Assign(src *Sequence) {
	if s == src {
		s.mutate()
		return
	}
	copied := src.Clone()
	s.mutate()
	releaseAll(s.items)
	s.items = copied.items
}

// MoveAssign takes the contents of src, leaving it empty. Both stamps are
// bumped.
func (s *Sequence) MoveAssign(src *Sequence) {
	s.mutate()
	if s == src {
		return
	}
	src.mustBeLive()
	src.mutate()
	releaseAll(s.items)
	s.items, src.items = src.items, nil
}

// Swap exchanges contents and, unless either stamp owns its container, the
// stamps themselves.
func (s *Sequence) Swap(other *Sequence) {
	s.mustBeLive()
	other.mustBeLive()
	s.mutate()
	if s == other {
		return
	}
	other.mutate()
	s.items, other.items = other.items, s.items
	if !exchangeable(s.stamp, other.stamp) {
		return
	}
	s.stamp, other.stamp = other.stamp, s.stamp
	if s.stamp != nil {
		s.stamp.rebind(s)
	}
	if other.stamp != nil {
		other.stamp.rebind(other)
	}
}

// Equal reports element-wise equality.
func (s *Sequence) Equal(other *Sequence) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil || s.Len() != other.Len() {
		return false
	}
	for i, v := range s.items {
		if !v.Equal(other.items[i]) {
			return false
		}
	}
	return true
}

func (s *Sequence) checkIndex(i, limit int) error {
	if i < 0 || i >= limit {
		return fmt.Errorf("tracked: index %d out of bounds for length %d", i, s.Len())
	}
	return nil
}

func releaseAll(values []Value) {
	for _, v := range values {
		v.release()
	}
}
