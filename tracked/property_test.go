package tracked

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// mapOp applies one operation and reports whether it invalidates iterators.
type mapOp func(m *Map, n int) bool

var mapOps = []mapOp{
	func(m *Map, n int) bool { m.Set(fmt.Sprint(n%7), Int(n)); return false },
	func(m *Map, n int) bool { m.Insert(fmt.Sprint(n%5), String("v")); return false },
	func(m *Map, n int) bool { m.Get(fmt.Sprint(n % 7)); return false },
	func(m *Map, n int) bool { m.LowerBound(fmt.Sprint(n % 7)); return false },
	func(m *Map, n int) bool { m.Erase(fmt.Sprint(n % 7)); return true },
	func(m *Map, n int) bool { m.EraseAt(m.Begin()); return true },
	func(m *Map, n int) bool { m.EraseRange(m.Begin(), m.Find(fmt.Sprint(n%7))); return true },
	func(m *Map, n int) bool { m.Clear(); return true },
	func(m *Map, n int) bool { m.Assign(NewMapOf(Entry{Key: "x", Value: Int(n)})); return true },
	func(m *Map, n int) bool { m.Swap(NewMapOf(Entry{Key: "y", Value: Int(n)})); return true },
	func(m *Map, n int) bool {
		other := NewMapOf(Entry{Key: "z", Value: Int(n)})
		other.GetOrCreateStamp()
		m.Swap(other)
		return true
	},
}

// applyOps runs ops against the map watched by stamp. A swap hands the
// stamp to the other map, so each op resolves the current map first.
func applyOps(stamp *Stamp, ops []int) int64 {
	var invalidating int64
	for i, code := range ops {
		m, _ := stamp.Map()
		if mapOps[code](m, i) {
			invalidating++
		}
	}
	return invalidating
}

// TestMap_VersionCountsInvalidatingOperations verifies that the stamp
// version equals 1 plus the number of invalidating calls.
func TestMap_VersionCountsInvalidatingOperations(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("version == 1 + invalidating operations", prop.ForAll(
		func(ops []int) bool {
			stamp := NewMap().GetOrCreateStamp()
			expected := 1 + applyOps(stamp, ops)
			return stamp.Version() == expected && stamp.IsAttached()
		},
		gen.SliceOf(gen.IntRange(0, len(mapOps)-1)),
	))

	properties.Property("destroy always tombstones", prop.ForAll(
		func(ops []int) bool {
			stamp := NewMap().GetOrCreateStamp()
			applyOps(stamp, ops)
			m, ok := stamp.Map()
			if !ok {
				return false
			}
			m.Destroy()
			return stamp.Version() == Tombstone && !stamp.IsAttached() && m.Destroyed()
		},
		gen.SliceOf(gen.IntRange(0, len(mapOps)-1)),
	))

	properties.TestingRun(t)
}
