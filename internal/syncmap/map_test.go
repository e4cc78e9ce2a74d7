package syncmap

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	m := New[int]()
	m.Set("b", 2)
	m.Set("a", 1)

	v, ok := m.Lookup("a")
	assert.True(t, ok)
	assert.EqualValues(t, 1, v)
	assert.EqualValues(t, []string{"a", "b"}, m.IDs())

	removed, ok := m.Delete("a")
	assert.True(t, ok)
	assert.EqualValues(t, 1, removed)
	_, ok = m.Delete("a")
	assert.False(t, ok)

	m.Set("c", 3)
	assert.EqualValues(t, 1, m.DeleteFunc(func(_ string, v int) bool { return v > 2 }))
	assert.EqualValues(t, 1, m.Len())
}

func TestMapConcurrentAccess(t *testing.T) {
	m := New[int]()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				id := fmt.Sprintf("w%d_%d", worker, j)
				m.Set(id, j)
				if v, ok := m.Lookup(id); !ok || v != j {
					t.Errorf("lookup mismatch for %s: %v", id, v)
				}
			}
		}(i)
	}
	wg.Wait()
	assert.EqualValues(t, 1000, m.Len())
}
