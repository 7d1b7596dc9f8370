//go:build unit

package indexedheap

import (
	"errors"
	"github.com/gostonefire/collections"
	"github.com/gostonefire/collections/internal/conf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"maps"
	"math"
	"math/rand"
	"slices"
	"testing"
)

// requireValid - Fails the test if any heap invariant is broken
func requireValid[V any](t *testing.T, h *IndexedHeap[V]) {
	t.Helper()
	require.NoError(t, h.a.isConsistent(), "pq and qp consistent")
	require.NoError(t, h.isMinHeap(), "heap ordered")
}

func TestNew(t *testing.T) {
	t.Run("rejects invalid configuration", func(t *testing.T) {
		// Execute
		h1, err1 := New[int](-1)
		h2, err2 := NewWithComparator[int](10, nil)

		// Check
		assert.Nil(t, h1, "no heap for negative capacity")
		assert.True(t, errors.Is(err1, collections.InvalidConfiguration{}), "negative capacity rejected")
		assert.Nil(t, h2, "no heap for nil comparator")
		assert.True(t, errors.Is(err2, collections.InvalidConfiguration{}), "nil comparator rejected")
	})

	t.Run("zero capacity grows on demand", func(t *testing.T) {
		// Prepare
		h, err := New[int](0)
		require.NoError(t, err, "heap created")

		// Execute
		_, err = h.Put(1000, 1)

		// Check
		assert.NoError(t, err, "put succeeds")
		assert.True(t, h.ContainsKey(1000), "index present")
		assert.GreaterOrEqual(t, len(h.a.pq), 1001, "index addressable")
		requireValid(t, h)
	})
}

func TestIndexedHeap_TopAndPop(t *testing.T) {
	t.Run("top follows smallest value", func(t *testing.T) {
		// Prepare
		h, err := New[int](10)
		require.NoError(t, err, "heap created")

		// Execute
		_, err1 := h.Put(5, 10)
		_, err2 := h.Put(3, 20)
		_, err3 := h.Put(8, 5)

		// Check
		require.NoError(t, errors.Join(err1, err2, err3), "puts succeed")
		assert.Equal(t, 5, h.Top(), "smallest value on top")
		assert.Equal(t, 8, h.TopIndex(), "index of smallest value")
		assert.Equal(t, 5, h.PopTop(), "pop returns smallest")
		assert.Equal(t, 10, h.Top(), "next smallest on top")
		assert.Equal(t, 5, h.TopIndex(), "index of next smallest")
		assert.False(t, h.ContainsKey(8), "popped index gone")
		requireValid(t, h)
	})

	t.Run("empty heap returns default value", func(t *testing.T) {
		// Prepare
		h, err := New[int](0, WithDefaultValue(-1))
		require.NoError(t, err, "heap created")

		// Check
		assert.Equal(t, -1, h.Top(), "default top")
		assert.Equal(t, -1, h.PopTop(), "default pop")
		assert.Equal(t, -1, h.TopIndex(), "no top index")
		assert.Equal(t, -1, h.Get(3), "default for absent index")
		assert.Equal(t, -1, h.Remove(3), "default for removing absent index")
		assert.Equal(t, -1, h.Remove(1<<20), "default for index beyond capacity")
		assert.Equal(t, -1, h.DefaultValue(), "default value")
		assert.True(t, h.IsEmpty(), "still empty")
	})

	t.Run("pops in non-decreasing order", func(t *testing.T) {
		// Prepare
		rnd := rand.New(rand.NewSource(11))
		h, err := New[int](0)
		require.NoError(t, err, "heap created")
		var inserted []int
		for i := 0; i < 2000; i++ {
			v := rnd.Intn(500)
			_, err = h.Put(i, v)
			require.NoError(t, err, "put")
			inserted = append(inserted, v)
		}

		// Execute
		var popped []int
		for !h.IsEmpty() {
			popped = append(popped, h.PopTop())
		}

		// Check
		assert.True(t, slices.IsSorted(popped), "non-decreasing order")
		slices.Sort(inserted)
		assert.Equal(t, inserted, popped, "permutation of inserted values")
	})

	t.Run("comparator overrides natural order", func(t *testing.T) {
		// Prepare
		h, err := NewWithComparator[string](4, func(a, b string) int { return len(b) - len(a) })
		require.NoError(t, err, "heap created")

		// Execute
		_, _ = h.Put(0, "a")
		_, _ = h.Put(1, "abc")
		_, _ = h.Put(2, "ab")

		// Check
		assert.Equal(t, "abc", h.PopTop(), "longest first")
		assert.Equal(t, "ab", h.PopTop(), "then shorter")
		assert.Equal(t, "a", h.PopTop(), "shortest last")
	})
}

func TestIndexedHeap_Put(t *testing.T) {
	t.Run("replacing a value moves it", func(t *testing.T) {
		// Prepare
		h, err := From(map[int]int{0: 10, 1: 20, 2: 30, 3: 40})
		require.NoError(t, err, "heap created")

		// Execute
		p1, err1 := h.Put(3, 1)
		p2, err2 := h.Put(3, 50)

		// Check
		require.NoError(t, errors.Join(err1, err2), "puts succeed")
		assert.Equal(t, 40, p1, "previous value")
		assert.Equal(t, 1, p2, "previous value after first replace")
		assert.Equal(t, 50, h.Get(3), "replaced value")
		assert.Equal(t, 4, h.Size(), "size unchanged")
		requireValid(t, h)

		var popped []int
		for !h.IsEmpty() {
			popped = append(popped, h.PopTop())
		}
		assert.Equal(t, []int{10, 20, 30, 50}, popped, "order after replace")
	})

	t.Run("rejects negative index", func(t *testing.T) {
		// Prepare
		h, err := New[int](4)
		require.NoError(t, err, "heap created")

		// Execute
		_, err = h.Put(-1, 1)

		// Check
		assert.True(t, errors.Is(err, collections.InvalidIndex{}), "negative index rejected")
		assert.True(t, h.IsEmpty(), "nothing added")
	})

	t.Run("new entry returns default value", func(t *testing.T) {
		// Prepare
		h, err := New[int](4, WithDefaultValue(-7))
		require.NoError(t, err, "heap created")

		// Execute
		previous, err := h.Put(2, 1)

		// Check
		assert.NoError(t, err, "put succeeds")
		assert.Equal(t, -7, previous, "default as previous value")
	})

	t.Run("logs buffer growth", func(t *testing.T) {
		// Prepare
		core, logs := observer.New(zap.DebugLevel)
		h, err := New[int](2, WithLogger[int](zap.New(core)))
		require.NoError(t, err, "heap created")

		// Execute
		_, err = h.Put(10, 1)

		// Check
		require.NoError(t, err, "put succeeds")
		entries := logs.FilterMessage("indexed heap resized").All()
		require.Len(t, entries, 1, "one resize logged")
		assert.Equal(t, int64(2), entries[0].ContextMap()["old"], "old length logged")
		assert.Equal(t, int64(17), entries[0].ContextMap()["new"], "new length logged")
	})

	t.Run("refuses indices beyond maximum buffer size", func(t *testing.T) {
		// Prepare
		core, logs := observer.New(zap.DebugLevel)
		h, err := From(map[int]int{1: 10, 2: 20}, WithLogger[int](zap.New(core)))
		require.NoError(t, err, "heap created")
		capacity := len(h.a.pq)

		for _, index := range []int{conf.MaxHeapArrayLength, conf.MaxHeapArrayLength + 1, math.MaxInt} {
			// Execute
			_, err = h.Put(index, 1)

			// Check
			assert.True(t, errors.Is(err, collections.BufferAllocationError{}), "allocation error for %d", index)
			assert.False(t, h.ContainsKey(index), "index %d not added", index)
			assert.Equal(t, 2, h.Size(), "size unchanged")
			assert.Equal(t, 10, h.Top(), "top unchanged")
			assert.Equal(t, capacity, len(h.a.pq), "buffers unchanged")
			requireValid(t, h)
		}
		assert.Len(t, logs.FilterMessage("indexed heap can not grow").All(), 3, "refusals logged")
		assert.Zero(t, logs.FilterMessage("indexed heap resized").Len(), "no resize logged")
	})
}

func TestIndexedHeap_Consistency(t *testing.T) {
	t.Run("index mappings stay consistent under random operations", func(t *testing.T) {
		// Prepare
		rnd := rand.New(rand.NewSource(5))
		h, err := New[int](8)
		require.NoError(t, err, "heap created")
		reference := make(map[int]int)

		// Execute and Check
		for i := 0; i < 5000; i++ {
			index := rnd.Intn(300)
			switch op := rnd.Intn(10); {
			case op < 5:
				v := rnd.Intn(1000)
				_, err = h.Put(index, v)
				require.NoError(t, err, "put")
				reference[index] = v
			case op < 8:
				expected, ok := reference[index]
				removed := h.Remove(index)
				if ok {
					require.Equal(t, expected, removed, "removed value of %d", index)
				}
				delete(reference, index)
			default:
				if !h.IsEmpty() {
					top := h.TopIndex()
					require.Equal(t, reference[top], h.PopTop(), "popped value")
					delete(reference, top)
				}
			}
			requireValid(t, h)
			require.Equal(t, len(reference), h.Size(), "size matches reference")
		}
		assert.Equal(t, reference, maps.Collect(h.All()), "entries match reference")
	})
}

// priority - Mutable value used to test in place priority updates
type priority struct {
	value int
}

func TestIndexedHeap_UpdatePriority(t *testing.T) {
	t.Run("restores order after in place modification", func(t *testing.T) {
		// Prepare
		h, err := NewWithComparator[*priority](4, func(a, b *priority) int { return a.value - b.value })
		require.NoError(t, err, "heap created")
		values := []*priority{{value: 10}, {value: 20}, {value: 30}, {value: 40}}
		for i, p := range values {
			_, err = h.Put(i, p)
			require.NoError(t, err, "put")
		}

		// Execute and Check
		values[3].value = 1
		h.UpdatePriority(3)
		requireValid(t, h)
		assert.Equal(t, 3, h.TopIndex(), "decreased value on top")

		values[3].value = 100
		h.UpdateTopPriority()
		requireValid(t, h)
		assert.Equal(t, 0, h.TopIndex(), "increased top value sunk")

		h.UpdatePriority(42)
		requireValid(t, h)
	})

	t.Run("rebuilds order after many modifications", func(t *testing.T) {
		// Prepare
		h, err := NewWithComparator[*priority](0, func(a, b *priority) int { return a.value - b.value })
		require.NoError(t, err, "heap created")
		values := make([]*priority, 100)
		for i := range values {
			values[i] = &priority{value: i}
			_, err = h.Put(i, values[i])
			require.NoError(t, err, "put")
		}

		// Execute
		for _, p := range values {
			p.value = -p.value
		}
		h.UpdatePriorities()

		// Check
		requireValid(t, h)
		assert.Equal(t, 99, h.TopIndex(), "previously largest now on top")
	})
}

func TestIndexedHeap_RemoveAll(t *testing.T) {
	t.Run("removes by value and by index", func(t *testing.T) {
		// Prepare
		h, err := From(map[int]int{0: 5, 1: 4, 2: 3, 3: 2, 4: 1, 5: 0})
		require.NoError(t, err, "heap created")

		// Execute
		r1 := h.RemoveAll(func(value int) bool { return value%2 == 0 })
		r2 := h.RemoveAllIndexed(func(index, _ int) bool { return index == 4 })

		// Check
		assert.Equal(t, 3, r1, "even values removed")
		assert.Equal(t, 1, r2, "index 4 removed")
		assert.ElementsMatch(t, []int{0, 2}, h.Indices(), "remaining indices")
		assert.ElementsMatch(t, []int{5, 3}, h.Values(), "remaining values")
		assert.Equal(t, 3, h.Top(), "smallest remaining on top")
		requireValid(t, h)
	})

	t.Run("panicking predicate leaves a valid heap", func(t *testing.T) {
		// Prepare
		h, err := New[int](0)
		require.NoError(t, err, "heap created")
		for i := 0; i < 50; i++ {
			_, err = h.Put(i, 50-i)
			require.NoError(t, err, "put")
		}

		// Execute
		var calls int
		assert.Panics(t, func() {
			h.RemoveAll(func(value int) bool {
				calls++
				if calls == 20 {
					panic("predicate failure")
				}
				return calls < 5 || value%3 == 0
			})
		}, "predicate panic propagates")

		// Check
		requireValid(t, h)
		assert.Less(t, h.Size(), 50, "some entries removed")
		for _, index := range h.Indices() {
			assert.Equal(t, 50-index, h.Get(index), "value of %d intact", index)
		}
	})
}

func TestIndexedHeap_ClearReleaseClone(t *testing.T) {
	t.Run("clear removes all indices", func(t *testing.T) {
		// Prepare
		h, err := From(map[int]int{1: 1, 7: 7, 30: 30})
		require.NoError(t, err, "heap created")
		capacity := len(h.a.pq)

		// Execute
		h.Clear()

		// Check
		assert.True(t, h.IsEmpty(), "empty")
		assert.False(t, h.ContainsKey(7), "index gone")
		assert.Equal(t, capacity, len(h.a.pq), "buffers kept")
		requireValid(t, h)
		_, err = h.Put(7, 3)
		assert.NoError(t, err, "reusable after clear")
		assert.Equal(t, 3, h.Top(), "new value on top")
	})

	t.Run("release shrinks buffers", func(t *testing.T) {
		// Prepare
		h, err := From(map[int]int{1000: 1})
		require.NoError(t, err, "heap created")

		// Execute
		h.Release()

		// Check
		assert.True(t, h.IsEmpty(), "empty")
		assert.Less(t, len(h.a.pq), 1000, "buffers shrunk")
		requireValid(t, h)
	})

	t.Run("clone is independent", func(t *testing.T) {
		// Prepare
		h, err := From(map[int]int{1: 10, 2: 20})
		require.NoError(t, err, "heap created")

		// Execute
		c := h.Clone()
		_, _ = c.Put(3, 5)
		h.Remove(1)

		// Check
		assert.Equal(t, 1, h.Size(), "original size")
		assert.Equal(t, 3, c.Size(), "clone size")
		assert.Equal(t, 5, c.Top(), "clone top")
		assert.Equal(t, 20, h.Top(), "original top")
		assert.True(t, c.ContainsKey(1), "clone keeps removed index")
		requireValid(t, h)
		requireValid(t, c)
	})
}

func TestIndexedHeap_Iteration(t *testing.T) {
	t.Run("visits entries in heap order", func(t *testing.T) {
		// Prepare
		h, err := From(map[int]int{4: 40, 2: 20, 9: 90})
		require.NoError(t, err, "heap created")

		// Execute
		var indices []int
		h.ForEach(func(index, value int) bool {
			assert.Equal(t, index*10, value, "value matches index")
			indices = append(indices, index)
			return true
		})

		// Check
		assert.Equal(t, h.Indices(), indices, "same order as Indices")
		assert.Equal(t, 2, indices[0], "top first")
		assert.Equal(t, "[2=>20", h.String()[:6], "string starts with top")
	})
}
