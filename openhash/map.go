package openhash

import (
	"fmt"
	"github.com/gostonefire/collections"
	"github.com/gostonefire/collections/hashfunc"
	"golang.org/x/exp/constraints"
	"iter"
	"strings"
)

// Map - A hash map from keys of type K to values of type V. Create instances with NewMap, NewMapWithStrategy,
// MapFrom or MapFromMap, the zero value is not usable.
type Map[K any, V any] struct {
	t *table[K, V]
}

// NewMap - Returns a new map with integer keys prepared to hold expectedElements without growing.
//   - expectedElements is the number of keys expected, must be non-negative
//   - loadFactor is the share of slots that may be occupied before the map grows, between 0.01 and 1 inclusive
//   - options are optional settings such as WithLogger
//
// It returns:
//   - m is a pointer to the new Map
//   - err is an InvalidConfiguration error on bad parameters, BufferAllocationError if expectedElements is too large
func NewMap[K constraints.Integer, V any](expectedElements int, loadFactor float64, options ...Option) (m *Map[K, V], err error) {
	return NewMapWithStrategy[K, V](hashfunc.Integers[K]{}, expectedElements, loadFactor, options...)
}

// NewMapWithStrategy - Returns a new map using strategy to hash and compare keys
//   - strategy is the hashing strategy to use, it can not be nil
//   - expectedElements is the number of keys expected, must be non-negative
//   - loadFactor is the share of slots that may be occupied before the map grows, between 0.01 and 1 inclusive
//   - options are optional settings such as WithLogger
func NewMapWithStrategy[K any, V any](
	strategy hashfunc.HashingStrategy[K],
	expectedElements int,
	loadFactor float64,
	options ...Option,
) (
	m *Map[K, V],
	err error,
) {
	t, err := newTable[K, V](strategy, expectedElements, loadFactor, options)
	if err != nil {
		return
	}

	m = &Map[K, V]{t: t}
	return
}

// MapFrom - Returns a new map with default load factor where keys[i] maps to values[i].
// Later duplicates of a key overwrite earlier ones.
func MapFrom[K constraints.Integer, V any](keys []K, values []V) (m *Map[K, V], err error) {
	if len(keys) != len(values) {
		err = collections.NewInvalidConfiguration("arrays of keys and values must have an identical length: %d != %d",
			len(keys), len(values))
		return
	}

	m, err = NewMap[K, V](len(keys), DefaultLoadFactor)
	if err != nil {
		return
	}

	for i, key := range keys {
		if _, err = m.Put(key, values[i]); err != nil {
			return
		}
	}
	return
}

// MapFromMap - Returns a new map with the same hashing strategy, load factor and entries as other
func MapFromMap[K any, V any](other *Map[K, V]) (m *Map[K, V], err error) {
	m, err = NewMapWithStrategy[K, V](other.t.strategy, other.Size(), other.t.loadFactor, WithLogger(other.t.logger))
	if err != nil {
		return
	}

	_, err = m.PutAll(other)
	return
}

// Put - Sets value for key, replacing any existing value.
// It returns:
//   - previous is the value that was replaced, or the zero value of V if key was not present
//   - err is a BufferAllocationError if the map had to grow and could not, the map is then unchanged
func (M *Map[K, V]) Put(key K, value V) (previous V, err error) {
	previous, _, err = M.t.put(key, value, true)
	return
}

// PutIfAbsent - Sets value for key only if key is not present, it returns true if value was set
func (M *Map[K, V]) PutIfAbsent(key K, value V) (added bool, err error) {
	_, replaced, err := M.t.put(key, value, false)
	added = err == nil && !replaced
	return
}

// PutAll - Copies all entries of other into the map and returns the number of keys that were not already present
func (M *Map[K, V]) PutAll(other *Map[K, V]) (added int, err error) {
	if err = M.t.ensureCapacity(other.Size()); err != nil {
		return
	}

	var replaced bool
	other.t.forEach(func(key K, value V) bool {
		_, replaced, err = M.t.put(key, value, true)
		if err == nil && !replaced {
			added++
		}
		return err == nil
	})
	return
}

// Get - Returns the value for key, ok is false if key is not present
func (M *Map[K, V]) Get(key K) (value V, ok bool) {
	return M.t.get(key)
}

// GetOrDefault - Returns the value for key, or defaultValue if key is not present
func (M *Map[K, V]) GetOrDefault(key K, defaultValue V) V {
	if value, ok := M.t.get(key); ok {
		return value
	}
	return defaultValue
}

// ContainsKey - Returns true if key is present
func (M *Map[K, V]) ContainsKey(key K) bool {
	_, _, found := M.t.find(key)
	return found
}

// Remove - Removes key and returns its value, ok is false if key was not present
func (M *Map[K, V]) Remove(key K) (value V, ok bool) {
	return M.t.remove(key)
}

// RemoveAll - Removes all entries for which predicate returns true and returns how many were removed
func (M *Map[K, V]) RemoveAll(predicate func(key K, value V) bool) int {
	return M.t.removeAll(predicate)
}

// IndexOf - Returns the slot holding key if key is present. Otherwise it returns a negative value denoting the
// insertion point of key, to be passed to IndexInsert. The result is only valid until the map is modified.
func (M *Map[K, V]) IndexOf(key K) int {
	slot, _, found := M.t.find(key)
	if found {
		return slot
	}
	return ^slot
}

// IndexExists - Returns true if index, as returned by IndexOf, denotes a present key
func (M *Map[K, V]) IndexExists(index int) bool {
	return index >= 0
}

// IndexGet - Returns the value at index as returned by IndexOf, or the zero value of V if index does not denote
// a present key
func (M *Map[K, V]) IndexGet(index int) (value V) {
	if M.occupiedIndex(index) {
		value = M.t.cells[index].value
	}
	return
}

// IndexReplace - Replaces the value at index as returned by IndexOf and returns the previous value. If index does
// not denote a present key nothing happens and the zero value of V is returned.
func (M *Map[K, V]) IndexReplace(index int, value V) (previous V) {
	if M.occupiedIndex(index) {
		c := &M.t.cells[index]
		previous, c.value = c.value, value
	}
	return
}

// IndexInsert - Inserts key with value at index, which must be the negative result of IndexOf(key) with no
// modification of the map in between. A stale index, one obtained for another key, or one for a key that is
// present is rejected with an InvalidIndex error and the map is left unchanged.
func (M *Map[K, V]) IndexInsert(index int, key K, value V) (err error) {
	if index >= 0 || ^index > M.t.mask {
		err = collections.NewInvalidIndex("index %d is not an insertion point", index)
		return
	}

	slot, ideal, found := M.t.find(key)
	if found || slot != ^index {
		err = collections.NewInvalidIndex("index %d is not the insertion point of the key", index)
		return
	}

	err = M.t.insertAt(slot, ideal, key, value)
	return
}

// IndexRemove - Removes the entry at index as returned by IndexOf and returns its value. If index does not denote
// a present key nothing happens and the zero value of V is returned.
func (M *Map[K, V]) IndexRemove(index int) (value V) {
	if M.occupiedIndex(index) {
		value, _ = M.t.removeAt(index)
	}
	return
}

// occupiedIndex - Returns true if index is a slot holding an entry
func (M *Map[K, V]) occupiedIndex(index int) bool {
	return index >= 0 && index <= M.t.mask && M.t.cells[index].occupied
}

// Clear - Removes all entries, the backing buffer is kept for reuse
func (M *Map[K, V]) Clear() {
	M.t.clear()
}

// Release - Removes all entries and shrinks the backing buffer to its default size
func (M *Map[K, V]) Release() {
	M.t.release()
}

// EnsureCapacity - Makes sure expectedElements keys fit without the map growing again
func (M *Map[K, V]) EnsureCapacity(expectedElements int) error {
	return M.t.ensureCapacity(expectedElements)
}

// Size - Returns the number of entries in the map
func (M *Map[K, V]) Size() int {
	return M.t.assigned
}

// IsEmpty - Returns true if the map holds no entries
func (M *Map[K, V]) IsEmpty() bool {
	return M.t.assigned == 0
}

// Capacity - Returns the number of entries the map can hold before its buffer grows
func (M *Map[K, V]) Capacity() int {
	return M.t.resizeAt
}

// ForEach - Calls fn for every entry until fn returns false. Entries are visited in reverse slot order.
// The map must not be modified from within fn.
func (M *Map[K, V]) ForEach(fn func(key K, value V) bool) {
	M.t.forEach(fn)
}

// All - Returns an iterator over the entries in the same order as ForEach
func (M *Map[K, V]) All() iter.Seq2[K, V] {
	return M.t.forEach
}

// Cursor - Returns a cursor over the entries in the same order as ForEach
func (M *Map[K, V]) Cursor() *MapCursor[K, V] {
	return newMapCursor(M.t)
}

// Keys - Returns the keys in a new slice, in the same order as ForEach
func (M *Map[K, V]) Keys() []K {
	keys := make([]K, 0, M.t.assigned)
	M.t.forEach(func(key K, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Values - Returns the values in a new slice, in the same order as ForEach
func (M *Map[K, V]) Values() []V {
	values := make([]V, 0, M.t.assigned)
	M.t.forEach(func(_ K, value V) bool {
		values = append(values, value)
		return true
	})
	return values
}

// Clone - Returns a deep copy of the map sharing no buffers with it. Values are copied as is.
// err is a BufferAllocationError if the buffer of the copy could not be allocated.
func (M *Map[K, V]) Clone() (clone *Map[K, V], err error) {
	t, err := M.t.clone()
	if err != nil {
		return
	}

	clone = &Map[K, V]{t: t}
	return
}

// Equals - Returns true if other holds the same keys, each mapped to a value that valueEqual finds equal
func (M *Map[K, V]) Equals(other *Map[K, V], valueEqual func(a, b V) bool) bool {
	if other == nil || other.Size() != M.Size() {
		return false
	}

	equal := true
	M.t.forEach(func(key K, value V) bool {
		var v V
		v, equal = other.Get(key)
		equal = equal && valueEqual(value, v)
		return equal
	})
	return equal
}

// Stat - Returns statistics on how entries are distributed over the slots
func (M *Map[K, V]) Stat() Stat {
	return M.t.stat()
}

// String - Returns the entries formatted as [k1=>v1, k2=>v2, ...] in the same order as ForEach
func (M *Map[K, V]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	first := true
	M.t.forEach(func(key K, value V) bool {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		_, _ = fmt.Fprintf(&sb, "%v=>%v", key, value)
		return true
	})
	sb.WriteByte(']')
	return sb.String()
}
