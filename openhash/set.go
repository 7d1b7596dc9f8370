package openhash

import (
	"fmt"
	"github.com/gostonefire/collections/hashfunc"
	"golang.org/x/exp/constraints"
	"iter"
	"strings"
)

// Set - A hash set of keys of type K. Create instances with NewSet, NewSetWithStrategy, SetFrom or SetFromSet,
// the zero value is not usable.
type Set[K any] struct {
	t *table[K, struct{}]
}

// NewSet - Returns a new set of integer keys prepared to hold expectedElements without growing.
//   - expectedElements is the number of keys expected, must be non-negative
//   - loadFactor is the share of slots that may be occupied before the set grows, between 0.01 and 1 inclusive
//   - options are optional settings such as WithLogger
//
// It returns:
//   - set is a pointer to the new Set
//   - err is an InvalidConfiguration error on bad parameters, BufferAllocationError if expectedElements is too large
func NewSet[K constraints.Integer](expectedElements int, loadFactor float64, options ...Option) (set *Set[K], err error) {
	return NewSetWithStrategy[K](hashfunc.Integers[K]{}, expectedElements, loadFactor, options...)
}

// NewSetWithStrategy - Returns a new set using strategy to hash and compare keys.
//   - strategy is the hashing strategy to use, it can not be nil
//   - expectedElements is the number of keys expected, must be non-negative
//   - loadFactor is the share of slots that may be occupied before the set grows, between 0.01 and 1 inclusive
//   - options are optional settings such as WithLogger
func NewSetWithStrategy[K any](
	strategy hashfunc.HashingStrategy[K],
	expectedElements int,
	loadFactor float64,
	options ...Option,
) (
	set *Set[K],
	err error,
) {
	t, err := newTable[K, struct{}](strategy, expectedElements, loadFactor, options)
	if err != nil {
		return
	}

	set = &Set[K]{t: t}
	return
}

// SetFrom - Returns a new set with default load factor holding keys
func SetFrom[K constraints.Integer](keys ...K) (set *Set[K], err error) {
	set, err = NewSet[K](len(keys), DefaultLoadFactor)
	if err != nil {
		return
	}

	_, err = set.AddAll(keys...)
	return
}

// SetFromSet - Returns a new set with the same hashing strategy, load factor and keys as other
func SetFromSet[K any](other *Set[K]) (set *Set[K], err error) {
	set, err = NewSetWithStrategy[K](other.t.strategy, other.Size(), other.t.loadFactor, WithLogger(other.t.logger))
	if err != nil {
		return
	}

	_, err = set.AddAllFrom(other)
	return
}

// Add - Adds key to the set.
// It returns:
//   - added is true if the set did not already contain key
//   - err is a BufferAllocationError if the set had to grow and could not, the set is then unchanged
func (S *Set[K]) Add(key K) (added bool, err error) {
	_, replaced, err := S.t.put(key, struct{}{}, false)
	added = err == nil && !replaced
	return
}

// AddAll - Adds all keys and returns the number of keys that were not already in the set
func (S *Set[K]) AddAll(keys ...K) (added int, err error) {
	if err = S.t.ensureCapacity(len(keys)); err != nil {
		return
	}

	var ok bool
	for _, key := range keys {
		if ok, err = S.Add(key); err != nil {
			return
		}
		if ok {
			added++
		}
	}
	return
}

// AddAllFrom - Adds all keys of other and returns the number of keys that were not already in the set
func (S *Set[K]) AddAllFrom(other *Set[K]) (added int, err error) {
	if err = S.t.ensureCapacity(other.Size()); err != nil {
		return
	}

	var ok bool
	other.t.forEach(func(key K, _ struct{}) bool {
		ok, err = S.Add(key)
		if ok {
			added++
		}
		return err == nil
	})
	return
}

// Remove - Removes key and returns true if it was present
func (S *Set[K]) Remove(key K) bool {
	_, ok := S.t.remove(key)
	return ok
}

// RemoveAll - Removes all keys for which predicate returns true and returns how many were removed
func (S *Set[K]) RemoveAll(predicate func(key K) bool) int {
	return S.t.removeAll(func(key K, _ struct{}) bool { return predicate(key) })
}

// RetainAll - Keeps only the keys for which predicate returns true and returns how many were removed
func (S *Set[K]) RetainAll(predicate func(key K) bool) int {
	return S.t.removeAll(func(key K, _ struct{}) bool { return !predicate(key) })
}

// RemoveAllFrom - Removes every key that is also in other and returns how many were removed
func (S *Set[K]) RemoveAllFrom(other *Set[K]) (removed int) {
	if other.Size() < S.Size() {
		other.t.forEach(func(key K, _ struct{}) bool {
			if S.Remove(key) {
				removed++
			}
			return true
		})
		return
	}

	return S.RemoveAll(other.Contains)
}

// Contains - Returns true if key is in the set
func (S *Set[K]) Contains(key K) bool {
	_, _, found := S.t.find(key)
	return found
}

// Clear - Removes all keys, the backing buffer is kept for reuse
func (S *Set[K]) Clear() {
	S.t.clear()
}

// Release - Removes all keys and shrinks the backing buffer to its default size
func (S *Set[K]) Release() {
	S.t.release()
}

// EnsureCapacity - Makes sure expectedElements keys fit without the set growing again
func (S *Set[K]) EnsureCapacity(expectedElements int) error {
	return S.t.ensureCapacity(expectedElements)
}

// Size - Returns the number of keys in the set
func (S *Set[K]) Size() int {
	return S.t.assigned
}

// IsEmpty - Returns true if the set holds no keys
func (S *Set[K]) IsEmpty() bool {
	return S.t.assigned == 0
}

// Capacity - Returns the number of keys the set can hold before its buffer grows
func (S *Set[K]) Capacity() int {
	return S.t.resizeAt
}

// ForEach - Calls fn for every key until fn returns false. Keys are visited in reverse slot order.
// The set must not be modified from within fn.
func (S *Set[K]) ForEach(fn func(key K) bool) {
	S.t.forEach(func(key K, _ struct{}) bool { return fn(key) })
}

// All - Returns an iterator over the keys in the same order as ForEach
func (S *Set[K]) All() iter.Seq[K] {
	return S.ForEach
}

// Cursor - Returns a cursor over the keys in the same order as ForEach
func (S *Set[K]) Cursor() *SetCursor[K] {
	return newSetCursor(S.t)
}

// ToSlice - Returns the keys in a new slice, in the same order as ForEach
func (S *Set[K]) ToSlice() []K {
	keys := make([]K, 0, S.t.assigned)
	S.t.forEach(func(key K, _ struct{}) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Clone - Returns a deep copy of the set sharing no buffers with it.
// It returns:
//   - clone is a pointer to the copy
//   - err is a BufferAllocationError if the buffer of the copy could not be allocated
func (S *Set[K]) Clone() (clone *Set[K], err error) {
	t, err := S.t.clone()
	if err != nil {
		return
	}

	clone = &Set[K]{t: t}
	return
}

// Equals - Returns true if other holds exactly the same keys
func (S *Set[K]) Equals(other *Set[K]) bool {
	if other == nil || other.Size() != S.Size() {
		return false
	}

	equal := true
	S.t.forEach(func(key K, _ struct{}) bool {
		equal = other.Contains(key)
		return equal
	})
	return equal
}

// Stat - Returns statistics on how keys are distributed over the slots
func (S *Set[K]) Stat() Stat {
	return S.t.stat()
}

// String - Returns the keys formatted as [k1, k2, ...] in the same order as ForEach
func (S *Set[K]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	first := true
	S.t.forEach(func(key K, _ struct{}) bool {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		_, _ = fmt.Fprint(&sb, key)
		return true
	})
	sb.WriteByte(']')
	return sb.String()
}
