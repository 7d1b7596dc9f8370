package indexedheap

import (
	"fmt"
	"github.com/gostonefire/collections"
	"github.com/gostonefire/collections/internal/conf"
	"go.uber.org/zap"
	"golang.org/x/exp/constraints"
	"iter"
	"strings"
)

// IndexedHeap - A binary min heap of values where every value is associated with a caller supplied non-negative
// integer index, for instance a graph node id. The index is used to look up, update and remove values in O(log n).
// Create instances with New, NewWithComparator or From, the zero value is not usable.
type IndexedHeap[V any] struct {
	a            arena[V]
	compare      func(a, b V) int
	defaultValue V
	logger       *zap.Logger
}

// naturalOrder - Three way comparison of ordered values
func naturalOrder[V constraints.Ordered](a, b V) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

// New - Returns a new heap ordering values by their natural order, smallest first.
//   - initialCapacity is the number of external indices, 0 up to initialCapacity - 1, addressable without growing
//   - options are optional settings such as WithDefaultValue
//
// It returns:
//   - heap is a pointer to the new IndexedHeap
//   - err is an InvalidConfiguration error if initialCapacity is negative
func New[V constraints.Ordered](initialCapacity int, options ...Option[V]) (heap *IndexedHeap[V], err error) {
	return NewWithComparator[V](initialCapacity, naturalOrder[V], options...)
}

// NewWithComparator - Returns a new heap ordering values with compare, the value for which compare reports
// smallest is at the top.
//   - initialCapacity is the number of external indices addressable without growing
//   - compare returns a negative number, zero or a positive number as a is less than, equal to or greater than b
//   - options are optional settings such as WithDefaultValue
func NewWithComparator[V any](
	initialCapacity int,
	compare func(a, b V) int,
	options ...Option[V],
) (
	heap *IndexedHeap[V],
	err error,
) {
	if compare == nil {
		err = collections.NewInvalidConfiguration("comparator can not be nil")
		return
	}

	if initialCapacity < 0 {
		err = collections.NewInvalidConfiguration("initial capacity must be non-negative: %d", initialCapacity)
		return
	}

	a, err := newArena[V](initialCapacity)
	if err != nil {
		return
	}

	heap = &IndexedHeap[V]{a: a, compare: compare}
	for _, opt := range options {
		opt(heap)
	}
	if heap.logger == nil {
		heap.logger = zap.NewNop()
	}

	return
}

// From - Returns a new heap with natural ordering holding every index and value of values
func From[V constraints.Ordered](values map[int]V, options ...Option[V]) (heap *IndexedHeap[V], err error) {
	var maxIndex int
	for index := range values {
		maxIndex = max(maxIndex, index+1)
	}

	heap, err = New[V](maxIndex, options...)
	if err != nil {
		return
	}

	for index, value := range values {
		if _, err = heap.Put(index, value); err != nil {
			heap = nil
			return
		}
	}
	return
}

// Put - Sets value for index. If index is already present its value is replaced and moved to its new place in the
// heap, otherwise a new entry is added.
// It returns:
//   - previous is the replaced value, or the default value if index was not present
//   - err is an InvalidIndex error if index is negative, or a BufferAllocationError if the buffers could not grow
func (H *IndexedHeap[V]) Put(index int, value V) (previous V, err error) {
	if index < 0 {
		err = collections.NewInvalidIndex("index must be non-negative, got %d", index)
		return
	}

	if H.a.contains(index) {
		pos := H.a.pq[index]
		previous = H.a.buffer[pos]
		H.a.buffer[pos] = value
		H.fix(pos)
		H.check()
		return
	}

	oldSize := len(H.a.pq)
	grown, err := H.a.ensureBufferSpace(index)
	if err != nil {
		H.logger.Warn("indexed heap can not grow",
			zap.Int("old", oldSize),
			zap.Int("index", index),
			zap.Error(err))
		return
	}
	if grown {
		H.logger.Debug("indexed heap resized",
			zap.Int("old", oldSize),
			zap.Int("new", len(H.a.pq)),
			zap.Int("size", H.a.count))
	}

	H.swim(H.a.append(index, value))
	previous = H.defaultValue
	H.check()
	return
}

// Get - Returns the value for index, or the default value if index is not present
func (H *IndexedHeap[V]) Get(index int) V {
	if !H.a.contains(index) {
		return H.defaultValue
	}
	return H.a.buffer[H.a.pq[index]]
}

// ContainsKey - Returns true if index is present
func (H *IndexedHeap[V]) ContainsKey(index int) bool {
	return H.a.contains(index)
}

// Remove - Removes index and returns its value, or the default value if index was not present
func (H *IndexedHeap[V]) Remove(index int) V {
	if !H.a.contains(index) {
		return H.defaultValue
	}

	value, relocated := H.a.removeAt(H.a.pq[index])
	if relocated > 0 {
		H.fix(relocated)
	}
	H.check()
	return value
}

// Top - Returns the smallest value without removing it, or the default value if the heap is empty
func (H *IndexedHeap[V]) Top() V {
	if H.a.count == 0 {
		return H.defaultValue
	}
	return H.a.buffer[1]
}

// TopIndex - Returns the index of the smallest value, or -1 if the heap is empty
func (H *IndexedHeap[V]) TopIndex() int {
	if H.a.count == 0 {
		return -1
	}
	return H.a.qp[1]
}

// PopTop - Removes the smallest value and returns it, or the default value if the heap is empty
func (H *IndexedHeap[V]) PopTop() V {
	if H.a.count == 0 {
		return H.defaultValue
	}
	return H.Remove(H.a.qp[1])
}

// UpdatePriority - Restores heap order after the value for index has been modified in place, which is possible
// when V is a pointer or holds references. Nothing happens if index is not present.
func (H *IndexedHeap[V]) UpdatePriority(index int) {
	if !H.a.contains(index) {
		return
	}
	H.fix(H.a.pq[index])
	H.check()
}

// UpdateTopPriority - Restores heap order after the top value has been modified in place
func (H *IndexedHeap[V]) UpdateTopPriority() {
	if H.a.count == 0 {
		return
	}
	H.sink(1)
	H.check()
}

// UpdatePriorities - Rebuilds heap order over all entries, use it after modifying many values in place
func (H *IndexedHeap[V]) UpdatePriorities() {
	for p := H.a.count / 2; p >= 1; p-- {
		H.sink(p)
	}
	H.check()
}

// RemoveAll - Removes all values for which predicate returns true and returns how many were removed
func (H *IndexedHeap[V]) RemoveAll(predicate func(value V) bool) int {
	return H.RemoveAllIndexed(func(_ int, value V) bool { return predicate(value) })
}

// RemoveAllIndexed - Removes all entries for which predicate returns true and returns how many were removed.
// Heap order is rebuilt once when done, also if predicate panics, so predicate must not access the heap.
func (H *IndexedHeap[V]) RemoveAllIndexed(predicate func(index int, value V) bool) (removed int) {
	defer H.UpdatePriorities()

	for pos := 1; pos <= H.a.count; {
		if predicate(H.a.qp[pos], H.a.buffer[pos]) {
			H.a.removeAt(pos)
			removed++
			// The last entry was moved into pos
			continue
		}
		pos++
	}
	return
}

// Size - Returns the number of entries
func (H *IndexedHeap[V]) Size() int {
	return H.a.count
}

// IsEmpty - Returns true if there are no entries
func (H *IndexedHeap[V]) IsEmpty() bool {
	return H.a.count == 0
}

// DefaultValue - Returns the value returned for indices that are not present
func (H *IndexedHeap[V]) DefaultValue() V {
	return H.defaultValue
}

// Clear - Removes all entries, buffers are kept for reuse
func (H *IndexedHeap[V]) Clear() {
	H.a.reset()
}

// Release - Removes all entries and shrinks the buffers to their default size. If the smaller buffers can not be
// allocated the current ones are cleared and kept.
func (H *IndexedHeap[V]) Release() {
	H.a.reset()
	oldSize := len(H.a.pq)
	if err := H.a.allocate(conf.DefaultExpectedElements); err != nil {
		H.logger.Warn("indexed heap can not shrink",
			zap.Int("old", oldSize),
			zap.Error(err))
	}
}

// ForEach - Calls fn for every entry in heap position order until fn returns false.
// The heap must not be modified from within fn.
func (H *IndexedHeap[V]) ForEach(fn func(index int, value V) bool) {
	for p := 1; p <= H.a.count; p++ {
		if !fn(H.a.qp[p], H.a.buffer[p]) {
			return
		}
	}
}

// All - Returns an iterator over the entries in the same order as ForEach
func (H *IndexedHeap[V]) All() iter.Seq2[int, V] {
	return H.ForEach
}

// Indices - Returns the present indices in heap position order
func (H *IndexedHeap[V]) Indices() []int {
	return append([]int(nil), H.a.qp[1:H.a.count+1]...)
}

// Values - Returns the values in heap position order
func (H *IndexedHeap[V]) Values() []V {
	return append([]V(nil), H.a.buffer[1:H.a.count+1]...)
}

// Clone - Returns a deep copy of the heap. Values are copied as is.
func (H *IndexedHeap[V]) Clone() *IndexedHeap[V] {
	return &IndexedHeap[V]{
		a:            H.a.clone(),
		compare:      H.compare,
		defaultValue: H.defaultValue,
		logger:       H.logger,
	}
}

// String - Returns the entries formatted as [index=>value, ...] in heap position order
func (H *IndexedHeap[V]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for p := 1; p <= H.a.count; p++ {
		if p > 1 {
			sb.WriteString(", ")
		}
		_, _ = fmt.Fprintf(&sb, "%d=>%v", H.a.qp[p], H.a.buffer[p])
	}
	sb.WriteByte(']')
	return sb.String()
}

// fix - Moves the entry at pos down or up until heap order holds
func (H *IndexedHeap[V]) fix(pos int) {
	if !H.sink(pos) {
		H.swim(pos)
	}
}

// sink - Moves the entry at pos down while a child is smaller, it returns true if the entry moved
func (H *IndexedHeap[V]) sink(pos int) (moved bool) {
	buffer, n := H.a.buffer, H.a.count
	for {
		child := pos << 1
		if child > n {
			return
		}
		if child < n && H.compare(buffer[child+1], buffer[child]) < 0 {
			child++
		}
		if H.compare(buffer[child], buffer[pos]) >= 0 {
			return
		}
		H.a.swap(pos, child)
		pos = child
		moved = true
	}
}

// swim - Moves the entry at pos up while it is smaller than its parent
func (H *IndexedHeap[V]) swim(pos int) {
	buffer := H.a.buffer
	for pos > 1 {
		parent := pos >> 1
		if H.compare(buffer[pos], buffer[parent]) >= 0 {
			return
		}
		H.a.swap(pos, parent)
		pos = parent
	}
}

// isMinHeap - Verifies that no entry is smaller than its parent
func (H *IndexedHeap[V]) isMinHeap() error {
	for p := 2; p <= H.a.count; p++ {
		if H.compare(H.a.buffer[p], H.a.buffer[p>>1]) < 0 {
			return fmt.Errorf("value at position %d is smaller than its parent at %d", p, p>>1)
		}
	}
	return nil
}

// check - Panics on broken invariants when built with the collectionsdebug tag, does nothing otherwise
func (H *IndexedHeap[V]) check() {
	if !debugChecks {
		return
	}
	if err := H.a.isConsistent(); err != nil {
		panic(err)
	}
	if err := H.isMinHeap(); err != nil {
		panic(err)
	}
}
