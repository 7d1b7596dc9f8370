package indexedheap

import (
	"fmt"
	"github.com/gostonefire/collections"
	"github.com/gostonefire/collections/internal/conf"
	"github.com/gostonefire/collections/internal/utils"
)

// arena - Owns the three parallel buffers of the heap and is the only code that writes to them, so that
// values and both index mappings always move together.
//   - buffer holds values at heap positions 1..count, position 0 is unused
//   - pq maps external index to heap position, 0 means the index is not present
//   - qp maps heap position back to external index
//
// For every position p in 1..count pq[qp[p]] == p. pq addresses every index below len(pq), while buffer and qp
// are one longer since positions are 1-based.
type arena[V any] struct {
	buffer []V
	pq     []int
	qp     []int
	count  int
}

// newArena - Returns an arena able to address external indices below capacity without growing
func newArena[V any](capacity int) (a arena[V], err error) {
	err = a.allocate(capacity)
	return
}

// allocate - Replaces the buffers with new ones addressing size external indices, keeping existing contents.
// Nothing is replaced unless all three buffers could be allocated.
func (A *arena[V]) allocate(size int) (err error) {
	oldSize := len(A.pq)
	defer func() {
		if r := recover(); r != nil {
			err = collections.NewBufferAllocationError(oldSize, size, fmt.Sprint(r))
		}
	}()

	pq := make([]int, size)
	qp := make([]int, size+1)
	buffer := make([]V, size+1)

	copy(pq, A.pq)
	copy(qp, A.qp)
	copy(buffer, A.buffer)

	A.pq, A.qp, A.buffer = pq, qp, buffer
	return
}

// ensureBufferSpace - Grows the buffers if index can not be addressed. Growth goes beyond index to amortize the
// cost of indices arriving in increasing order.
func (A *arena[V]) ensureBufferSpace(index int) (grown bool, err error) {
	if index < len(A.pq) {
		return
	}

	if index >= conf.MaxHeapArrayLength {
		err = collections.NewBufferAllocationError(len(A.pq), conf.MaxHeapArrayLength,
			fmt.Sprintf("index %d exceeds maximum array size", index))
		return
	}

	newSize, err := utils.GrowHeapSize(len(A.pq), index+1)
	if err != nil {
		return
	}

	if err = A.allocate(newSize); err != nil {
		return
	}
	if index >= len(A.pq) {
		err = collections.NewBufferAllocationError(newSize, index+1, "grown buffer can not address index")
		return
	}
	grown = true
	return
}

// contains - Returns true if index is present
func (A *arena[V]) contains(index int) bool {
	return index >= 0 && index < len(A.pq) && A.pq[index] > 0
}

// place - Puts value for index at pos and points both mappings at each other
func (A *arena[V]) place(pos, index int, value V) {
	A.buffer[pos] = value
	A.qp[pos] = index
	A.pq[index] = pos
}

// swap - Exchanges the entries at positions a and b
func (A *arena[V]) swap(a, b int) {
	A.buffer[a], A.buffer[b] = A.buffer[b], A.buffer[a]
	A.qp[a], A.qp[b] = A.qp[b], A.qp[a]
	A.pq[A.qp[a]] = a
	A.pq[A.qp[b]] = b
}

// append - Adds value for index, which must not be present, at the position after the last one and returns it
func (A *arena[V]) append(index int, value V) int {
	A.count++
	A.place(A.count, index, value)
	return A.count
}

// removeAt - Removes the entry at pos and fills the hole with the last entry.
// It returns the value removed and the position now holding the relocated entry, or 0 if pos was the last position.
func (A *arena[V]) removeAt(pos int) (value V, relocated int) {
	value = A.buffer[pos]
	last := A.count
	A.pq[A.qp[pos]] = 0

	if pos != last {
		A.place(pos, A.qp[last], A.buffer[last])
		relocated = pos
	}

	var zero V
	A.buffer[last] = zero
	A.qp[last] = 0
	A.count--
	return
}

// reset - Removes all entries without shrinking the buffers
func (A *arena[V]) reset() {
	for p := 1; p <= A.count; p++ {
		A.pq[A.qp[p]] = 0
	}
	clear(A.buffer[1 : A.count+1])
	clear(A.qp[1 : A.count+1])
	A.count = 0
}

// clone - Returns a deep copy
func (A *arena[V]) clone() arena[V] {
	return arena[V]{
		buffer: append([]V(nil), A.buffer...),
		pq:     append([]int(nil), A.pq...),
		qp:     append([]int(nil), A.qp...),
		count:  A.count,
	}
}

// isConsistent - Verifies that pq and qp are inverse mappings over the occupied positions
func (A *arena[V]) isConsistent() error {
	for p := 1; p <= A.count; p++ {
		index := A.qp[p]
		if index < 0 || index >= len(A.pq) || A.pq[index] != p {
			return fmt.Errorf("position %d maps to index %d which does not map back", p, index)
		}
	}

	var present int
	for index, p := range A.pq {
		if p == 0 {
			continue
		}
		present++
		if p > A.count || A.qp[p] != index {
			return fmt.Errorf("index %d maps to position %d which does not map back", index, p)
		}
	}
	if present != A.count {
		return fmt.Errorf("%d indices present but count is %d", present, A.count)
	}
	return nil
}
