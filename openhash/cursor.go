package openhash

import "github.com/gostonefire/collections"

// SetCursor - Is used to iterate over the keys of a Set one by one, in reverse slot order.
// The set must not be modified while the cursor is in use.
type SetCursor[K any] struct {
	cells []cell[K, struct{}]
	slot  int
}

// newSetCursor - Returns a pointer to a new SetCursor positioned before the first key
func newSetCursor[K any](t *table[K, struct{}]) *SetCursor[K] {
	return &SetCursor[K]{cells: t.cells, slot: len(t.cells)}
}

// HasNext - Returns true if there are more keys to be fetched from a call to Next
func (C *SetCursor[K]) HasNext() bool {
	return nextOccupied(C.cells, C.slot) >= 0
}

// Next - Returns the next key.
// It returns:
//   - key is the next key
//   - err is of type collections.NoSuchElement if there are no more keys
func (C *SetCursor[K]) Next() (key K, err error) {
	C.slot = nextOccupied(C.cells, C.slot)
	if C.slot < 0 {
		err = collections.NoSuchElement{}
		return
	}

	key = C.cells[C.slot].key
	return
}

// MapCursor - Is used to iterate over the entries of a Map one by one, in reverse slot order.
// The map must not be modified while the cursor is in use.
type MapCursor[K any, V any] struct {
	cells []cell[K, V]
	slot  int
}

// newMapCursor - Returns a pointer to a new MapCursor positioned before the first entry
func newMapCursor[K any, V any](t *table[K, V]) *MapCursor[K, V] {
	return &MapCursor[K, V]{cells: t.cells, slot: len(t.cells)}
}

// HasNext - Returns true if there are more entries to be fetched from a call to Next
func (C *MapCursor[K, V]) HasNext() bool {
	return nextOccupied(C.cells, C.slot) >= 0
}

// Next - Returns the next entry.
// It returns:
//   - key and value are the next entry
//   - err is of type collections.NoSuchElement if there are no more entries
func (C *MapCursor[K, V]) Next() (key K, value V, err error) {
	C.slot = nextOccupied(C.cells, C.slot)
	if C.slot < 0 {
		err = collections.NoSuchElement{}
		return
	}

	key, value = C.cells[C.slot].key, C.cells[C.slot].value
	return
}

// Index - Returns the slot of the entry last returned by Next, usable with the Map index methods
func (C *MapCursor[K, V]) Index() int {
	return C.slot
}

// nextOccupied - Returns the closest occupied slot below slot, or -1 if there is none
func nextOccupied[K any, V any](cells []cell[K, V], slot int) int {
	for slot--; slot >= 0; slot-- {
		if cells[slot].occupied {
			return slot
		}
	}
	return -1
}
