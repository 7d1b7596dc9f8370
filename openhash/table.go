package openhash

import (
	"fmt"
	"github.com/gostonefire/collections"
	"github.com/gostonefire/collections/hashfunc"
	"github.com/gostonefire/collections/internal/conf"
	"github.com/gostonefire/collections/internal/hash"
	"github.com/gostonefire/collections/internal/utils"
	"go.uber.org/zap"
)

// cell - One slot in the hash table. ideal is the slot the key hashes to before any probing.
type cell[K any, V any] struct {
	key      K
	value    V
	ideal    int
	occupied bool
}

// table - Open addressing hash table using linear probing with Robin Hood displacement and backward shift deletion.
// The length of cells is always a power of two and there is always at least one slot that is not occupied.
type table[K any, V any] struct {
	cells      []cell[K, V]
	mask       int
	assigned   int
	resizeAt   int
	loadFactor float64
	seed       uint64
	fixedSeed  bool
	strategy   hashfunc.HashingStrategy[K]
	logger     *zap.Logger
}

// newTable - Returns a pointer to a new table sized to hold expectedElements without growing
func newTable[K any, V any](
	strategy hashfunc.HashingStrategy[K],
	expectedElements int,
	loadFactor float64,
	options []Option,
) (
	t *table[K, V],
	err error,
) {
	if strategy == nil {
		err = collections.NewInvalidConfiguration("hashing strategy can not be nil")
		return
	}

	if err = utils.CheckLoadFactor(loadFactor); err != nil {
		return
	}

	arraySize, err := utils.MinBufferSize(expectedElements, loadFactor)
	if err != nil {
		return
	}

	opts := newOptions(options)

	t = &table[K, V]{
		loadFactor: loadFactor,
		strategy:   strategy,
		logger:     opts.logger,
		fixedSeed:  opts.hasSeed,
	}
	if opts.hasSeed {
		t.seed = opts.seed
	} else {
		t.seed = hash.NewSeed()
	}

	cells, err := allocate[K, V](0, arraySize)
	if err != nil {
		t = nil
		return
	}
	t.setCells(cells)

	return
}

// allocate - Returns a new slice of cells, turning a failed allocation into a BufferAllocationError
func allocate[K any, V any](oldSize, newSize int) (cells []cell[K, V], err error) {
	defer func() {
		if r := recover(); r != nil {
			cells = nil
			err = collections.NewBufferAllocationError(oldSize, newSize, fmt.Sprint(r))
		}
	}()

	cells = make([]cell[K, V], newSize)
	return
}

// setCells - Installs cells as the backing buffer and updates mask and resize threshold
func (T *table[K, V]) setCells(cells []cell[K, V]) {
	T.cells = cells
	T.mask = len(cells) - 1
	T.resizeAt = utils.ExpandAtCount(len(cells), T.loadFactor)
}

// idealSlot - Returns the slot key hashes to
func (T *table[K, V]) idealSlot(key K) int {
	return int(hash.Perturbed(T.strategy.HashCode(key), T.seed) & uint64(T.mask))
}

// probeDistance - Returns how many slots the occupant of slot is displaced from its ideal slot
func (T *table[K, V]) probeDistance(slot int) int {
	return (slot - T.cells[slot].ideal) & T.mask
}

// find - Searches for key.
// It returns:
//   - slot is the slot holding key if found, otherwise the slot where key would be inserted.
//   - ideal is the ideal slot of key
//   - found is true if key is present
func (T *table[K, V]) find(key K) (slot, ideal int, found bool) {
	ideal = T.idealSlot(key)
	slot = ideal
	for dist := 0; ; dist++ {
		c := &T.cells[slot]
		if !c.occupied || dist > T.probeDistance(slot) {
			return
		}
		if c.ideal == ideal && T.strategy.Equals(c.key, key) {
			found = true
			return
		}
		slot = (slot + 1) & T.mask
	}
}

// place - Robin Hood insertion of an entry starting at slot, which must be on the probe path of the entry and not
// beyond its insertion point. Whenever the resident of a slot is closer to its ideal slot than the entry being
// placed, the two trade places and probing continues with the former resident.
func (T *table[K, V]) place(slot int, entry cell[K, V]) {
	entry.occupied = true
	for {
		c := &T.cells[slot]
		if !c.occupied {
			*c = entry
			return
		}
		if (slot-entry.ideal)&T.mask > (slot-c.ideal)&T.mask {
			*c, entry = entry, *c
		}
		slot = (slot + 1) & T.mask
	}
}

// put - Inserts or replaces the value for key.
// It returns:
//   - previous is the value replaced, or the zero value if key was not present
//   - replaced is true if key was already present
//   - err is a BufferAllocationError if the table had to grow and could not
func (T *table[K, V]) put(key K, value V, overwrite bool) (previous V, replaced bool, err error) {
	slot, ideal, found := T.find(key)
	if found {
		previous = T.cells[slot].value
		if overwrite {
			T.cells[slot].value = value
		}
		replaced = true
		return
	}

	err = T.insertAt(slot, ideal, key, value)
	return
}

// insertAt - Inserts a key known to be absent, slot and ideal being the result of a find for it
func (T *table[K, V]) insertAt(slot, ideal int, key K, value V) (err error) {
	if T.assigned == T.resizeAt {
		return T.expandAndAdd(key, value)
	}

	T.place(slot, cell[K, V]{key: key, value: value, ideal: ideal})
	T.assigned++
	return
}

// expandAndAdd - Grows the table to the next buffer size and then adds key. The new buffer is allocated before
// anything is touched, so a failure leaves the table as it was.
func (T *table[K, V]) expandAndAdd(key K, value V) (err error) {
	oldSize := len(T.cells)
	newSize, err := utils.NextBufferSize(oldSize)
	if err != nil {
		T.logger.Warn("hash table can not grow",
			zap.Int("old", oldSize),
			zap.Int("size", T.assigned),
			zap.Error(err))
		return
	}

	if err = T.resize(newSize); err != nil {
		return
	}

	ideal := T.idealSlot(key)
	T.place(ideal, cell[K, V]{key: key, value: value, ideal: ideal})
	T.assigned++
	return
}

// resize - Replaces the buffer with one of newSize and rehashes every entry into it
func (T *table[K, V]) resize(newSize int) (err error) {
	oldSize := len(T.cells)
	cells, err := allocate[K, V](oldSize, newSize)
	if err != nil {
		T.logger.Warn("hash table buffer allocation failed",
			zap.Int("old", oldSize),
			zap.Int("new", newSize),
			zap.Error(err))
		return
	}

	old := T.cells
	T.setCells(cells)
	T.rehash(old)

	T.logger.Debug("hash table resized",
		zap.Int("old", oldSize),
		zap.Int("new", newSize),
		zap.Int("size", T.assigned))
	return
}

// rehash - Places every occupied entry of from into the current buffer. from is walked backwards, so the entries
// that end a conflict chain in from are placed before the ones that start it.
func (T *table[K, V]) rehash(from []cell[K, V]) {
	for i := len(from) - 1; i >= 0; i-- {
		c := from[i]
		if c.occupied {
			c.ideal = T.idealSlot(c.key)
			T.place(c.ideal, c)
		}
	}
}

// ensureCapacity - Grows the table if necessary so that expectedElements fit without any further growth
func (T *table[K, V]) ensureCapacity(expectedElements int) (err error) {
	if expectedElements <= T.resizeAt {
		return
	}

	newSize, err := utils.MinBufferSize(expectedElements, T.loadFactor)
	if err != nil {
		return
	}
	if newSize > len(T.cells) {
		err = T.resize(newSize)
	}
	return
}

// get - Returns the value for key, ok is false if key is not present
func (T *table[K, V]) get(key K) (value V, ok bool) {
	slot, _, found := T.find(key)
	if found {
		value, ok = T.cells[slot].value, true
	}
	return
}

// remove - Removes key and returns its value, ok is false if key was not present
func (T *table[K, V]) remove(key K) (value V, ok bool) {
	slot, _, found := T.find(key)
	if !found {
		return
	}

	value, ok = T.removeAt(slot)
	return
}

// removeAt - Removes the entry at slot, which must be occupied
func (T *table[K, V]) removeAt(slot int) (value V, ok bool) {
	value, ok = T.cells[slot].value, true
	T.shiftConflictingKeys(slot)
	T.assigned--
	return
}

// shiftConflictingKeys - Closes the gap at slot by shifting every following displaced entry one slot back,
// stopping at the first empty slot or entry sitting in its ideal slot.
func (T *table[K, V]) shiftConflictingKeys(gap int) {
	for {
		next := (gap + 1) & T.mask
		c := &T.cells[next]
		if !c.occupied || next == c.ideal {
			break
		}
		T.cells[gap] = *c
		gap = next
	}
	T.cells[gap] = cell[K, V]{}
}

// removeAll - Removes all entries for which predicate returns true and returns the number removed.
// The scan starts after an empty slot so that backward shifts never carry an entry into a slot already visited,
// predicate is called exactly once per entry.
func (T *table[K, V]) removeAll(predicate func(key K, value V) bool) (removed int) {
	start := 0
	for T.cells[start].occupied {
		start++
	}

	for i := 1; i <= T.mask; {
		c := &T.cells[(start+i)&T.mask]
		if c.occupied && predicate(c.key, c.value) {
			T.shiftConflictingKeys((start + i) & T.mask)
			T.assigned--
			removed++
			// Another entry may have been shifted into the slot
			continue
		}
		i++
	}
	return
}

// forEach - Calls fn for every entry in reverse slot order until fn returns false
func (T *table[K, V]) forEach(fn func(key K, value V) bool) {
	for i := len(T.cells) - 1; i >= 0; i-- {
		c := &T.cells[i]
		if c.occupied && !fn(c.key, c.value) {
			return
		}
	}
}

// clear - Removes all entries but keeps the buffer
func (T *table[K, V]) clear() {
	clear(T.cells)
	T.assigned = 0
}

// release - Removes all entries and shrinks the buffer to the default size. If the smaller buffer can not be
// allocated the current one is cleared and kept.
func (T *table[K, V]) release() {
	T.assigned = 0
	arraySize, err := utils.MinBufferSize(conf.DefaultExpectedElements, T.loadFactor)
	if err == nil {
		var cells []cell[K, V]
		if cells, err = allocate[K, V](len(T.cells), arraySize); err == nil {
			T.setCells(cells)
			return
		}
	}

	T.logger.Warn("hash table can not shrink",
		zap.Int("old", len(T.cells)),
		zap.Error(err))
	clear(T.cells)
}

// clone - Returns a deep copy with a fresh perturbation seed unless the seed was fixed through WithSeed.
// err is a BufferAllocationError if the buffer of the copy could not be allocated.
func (T *table[K, V]) clone() (c *table[K, V], err error) {
	cells, err := allocate[K, V](len(T.cells), len(T.cells))
	if err != nil {
		return
	}

	c = &table[K, V]{
		assigned:   T.assigned,
		loadFactor: T.loadFactor,
		seed:       T.seed,
		fixedSeed:  T.fixedSeed,
		strategy:   T.strategy,
		logger:     T.logger,
	}
	if !T.fixedSeed {
		c.seed = hash.NewSeed()
	}
	c.setCells(cells)
	c.rehash(T.cells)
	return
}

// stat - Collects probe distance statistics
func (T *table[K, V]) stat() (s Stat) {
	s = Stat{
		Size:       T.assigned,
		Slots:      len(T.cells),
		ResizeAt:   T.resizeAt,
		LoadFactor: T.loadFactor,
	}

	var total int
	for i := range T.cells {
		if !T.cells[i].occupied {
			continue
		}
		d := T.probeDistance(i)
		for len(s.ProbeDistribution) <= d {
			s.ProbeDistribution = append(s.ProbeDistribution, 0)
		}
		s.ProbeDistribution[d]++
		total += d
		if d > s.MaxProbeDistance {
			s.MaxProbeDistance = d
		}
	}
	if T.assigned > 0 {
		s.AverageProbeDistance = float64(total) / float64(T.assigned)
	}
	return
}

// isValid - Verifies the table invariants, used by tests
func (T *table[K, V]) isValid() (err error) {
	var n int
	for i := range T.cells {
		c := &T.cells[i]
		if !c.occupied {
			continue
		}
		n++
		if c.ideal != T.idealSlot(c.key) {
			return fmt.Errorf("slot %d caches ideal slot %d but key hashes to %d", i, c.ideal, T.idealSlot(c.key))
		}
		prev := (i - 1) & T.mask
		if d := T.probeDistance(i); d > 0 {
			if !T.cells[prev].occupied {
				return fmt.Errorf("slot %d is displaced %d slots but slot %d is empty", i, d, prev)
			}
			if T.probeDistance(prev)+1 < d {
				return fmt.Errorf("slot %d is displaced %d slots after a resident displaced %d", i, d, T.probeDistance(prev))
			}
		}
	}
	if n != T.assigned {
		return fmt.Errorf("found %d occupied slots but %d are assigned", n, T.assigned)
	}
	if T.assigned > T.resizeAt || T.resizeAt >= len(T.cells) {
		return fmt.Errorf("assigned %d, resize at %d, slots %d out of order", T.assigned, T.resizeAt, len(T.cells))
	}
	return
}
