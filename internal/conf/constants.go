package conf

import "math"

// DefaultExpectedElements - Number of elements a container is sized for when no better estimate is given
const DefaultExpectedElements int = 4

// DefaultLoadFactor - Load factor used when no other load factor is given
const DefaultLoadFactor float64 = 0.75

// MinLoadFactor - Smallest permitted load factor
const MinLoadFactor float64 = 1 / 100.0

// MaxLoadFactor - Largest permitted load factor, a full table still keeps one empty slot
const MaxLoadFactor float64 = 1

// MinHashArrayLength - Smallest length of a hash table buffer, always a power of two
const MinHashArrayLength int = 4

// MaxHashArrayLength - Largest length of a hash table buffer, always a power of two
const MaxHashArrayLength int = 1 << 30

// MaxHeapArrayLength - Largest length of any of the indexed heap buffers
const MaxHeapArrayLength int = math.MaxInt32 - 8

// HeapGrowthFactor - Growth factor applied over the requested length when indexed heap buffers are grown
const HeapGrowthFactor float64 = 1.5
