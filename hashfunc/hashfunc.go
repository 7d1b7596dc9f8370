package hashfunc

import (
	"bytes"
	"github.com/gostonefire/collections/internal/hash"
	"golang.org/x/exp/constraints"
)

// HashingStrategy - Interface that permits a user of the hash containers to supply custom hashing and equality
// for a key type, for instance for keys that are not comparable (byte slices) or for keys where only part of the
// value decides identity.
//
// Implementations must satisfy Equals(a, b) => HashCode(a) == HashCode(b). The container mixes the returned hash
// code with its own perturbation seed, so HashCode does not have to be well distributed in its low bits.
type HashingStrategy[K any] interface {
	// HashCode - Returns a hash code for key
	HashCode(key K) uint64

	// Equals - Returns true if a and b are to be considered the same key
	Equals(a, b K) bool
}

// Integers - Hashing strategy for any integer type, the value itself is the hash code
type Integers[K constraints.Integer] struct{}

// HashCode - Returns key as an unsigned 64-bit value
func (Integers[K]) HashCode(key K) uint64 { return uint64(key) }

// Equals - Returns a == b
func (Integers[K]) Equals(a, b K) bool { return a == b }

// Strings - Hashing strategy for strings using xxhash
type Strings struct{}

// HashCode - Returns the xxhash digest of key
func (Strings) HashCode(key string) uint64 { return hash.String(key) }

// Equals - Returns a == b
func (Strings) Equals(a, b string) bool { return a == b }

// Bytes - Hashing strategy for byte slices using xxhash, keys are compared by content.
// A key must not be modified while it is stored in a container.
type Bytes struct{}

// HashCode - Returns the xxhash digest of key
func (Bytes) HashCode(key []byte) uint64 { return hash.Bytes(key) }

// Equals - Returns true if a and b have the same length and contents
func (Bytes) Equals(a, b []byte) bool { return bytes.Equal(a, b) }

// Func - Adapts a pair of functions to a HashingStrategy. Both functions must be non nil.
type Func[K any] struct {
	Hash  func(key K) uint64
	Equal func(a, b K) bool
}

// HashCode - Returns F.Hash(key)
func (F Func[K]) HashCode(key K) uint64 { return F.Hash(key) }

// Equals - Returns F.Equal(a, b)
func (F Func[K]) Equals(a, b K) bool { return F.Equal(a, b) }
