package hash

import (
	"github.com/cespare/xxhash/v2"
	"math/rand/v2"
)

// phi - 2^64 divided by the golden ratio, used by MixPhi
const phi uint64 = 0x9E3779B97F4A7C15

// Mix64 - Returns the murmur3 64-bit finalizer of x. Every bit of x affects the low bits of the result.
func Mix64(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

// MixPhi - Returns a cheap golden ratio multiplicative mix of x. It is weaker than Mix64 but good enough to spread
// sequential integers.
func MixPhi(x uint64) uint64 {
	h := x * phi
	return h ^ (h >> 32)
}

// Perturbed - Returns the final hash value of hashCode for a container using perturbation seed
func Perturbed(hashCode, seed uint64) uint64 {
	return Mix64(hashCode ^ seed)
}

// NewSeed - Returns a new random perturbation seed, drawn once per container instance
func NewSeed() uint64 {
	return MixPhi(rand.Uint64())
}

// Bytes - Returns the xxhash 64-bit digest of b
func Bytes(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// String - Returns the xxhash 64-bit digest of s
func String(s string) uint64 {
	return xxhash.Sum64String(s)
}
