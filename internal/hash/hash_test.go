//go:build unit

package hash

import (
	"github.com/stretchr/testify/assert"
	"math/bits"
	"testing"
)

func TestMix64(t *testing.T) {
	t.Run("spreads sequential values over low bits", func(t *testing.T) {
		// Prepare
		const mask = 1<<10 - 1
		visit := make([]int, mask+1)

		// Execute
		for i := uint64(0); i < 1<<14; i++ {
			visit[Mix64(i)&mask]++
		}

		// Check
		for slot, n := range visit {
			assert.Greaterf(t, n, 0, "slot #%d visited at least once", slot)
			assert.Lessf(t, n, 64, "slot #%d not overloaded", slot)
		}
	})

	t.Run("flipping one input bit flips many output bits", func(t *testing.T) {
		for bit := 0; bit < 64; bit++ {
			diff := bits.OnesCount64(Mix64(0x1234) ^ Mix64(0x1234^(1<<bit)))
			assert.Greaterf(t, diff, 10, "avalanche for bit #%d", bit)
		}
	})
}

func TestPerturbed(t *testing.T) {
	t.Run("different seeds give different hashes", func(t *testing.T) {
		// Execute
		a := Perturbed(42, 1)
		b := Perturbed(42, 2)

		// Check
		assert.NotEqual(t, a, b, "seed changes hash")
		assert.Equal(t, a, Perturbed(42, 1), "hash is deterministic for a seed")
	})
}

func TestNewSeed(t *testing.T) {
	t.Run("seeds differ between calls", func(t *testing.T) {
		// Execute
		seeds := make(map[uint64]struct{})
		for i := 0; i < 100; i++ {
			seeds[NewSeed()] = struct{}{}
		}

		// Check
		assert.Len(t, seeds, 100, "all seeds unique")
	})
}

func TestBytesAndString(t *testing.T) {
	t.Run("string and byte digests agree", func(t *testing.T) {
		// Prepare
		s := "robin hood"

		// Execute
		hb := Bytes([]byte(s))
		hs := String(s)

		// Check
		assert.Equal(t, hb, hs, "same digest for same content")
		assert.NotEqual(t, hs, String("robin hoods"), "different content different digest")
	})
}
