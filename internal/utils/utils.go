package utils

import (
	"fmt"
	"github.com/gostonefire/collections"
	"github.com/gostonefire/collections/internal/conf"
	"math"
	"math/bits"
)

// RoundUp2 - Returns the nearest power of two that is equal to or larger than a, values below 1 gives 1
func RoundUp2(a int) int {
	if a <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(a-1))
}

// CheckLoadFactor - Returns an InvalidConfiguration error if loadFactor is outside the permitted range
func CheckLoadFactor(loadFactor float64) (err error) {
	if math.IsNaN(loadFactor) || loadFactor < conf.MinLoadFactor || loadFactor > conf.MaxLoadFactor {
		err = collections.NewInvalidConfiguration("the load factor should be in range [%.2f, %.2f]: %f",
			conf.MinLoadFactor, conf.MaxLoadFactor, loadFactor)
	}
	return
}

// MinBufferSize - Returns the smallest power of two buffer length that can hold expectedElements without a resize
// given loadFactor. The returned length always leaves at least one slot empty.
func MinBufferSize(expectedElements int, loadFactor float64) (arraySize int, err error) {
	if expectedElements < 0 {
		err = collections.NewInvalidConfiguration("number of elements must be non-negative: %d", expectedElements)
		return
	}

	length := math.Ceil(float64(expectedElements) / loadFactor)
	if length == float64(expectedElements) {
		length++
	}
	length = math.Max(float64(conf.MinHashArrayLength), length)

	if length > float64(conf.MaxHashArrayLength) {
		err = collections.NewBufferAllocationError(0, int(math.Min(length, math.MaxInt32)),
			fmt.Sprintf("maximum array size exceeded for %d elements with load factor %.2f", expectedElements, loadFactor))
		return
	}

	arraySize = RoundUp2(int(length))
	return
}

// NextBufferSize - Returns the buffer length to grow to from arraySize, which must be a power of two
func NextBufferSize(arraySize int) (next int, err error) {
	if arraySize >= conf.MaxHashArrayLength {
		err = collections.NewBufferAllocationError(arraySize, arraySize<<1, "maximum array size exceeded")
		return
	}
	next = arraySize << 1
	return
}

// ExpandAtCount - Returns the number of assigned slots at which a buffer of length arraySize must grow.
// The result is always below arraySize so that probing always finds an empty slot.
func ExpandAtCount(arraySize int, loadFactor float64) int {
	return int(math.Min(float64(arraySize-1), math.Ceil(float64(arraySize)*loadFactor)))
}

// GrowHeapSize - Returns the new length of the indexed heap index buffer needed to address requested,
// applying conf.HeapGrowthFactor so that repeated growth is amortized.
//   - current is the present length of the buffer
//   - requested is the smallest length that is needed
func GrowHeapSize(current, requested int) (next int, err error) {
	if requested < 0 || requested > conf.MaxHeapArrayLength {
		err = collections.NewBufferAllocationError(current, requested, "maximum array size exceeded")
		return
	}
	if requested <= current {
		next = current
		return
	}

	grown := math.Ceil(float64(requested) * conf.HeapGrowthFactor)
	next = int(math.Min(grown, float64(conf.MaxHeapArrayLength)))
	return
}
