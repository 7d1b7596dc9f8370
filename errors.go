package collections

import "fmt"

// InvalidConfiguration - Custom error to inform that a container was constructed with parameters it can not work with,
// for instance a load factor outside the permitted range or a missing hashing strategy or comparator.
type InvalidConfiguration struct {
	msg string
}

// NewInvalidConfiguration - Returns an InvalidConfiguration error with a formatted message
func NewInvalidConfiguration(format string, args ...any) InvalidConfiguration {
	return InvalidConfiguration{msg: fmt.Sprintf(format, args...)}
}

// Error - Used to notify that the configuration is invalid
func (E InvalidConfiguration) Error() string {
	if E.msg == "" {
		return "invalid configuration"
	}
	return E.msg
}

// Is - Matches any InvalidConfiguration regardless of message
func (E InvalidConfiguration) Is(target error) bool {
	_, ok := target.(InvalidConfiguration)
	return ok
}

// BufferAllocationError - Custom error to inform that a backing buffer could not be grown.
// The container that returned it is left exactly as it was before the growth attempt.
//   - OldSize is the length of the buffer before the attempt
//   - NewSize is the length that was requested
type BufferAllocationError struct {
	OldSize int
	NewSize int
	msg     string
}

// NewBufferAllocationError - Returns a BufferAllocationError carrying the attempted sizes
func NewBufferAllocationError(oldSize, newSize int, cause string) BufferAllocationError {
	return BufferAllocationError{OldSize: oldSize, NewSize: newSize, msg: cause}
}

// Error - Used to notify that a buffer could not be allocated
func (E BufferAllocationError) Error() string {
	if E.msg == "" {
		return fmt.Sprintf("not enough memory to allocate buffers for rehashing: %d -> %d", E.OldSize, E.NewSize)
	}
	return fmt.Sprintf("not enough memory to allocate buffers for rehashing: %d -> %d: %s", E.OldSize, E.NewSize, E.msg)
}

// Is - Matches any BufferAllocationError regardless of sizes
func (E BufferAllocationError) Is(target error) bool {
	_, ok := target.(BufferAllocationError)
	return ok
}

// InvalidIndex - Custom error to inform that an index can not be used, such as a negative external index in an
// indexed heap or a slot index that does not denote an insertion point in a hash map
type InvalidIndex struct {
	msg string
}

// NewInvalidIndex - Returns an InvalidIndex error with a formatted message
func NewInvalidIndex(format string, args ...any) InvalidIndex {
	return InvalidIndex{msg: fmt.Sprintf(format, args...)}
}

// Error - Used to notify that an index is invalid
func (E InvalidIndex) Error() string {
	if E.msg == "" {
		return "invalid index"
	}
	return E.msg
}

// Is - Matches any InvalidIndex regardless of message
func (E InvalidIndex) Is(target error) bool {
	_, ok := target.(InvalidIndex)
	return ok
}

// NoSuchElement - Custom error to inform that a cursor has no more elements
type NoSuchElement struct {
	msg string
}

// Error - Used to notify that there are no more elements
func (E NoSuchElement) Error() string {
	if E.msg == "" {
		return "no such element"
	}
	return E.msg
}
