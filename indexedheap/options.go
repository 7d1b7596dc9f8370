package indexedheap

import "go.uber.org/zap"

// Option - Configures optional behaviour of an IndexedHeap
type Option[V any] func(*IndexedHeap[V])

// WithDefaultValue - Sets the value returned by queries for indices that are not present and by Top and PopTop
// on an empty heap. Without it the zero value of V is used.
func WithDefaultValue[V any](value V) Option[V] {
	return func(h *IndexedHeap[V]) {
		h.defaultValue = value
	}
}

// WithLogger - Sets the logger used to report buffer growth. Without it nothing is logged.
func WithLogger[V any](logger *zap.Logger) Option[V] {
	return func(h *IndexedHeap[V]) {
		h.logger = logger
	}
}
