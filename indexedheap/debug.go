//go:build collectionsdebug

package indexedheap

// debugChecks - Invariants are verified after every mutation
const debugChecks = true
