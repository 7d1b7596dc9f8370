//go:build !collectionsdebug

package indexedheap

const debugChecks = false
