// Package collections holds the error types shared by the containers in this module.
//
// The containers themselves live in sub packages:
//   - openhash is a family of open addressing hash sets and maps using linear probing with Robin Hood displacement
//     and backward shift deletion.
//   - indexedheap is a binary min heap where entries are addressed by a caller supplied integer index, which
//     makes it possible to update or remove entries in O(log n) time.
//
// None of the containers are safe for concurrent use, callers needing that must synchronize access themselves.
package collections
