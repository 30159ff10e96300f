// Package resource provides pluggable memory resources: the MemoryResource contract consumed
// by allocator-aware containers, a Go-heap upstream implementation, a bookkeeping Tracker that
// records every outstanding block it services, and the typed Allocator handle containers use
// to place elements in a resource's storage.
package resource

import "unsafe"

//go:generate mockgen -source resource.go -destination mocks/resource.go -package mock_resource

// MemoryResource is the capability that allocator-aware containers consume. Implementations
// hand out raw storage and take it back; they do not construct or destroy values.
type MemoryResource interface {
	// Allocate returns a block of at least size bytes aligned to alignment. An alignment of 0
	// requests memutils.DefaultAlignment; any other alignment must be a power of two. A size of
	// 0 returns a nil address and no error.
	Allocate(size int, alignment uint) (unsafe.Pointer, error)
	// Deallocate returns a block previously produced by Allocate. size and alignment must match
	// the values the block was allocated with. Deallocating a nil address is a no-op.
	Deallocate(ptr unsafe.Pointer, size int, alignment uint) error
	// IsEqual reports whether memory allocated from this resource may be deallocated through
	// other, and vice versa.
	IsEqual(other MemoryResource) bool
}
