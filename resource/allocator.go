package resource

import (
	"unsafe"

	"github.com/cockroachdb/errors"
)

// Destroyer is implemented by values that need to run cleanup when an Allocator destroys them.
// Either a value or a pointer receiver will be honored.
type Destroyer interface {
	Destroy()
}

// Allocator is a typed handle onto a MemoryResource. It sizes and aligns requests for values of
// type T and constructs/destroys values in the storage it hands out. Allocator values are cheap
// to copy; every copy refers to the same resource.
type Allocator[T any] struct {
	resource MemoryResource
}

// NewAllocator creates an Allocator that draws storage from the provided resource. A nil
// resource selects DefaultResource().
func NewAllocator[T any](resource MemoryResource) Allocator[T] {
	if resource == nil {
		resource = DefaultResource()
	}
	return Allocator[T]{resource: resource}
}

// Resource returns the MemoryResource this Allocator draws from
func (a Allocator[T]) Resource() MemoryResource {
	if a.resource == nil {
		return DefaultResource()
	}
	return a.resource
}

// IsEqual reports whether storage allocated through a can be released through other
func (a Allocator[T]) IsEqual(other Allocator[T]) bool {
	return a.Resource().IsEqual(other.Resource())
}

func (a Allocator[T]) layout(count int) (int, uint) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		size = 1
	}
	return size * count, uint(unsafe.Alignof(zero))
}

// Allocate reserves uninitialized storage for count values of T
func (a Allocator[T]) Allocate(count int) (*T, error) {
	if count <= 0 {
		return nil, errors.Newf("cannot allocate storage for %d values", count)
	}

	size, alignment := a.layout(count)
	ptr, err := a.Resource().Allocate(size, alignment)
	if err != nil {
		return nil, err
	}
	if ptr == nil {
		return nil, errors.Newf("memory resource returned no storage for a %d byte request", size)
	}

	return (*T)(ptr), nil
}

// Deallocate releases storage for count values previously returned by Allocate. The values
// must already have been destroyed.
func (a Allocator[T]) Deallocate(ptr *T, count int) error {
	if ptr == nil {
		return nil
	}

	size, alignment := a.layout(count)
	return a.Resource().Deallocate(unsafe.Pointer(ptr), size, alignment)
}

// Construct places value into storage previously returned by Allocate
func (a Allocator[T]) Construct(ptr *T, value T) {
	*ptr = value
}

// Destroy runs the value's Destroyer, if it has one, and zeroes its storage
func (a Allocator[T]) Destroy(ptr *T) {
	if destroyer, ok := any(ptr).(Destroyer); ok {
		destroyer.Destroy()
	} else if destroyer, ok := any(*ptr).(Destroyer); ok {
		destroyer.Destroy()
	}

	var zero T
	*ptr = zero
}
