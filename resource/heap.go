package resource

import (
	"sync/atomic"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/memlist/memutils"
)

const wordSize = int(unsafe.Sizeof(unsafe.Pointer(nil)))

// HeapOptions contains optional settings when creating a HeapResource
type HeapOptions struct {
	// Limit is the maximum number of bytes that may be outstanding at once. Allocations that
	// would push the resource past this limit fail with ErrOutOfMemory. 0 means no limit.
	Limit int
}

// HeapResource is a MemoryResource that carves blocks out of the Go heap. Blocks are backed by
// pointer-typed words, so references stored in constructed values remain visible to the garbage
// collector for as long as the block is outstanding. Every word is scanned conservatively, so an
// integer payload that happens to hold a heap address also keeps that object alive.
//
// HeapResource keeps no per-block records and cannot detect double frees; wrap it in a Tracker
// for that.
type HeapResource struct {
	limit       int64
	outstanding int64
}

var _ MemoryResource = &HeapResource{}

var defaultResource = NewHeapResource(HeapOptions{})

// DefaultResource returns the process-wide HeapResource used when no upstream is specified
func DefaultResource() MemoryResource {
	return defaultResource
}

// NewHeapResource creates a new HeapResource
func NewHeapResource(options HeapOptions) *HeapResource {
	return &HeapResource{limit: int64(options.Limit)}
}

// OutstandingBytes returns the number of bytes currently allocated from this resource
func (r *HeapResource) OutstandingBytes() int {
	return int(atomic.LoadInt64(&r.outstanding))
}

func (r *HeapResource) Allocate(size int, alignment uint) (unsafe.Pointer, error) {
	if size < 0 {
		return nil, errors.Newf("cannot allocate a negative number of bytes: %d", size)
	}

	alignment, err := memutils.NormalizeAlignment(alignment)
	if err != nil {
		return nil, err
	}

	if size == 0 {
		return nil, nil
	}

	outstanding := atomic.AddInt64(&r.outstanding, int64(size))
	if r.limit > 0 && outstanding > r.limit {
		atomic.AddInt64(&r.outstanding, -int64(size))
		return nil, errors.Wrapf(ErrOutOfMemory, "allocating %d bytes would exceed the heap limit of %d bytes", size, r.limit)
	}

	blockSize := size
	if memutils.DebugMargin > 0 {
		blockSize = memutils.AlignUp(size, 4) + memutils.DebugMargin
	}

	words := (blockSize + wordSize - 1) / wordSize
	padding := 0
	if int(alignment) > wordSize {
		padding = int(alignment)/wordSize - 1
	}

	backing := make([]unsafe.Pointer, words+padding)
	base := unsafe.Pointer(&backing[0])
	offset := int(memutils.AlignAddress(uintptr(base), alignment) - uintptr(base))
	ptr := unsafe.Add(base, offset)

	if memutils.DebugMargin > 0 {
		memutils.WriteMagicValue(ptr, memutils.AlignUp(size, 4))
	}

	return ptr, nil
}

func (r *HeapResource) Deallocate(ptr unsafe.Pointer, size int, alignment uint) error {
	if ptr == nil {
		return nil
	}

	if size <= 0 {
		return errors.Newf("cannot deallocate a block of %d bytes", size)
	}

	if !memutils.ValidateMagicValue(ptr, memutils.AlignUp(size, 4)) {
		panic("MEMORY CORRUPTION DETECTED AFTER FREED ALLOCATION")
	}

	// Drop any references the block still holds
	words := unsafe.Slice((*unsafe.Pointer)(ptr), (size+wordSize-1)/wordSize)
	for i := range words {
		words[i] = nil
	}

	atomic.AddInt64(&r.outstanding, -int64(size))
	return nil
}

func (r *HeapResource) IsEqual(other MemoryResource) bool {
	heap, ok := other.(*HeapResource)
	return ok && heap == r
}
