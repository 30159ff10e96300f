package resource

import "github.com/cockroachdb/errors"

// ErrInvalidDeallocation is returned when a resource is asked to release an address it holds no
// record of: a double free, or a pointer that came from somewhere else.
var ErrInvalidDeallocation = errors.New("attempted to deallocate a block that is not outstanding")

// ErrOutOfMemory is returned when a resource cannot satisfy an allocation request
var ErrOutOfMemory = errors.New("out of memory")
