// Package chain provides List, a sequence container backed by a singly linked chain of nodes whose
// elements live in storage obtained from a resource.Allocator. The list has no knowledge of how its
// allocator is implemented; binding it to a resource.Tracker makes every element's storage
// observable.
//
// Links run forward only and the list keeps a shortcut to its tail but no back-links. As a result
// RemoveLast must scan from the head to find the new tail and is O(n), and Clear is O(n²).
package chain

import (
	"github.com/cockroachdb/errors"
	clone "github.com/huandu/go-clone/generic"
	"github.com/vkngwrapper/memlist/memutils"
	"github.com/vkngwrapper/memlist/resource"
)

// ErrEmptyContainer is returned by operations that need at least one element when the list is empty
var ErrEmptyContainer = errors.New("list is empty")

// Cloner is implemented by element types that know how to deep copy themselves. When an element
// type does not implement Cloner, copies are made with a reflective deep copy.
type Cloner[T any] interface {
	Clone() T
}

type node[T any] struct {
	data *T
	next *node[T]
}

// List is a singly linked sequence of T. The list owns its nodes and every element's storage,
// which is obtained from the allocator the list was created with. A List is not safe for
// concurrent use, and must not be used after the resource behind its allocator has been destroyed.
type List[T any] struct {
	head      *node[T]
	tail      *node[T]
	size      int
	allocator resource.Allocator[T]

	// Incremented on every structural change so stale iterators can be caught
	modifications uint64
}

// New creates an empty List bound to the provided allocator
func New[T any](allocator resource.Allocator[T]) *List[T] {
	return &List[T]{allocator: allocator}
}

// NewFromValues creates a List bound to the provided allocator and appends each value in order
func NewFromValues[T any](allocator resource.Allocator[T], values ...T) (*List[T], error) {
	l := New(allocator)
	for _, value := range values {
		err := l.Append(value)
		if err != nil {
			destroyErr := l.Destroy()
			return nil, errors.CombineErrors(err, destroyErr)
		}
	}

	return l, nil
}

// NewCopy creates a List bound to the provided allocator that holds a deep copy of every element
// in source, in order. source's own allocator is not used.
func NewCopy[T any](allocator resource.Allocator[T], source *List[T]) (*List[T], error) {
	l := New(allocator)
	err := l.appendCopies(source)
	if err != nil {
		destroyErr := l.Destroy()
		return nil, errors.CombineErrors(err, destroyErr)
	}

	return l, nil
}

// Move creates a new List that takes over this list's nodes and allocator without touching any
// element. This list is left empty and remains usable.
func (l *List[T]) Move() *List[T] {
	moved := &List[T]{
		head:      l.head,
		tail:      l.tail,
		size:      l.size,
		allocator: l.allocator,
	}
	l.release()

	memutils.DebugValidate(moved)
	return moved
}

// Allocator returns the allocator this list obtains element storage from
func (l *List[T]) Allocator() resource.Allocator[T] {
	return l.allocator
}

// Len returns the number of elements in the list
func (l *List[T]) Len() int { return l.size }

// IsEmpty returns true if the list holds no elements
func (l *List[T]) IsEmpty() bool { return l.size == 0 }

// Append adds a deep copy of value to the end of the list
func (l *List[T]) Append(value T) error {
	return l.appendValue(copyValue(value))
}

// AppendMove adds the value pointed to by value to the end of the list without copying it, and
// resets *value to its zero value. Ownership of anything value referenced passes to the list.
func (l *List[T]) AppendMove(value *T) error {
	err := l.appendValue(*value)
	if err != nil {
		return err
	}

	var zero T
	*value = zero
	return nil
}

func (l *List[T]) appendValue(value T) error {
	data, err := l.allocator.Allocate(1)
	if err != nil {
		return err
	}
	l.allocator.Construct(data, value)

	newNode := &node[T]{data: data}
	if l.size == 0 {
		l.head = newNode
		l.tail = newNode
	} else {
		l.tail.next = newNode
		l.tail = newNode
	}
	l.size++
	l.modifications++

	memutils.DebugValidate(l)
	return nil
}

func (l *List[T]) appendCopies(source *List[T]) error {
	for current := source.head; current != nil; current = current.next {
		err := l.Append(*current.data)
		if err != nil {
			return err
		}
	}

	return nil
}

// RemoveLast destroys the last element and releases its storage. Because links only run forward,
// the new tail is found by walking from the head, so this is O(n).
func (l *List[T]) RemoveLast() error {
	if l.size == 0 {
		return ErrEmptyContainer
	}

	var previous *node[T]
	if l.head != l.tail {
		previous = l.head
		for previous.next != l.tail {
			previous = previous.next
		}
	}

	removed := l.tail
	l.allocator.Destroy(removed.data)

	if previous == nil {
		l.head = nil
		l.tail = nil
	} else {
		previous.next = nil
		l.tail = previous
	}
	l.size--
	l.modifications++

	err := l.allocator.Deallocate(removed.data, 1)
	removed.data = nil
	if err != nil {
		return errors.Wrap(err, "failed to release the storage of the last element")
	}

	memutils.DebugValidate(l)
	return nil
}

// Front returns a pointer to the first element
func (l *List[T]) Front() (*T, error) {
	if l.size == 0 {
		return nil, ErrEmptyContainer
	}
	return l.head.data, nil
}

// Back returns a pointer to the last element
func (l *List[T]) Back() (*T, error) {
	if l.size == 0 {
		return nil, ErrEmptyContainer
	}
	return l.tail.data, nil
}

// Clear removes every element by repeatedly calling RemoveLast
func (l *List[T]) Clear() error {
	for l.size > 0 {
		err := l.RemoveLast()
		if err != nil {
			return err
		}
	}

	return nil
}

// Destroy ends the list's use of its allocator by removing every element. The list remains usable.
func (l *List[T]) Destroy() error {
	return l.Clear()
}

// CopyFrom replaces this list's contents with a deep copy of source's elements, allocated through
// this list's allocator. Copying a list onto itself does nothing.
func (l *List[T]) CopyFrom(source *List[T]) error {
	if l == source {
		return nil
	}

	err := l.Clear()
	if err != nil {
		return err
	}

	return l.appendCopies(source)
}

// MoveFrom replaces this list's contents with source's elements and leaves source empty. When both
// lists draw from the same resource, source's nodes are adopted as-is. Otherwise each element is
// moved into storage from this list's allocator and source's storage is released through its own
// allocator. If that storage cannot be obtained, this list is left empty and source keeps its
// elements. Moving a list onto itself does nothing.
func (l *List[T]) MoveFrom(source *List[T]) error {
	if l == source {
		return nil
	}

	err := l.Clear()
	if err != nil {
		return err
	}

	if l.allocator.IsEqual(source.allocator) {
		l.head = source.head
		l.tail = source.tail
		l.size = source.size
		l.modifications++
		source.release()

		memutils.DebugValidate(l)
		return nil
	}

	// Reserve every destination block up front so a failure leaves source untouched
	storage := make([]*T, 0, source.size)
	for i := 0; i < source.size; i++ {
		data, allocErr := l.allocator.Allocate(1)
		if allocErr != nil {
			for _, reserved := range storage {
				allocErr = errors.CombineErrors(allocErr, l.allocator.Deallocate(reserved, 1))
			}
			return allocErr
		}
		storage = append(storage, data)
	}

	// The elements now belong to this list, so source's storage is released without destroying them
	var releaseErr error
	index := 0
	for current := source.head; current != nil; current = current.next {
		data := storage[index]
		index++

		l.allocator.Construct(data, *current.data)
		newNode := &node[T]{data: data}
		if l.size == 0 {
			l.head = newNode
		} else {
			l.tail.next = newNode
		}
		l.tail = newNode
		l.size++

		var zero T
		*current.data = zero
		releaseErr = errors.CombineErrors(releaseErr, source.allocator.Deallocate(current.data, 1))
	}
	l.modifications++
	source.release()

	memutils.DebugValidate(l)
	return releaseErr
}

// release forgets the node chain without destroying anything. Used once another list owns it.
func (l *List[T]) release() {
	l.head = nil
	l.tail = nil
	l.size = 0
	l.modifications++
}

// Values returns a copy of the list's elements in order
func (l *List[T]) Values() []T {
	values := make([]T, 0, l.size)
	for current := l.head; current != nil; current = current.next {
		values = append(values, *current.data)
	}
	return values
}

// Validate checks the structural invariants of the node chain
func (l *List[T]) Validate() error {
	if l.size < 0 {
		return errors.Newf("list has negative size %d", l.size)
	}

	if l.size == 0 {
		if l.head != nil || l.tail != nil {
			return errors.New("empty list still references nodes")
		}
		return nil
	}

	if l.head == nil || l.tail == nil {
		return errors.Newf("list of size %d is missing its head or tail", l.size)
	}

	if l.tail.next != nil {
		return errors.New("the tail node links to another node")
	}

	count := 0
	tailReached := false
	for current := l.head; current != nil; current = current.next {
		count++
		if current.data == nil {
			return errors.Newf("node %d holds no element", count-1)
		}
		if current == l.tail {
			tailReached = true
		}
		if count > l.size {
			return errors.Newf("more nodes are reachable from the head than the declared size %d", l.size)
		}
	}

	if !tailReached {
		return errors.New("the tail node is not reachable from the head")
	}

	if count != l.size {
		return errors.Newf("the declared size of the list (%d) does not match the number of reachable nodes (%d)", l.size, count)
	}

	return nil
}

func copyValue[T any](value T) T {
	if cloner, ok := any(value).(Cloner[T]); ok {
		return cloner.Clone()
	}
	return clone.Clone(value)
}
