package chain

// Iterator is a forward cursor over a List's elements. It borrows the node it points to and is
// only valid until the next structural change to its list (Append, RemoveLast, Clear, CopyFrom,
// MoveFrom, Move). Using an iterator after such a change panics.
//
// An iterator that has moved past the last element is equal to the list's End sentinel, and
// Value must not be called on it.
type Iterator[T any] struct {
	list          *List[T]
	current       *node[T]
	modifications uint64
}

// Begin returns an iterator pointing at the first element, or End if the list is empty
func (l *List[T]) Begin() Iterator[T] {
	return Iterator[T]{list: l, current: l.head, modifications: l.modifications}
}

// End returns the sentinel iterator that follows the last element
func (l *List[T]) End() Iterator[T] {
	return Iterator[T]{list: l, modifications: l.modifications}
}

func (it *Iterator[T]) checkValid() {
	if it.list != nil && it.list.modifications != it.modifications {
		panic("iterator used after its list was modified")
	}
}

// Done returns true if the iterator has moved past the last element
func (it Iterator[T]) Done() bool {
	return it.current == nil
}

// Value returns a pointer to the element the iterator points at. Changes made through the pointer
// are visible in the list.
func (it Iterator[T]) Value() *T {
	it.checkValid()
	if it.current == nil {
		panic("attempting to dereference the end iterator")
	}
	return it.current.data
}

// Advance moves the iterator to the next element
func (it *Iterator[T]) Advance() {
	it.checkValid()
	if it.current == nil {
		panic("attempting to advance past the end iterator")
	}
	it.current = it.current.next
}

// Next returns a copy of the iterator moved to the next element, leaving this one where it is
func (it Iterator[T]) Next() Iterator[T] {
	it.Advance()
	return it
}

// Equal returns true if both iterators point at the same node, or both are at the end
func (it Iterator[T]) Equal(other Iterator[T]) bool {
	return it.current == other.current
}

// ForEach calls visit for each element in order until visit returns false
func (l *List[T]) ForEach(visit func(value *T) bool) {
	for it := l.Begin(); !it.Done(); it.Advance() {
		if !visit(it.Value()) {
			return
		}
	}
}
