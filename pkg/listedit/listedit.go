// Package listedit implements a generic ordered-list editor: the splice
// semantics behind drag-and-drop reordering. A drop either inserts a new
// item at a target index or moves an existing item by identifier; both are
// plain slice splices with clamped indexes.
package listedit

// Item is anything with a stable identifier.
type Item interface {
	ItemID() string
}

// List is an ordered collection of items. The zero value is usable.
type List[T Item] struct {
	items []T
}

// New returns a list seeded with the given items.
func New[T Item](items []T) *List[T] {
	l := &List[T]{items: make([]T, len(items))}
	copy(l.items, items)
	return l
}

// Items returns the current order.
func (l *List[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	return len(l.items)
}

func (l *List[T]) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i > len(l.items) {
		return len(l.items)
	}
	return i
}

func (l *List[T]) indexOf(id string) int {
	for i, it := range l.items {
		if it.ItemID() == id {
			return i
		}
	}
	return -1
}

// InsertAt inserts item at index. Out-of-range indexes clamp to the ends.
func (l *List[T]) InsertAt(item T, index int) {
	index = l.clamp(index)
	l.items = append(l.items, item)
	copy(l.items[index+1:], l.items[index:])
	l.items[index] = item
}

// Append adds item at the end.
func (l *List[T]) Append(item T) {
	l.items = append(l.items, item)
}

// Move splices the item at from out of the list and back in at to.
// Returns false when from is out of range; to clamps.
func (l *List[T]) Move(from, to int) bool {
	if from < 0 || from >= len(l.items) {
		return false
	}
	item := l.items[from]
	l.items = append(l.items[:from], l.items[from+1:]...)
	to = l.clamp(to)
	l.items = append(l.items, item)
	copy(l.items[to+1:], l.items[to:])
	l.items[to] = item
	return true
}

// MoveID moves the item with the given identifier to index to.
// Unknown identifiers are a no-op returning false.
func (l *List[T]) MoveID(id string, to int) bool {
	from := l.indexOf(id)
	if from == -1 {
		return false
	}
	return l.Move(from, to)
}

// Remove deletes the item with the given identifier, returning false when
// it is not present.
func (l *List[T]) Remove(id string) bool {
	i := l.indexOf(id)
	if i == -1 {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true
}
