// Package list implements a generic intrusive doubly-linked list whose node
// storage is supplied by the caller. It never allocates: Append and
// InsertAfter write their node in place at an address the caller already
// owns, which is what lets the allocator use a linked list for its own
// book-keeping without recursing into itself.
package list

import "unsafe"

// Node is an intrusive list node. Its address is the node: the only way to
// obtain one is to hand List.Append or List.InsertAfter a parcel of memory
// to write it into.
type Node[T any] struct {
	prev, next *Node[T]
	Data       T
}

// Next returns the following node, or nil at the tail.
func (n *Node[T]) Next() *Node[T] { return n.next }

// Prev returns the preceding node, or nil at the head.
func (n *Node[T]) Prev() *Node[T] { return n.prev }

// List is a doubly-linked list of Node[T]. Its zero value is an empty,
// ready-to-use list.
type List[T any] struct {
	head, tail *Node[T]
	length     int
}

func (l *List[T]) First() *Node[T] { return l.head }
func (l *List[T]) Last() *Node[T]  { return l.tail }
func (l *List[T]) Len() int        { return l.length }
func (l *List[T]) IsEmpty() bool   { return l.length == 0 }

// Append writes a new node at addr and links it at the tail of the list.
// addr must reference at least unsafe.Sizeof(Node[T]{}) bytes that the
// caller owns exclusively; whatever was there before is overwritten.
func (l *List[T]) Append(data T, addr unsafe.Pointer) *Node[T] {
	node := (*Node[T])(addr)
	*node = Node[T]{prev: l.tail, Data: data}

	if l.tail != nil {
		l.tail.next = node
	} else {
		l.head = node
	}

	l.tail = node
	l.length++

	return node
}

// InsertAfter writes a new node at addr and splices it immediately after
// existing. existing must already belong to this list.
func (l *List[T]) InsertAfter(existing *Node[T], data T, addr unsafe.Pointer) *Node[T] {
	node := (*Node[T])(addr)
	next := existing.next
	*node = Node[T]{prev: existing, next: next, Data: data}

	existing.next = node
	if next != nil {
		next.prev = node
	} else {
		l.tail = node
	}

	l.length++

	return node
}

// Remove unlinks node from the list. It does not touch the memory node
// occupies; that parcel is the caller's to reuse or hand back to the OS.
func (l *List[T]) Remove(node *Node[T]) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}

	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}

	l.length--
}

// All iterates the list front to back. Usable with range in Go 1.23+.
func (l *List[T]) All() func(yield func(*Node[T]) bool) {
	return func(yield func(*Node[T]) bool) {
		for n := l.head; n != nil; n = n.next {
			if !yield(n) {
				return
			}
		}
	}
}
