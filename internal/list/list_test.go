package list

import (
	"testing"
	"unsafe"
)

// nodeStorage allocates a byte buffer large enough to hold a Node[T] and
// returns its address. A real caller of this package hands out memory
// carved from a region; tests stand in with a plain Go allocation, exactly
// as the upstream Rust test suite uses std::alloc in place of the real
// allocator's own storage.
func nodeStorage[T any]() unsafe.Pointer {
	buf := make([]byte, unsafe.Sizeof(Node[T]{}))
	return unsafe.Pointer(&buf[0])
}

func TestNewListIsEmpty(t *testing.T) {
	var l List[int]

	if !l.IsEmpty() || l.Len() != 0 {
		t.Fatalf("new list should be empty, got len=%d", l.Len())
	}

	if l.First() != nil || l.Last() != nil {
		t.Fatal("new list should have no head or tail")
	}
}

func TestAppendSingleElement(t *testing.T) {
	var l List[int]

	n := l.Append(42, nodeStorage[int]())

	if l.Len() != 1 || l.IsEmpty() {
		t.Fatalf("expected len 1, got %d", l.Len())
	}

	if l.First() != n || l.Last() != n {
		t.Fatal("single node should be both head and tail")
	}

	if n.Data != 42 {
		t.Fatalf("expected data 42, got %d", n.Data)
	}
}

func TestAppendMultipleElementsAndIterate(t *testing.T) {
	var l List[int]

	values := []int{1, 2, 3}
	nodes := make([]*Node[int], 0, len(values))

	for _, v := range values {
		nodes = append(nodes, l.Append(v, nodeStorage[int]()))
	}

	if l.Len() != 3 {
		t.Fatalf("expected len 3, got %d", l.Len())
	}

	var collected []int
	for n := range l.All() {
		collected = append(collected, n.Data)
	}

	for i, v := range values {
		if collected[i] != v {
			t.Fatalf("iteration order mismatch at %d: want %d got %d", i, v, collected[i])
		}
	}

	if nodes[0].Next() != nodes[1] || nodes[0].Prev() != nil {
		t.Fatal("node 0 links wrong")
	}

	if nodes[1].Prev() != nodes[0] || nodes[1].Next() != nodes[2] {
		t.Fatal("node 1 links wrong")
	}

	if nodes[2].Prev() != nodes[1] || nodes[2].Next() != nil {
		t.Fatal("node 2 links wrong")
	}
}

func TestRemoveHead(t *testing.T) {
	var l List[int]

	n1 := l.Append(10, nodeStorage[int]())
	n2 := l.Append(20, nodeStorage[int]())

	l.Remove(n1)

	if l.Len() != 1 || l.First() != n2 || l.Last() != n2 {
		t.Fatal("removing head left inconsistent list")
	}

	if n2.Prev() != nil {
		t.Fatal("new head should have nil prev")
	}
}

func TestRemoveTail(t *testing.T) {
	var l List[int]

	n1 := l.Append(10, nodeStorage[int]())
	n2 := l.Append(20, nodeStorage[int]())

	l.Remove(n2)

	if l.Len() != 1 || l.First() != n1 || l.Last() != n1 {
		t.Fatal("removing tail left inconsistent list")
	}

	if n1.Next() != nil {
		t.Fatal("new tail should have nil next")
	}
}

func TestRemoveMiddle(t *testing.T) {
	var l List[int]

	n1 := l.Append(10, nodeStorage[int]())
	n2 := l.Append(20, nodeStorage[int]())
	n3 := l.Append(30, nodeStorage[int]())

	l.Remove(n2)

	if l.Len() != 2 {
		t.Fatalf("expected len 2, got %d", l.Len())
	}

	if n1.Next() != n3 || n3.Prev() != n1 {
		t.Fatal("middle removal did not relink neighbors")
	}
}

func TestInsertAfter(t *testing.T) {
	var l List[int]

	n1 := l.Append(10, nodeStorage[int]())
	n2 := l.InsertAfter(n1, 20, nodeStorage[int]())

	if l.Len() != 2 || l.Last() != n2 {
		t.Fatal("insert after tail should extend the tail")
	}

	if n1.Next() != n2 || n2.Prev() != n1 {
		t.Fatal("insert after tail linked wrong")
	}

	mid := l.InsertAfter(n1, 15, nodeStorage[int]())

	if l.Len() != 3 {
		t.Fatalf("expected len 3, got %d", l.Len())
	}

	var collected []int
	for n := range l.All() {
		collected = append(collected, n.Data)
	}

	want := []int{10, 15, 20}
	for i, v := range want {
		if collected[i] != v {
			t.Fatalf("order mismatch at %d: want %d got %d", i, v, collected[i])
		}
	}

	if n1.Next() != mid || mid.Next() != n2 || n2.Prev() != mid {
		t.Fatal("splice links wrong after insert after non-tail node")
	}
}

func TestRemoveLastRemainingNode(t *testing.T) {
	var l List[int]

	n1 := l.Append(99, nodeStorage[int]())
	l.Remove(n1)

	if !l.IsEmpty() || l.First() != nil || l.Last() != nil {
		t.Fatal("removing the only node should leave the list empty")
	}
}
