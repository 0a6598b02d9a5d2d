package heap

import (
	"unsafe"

	"github.com/orizon-lang/memalloc/internal/list"
	"github.com/orizon-lang/memalloc/memerr"
)

// freeIndex is the secondary intrusive list mapping "free block" to
// itself: each node's Data is a pointer to the free block it represents,
// and the node itself is physically stored inside that block's own
// payload — the node for a free block and the block's payload begin at
// the same address.
type freeIndex = list.List[BlockNode]

var freeIndexNodeSize = unsafe.Sizeof(list.Node[BlockNode]{})

// minBlockSize is the smallest payload any block may have: large enough
// that a free-index node (including its own prev/next pointers) always
// fits once the block becomes free, matching the original's
// mem::size_of::<Node<NonNull<Node<Block>>>>() rather than a bare pointer.
var minBlockSize = freeIndexNodeSize

// insertFree writes a free-index node at block's payload address, appends
// it to the index, and marks the block free.
func (m *Manager) insertFree(block BlockNode) {
	m.free.Append(block, blockPayload(block))
	block.Data.free = true
}

// removeFree unlinks block's free-index node, found by linear scan, and
// raises an invariant fault if the block is not in the index.
// Clearing the free flag is left to the caller: some coalescing paths
// remove a block from the index only to reinsert it moments later under a
// different address, and bundling the flag here would force a spurious
// flip in between.
func (m *Manager) removeFree(block BlockNode) {
	for node := range m.free.All() {
		if node.Data == block {
			m.free.Remove(node)
			return
		}
	}

	memerr.Invariant("FREE_INDEX_MISS", "free block not found in the free-list index")
}

// findFit performs a first-fit search of the free-list index for a block
// whose payload is at least targetSize bytes.
func (m *Manager) findFit(size uintptr) BlockNode {
	for node := range m.free.All() {
		if node.Data.Data.size >= size {
			return node.Data
		}
	}

	return nil
}
