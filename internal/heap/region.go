package heap

import (
	"unsafe"

	"github.com/orizon-lang/memalloc/internal/list"
)

// Region wraps a single range obtained from the platform layer. Its header
// is itself a node in the manager's region list; the first block header
// sits immediately after it, and every subsequent block header lies inside
// the region's own payload.
type Region struct {
	payloadSize uintptr
	blocks      list.List[Block]
}

// RegionNode is a pointer to a region header in place.
type RegionNode = *list.Node[Region]

var regionHeaderSize = unsafe.Sizeof(list.Node[Region]{})

// totalSize is the full byte range this region occupies, header included —
// exactly what was requested from the platform layer at birth, and so
// exactly what must be handed back to it on release.
func (r *Region) totalSize() uintptr {
	return regionHeaderSize + r.payloadSize
}

// mergeWithPrev absorbs block's immediate predecessor into block if that
// predecessor is free, and returns the resulting block (the predecessor,
// enlarged, when a merge happened; block unchanged otherwise). It removes
// the absorbed predecessor's free-index entry; it never touches block's own
// free-index membership, which remains the manager's responsibility.
func (m *Manager) mergeWithPrev(region RegionNode, block BlockNode) BlockNode {
	prev := block.Prev()
	if prev == nil || !prev.Data.free {
		return block
	}

	m.removeFree(prev)
	prev.Data.size += blockHeaderSize + block.Data.size
	region.Data.blocks.Remove(block)

	return prev
}

// mergeWithNext is the symmetric case: block absorbs its successor if the
// successor is free.
func (m *Manager) mergeWithNext(region RegionNode, block BlockNode) BlockNode {
	next := block.Next()
	if next == nil || !next.Data.free {
		return block
	}

	m.removeFree(next)
	block.Data.size += blockHeaderSize + next.Data.size
	region.Data.blocks.Remove(next)

	return block
}
