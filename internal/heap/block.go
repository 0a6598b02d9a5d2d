package heap

import (
	"unsafe"

	"github.com/orizon-lang/memalloc/internal/list"
)

// Block is the header-plus-payload unit carved out of a region. The header
// is the surrounding list.Node[Block] itself: prev/next splice the block
// into its region's block list, and Data holds the fields below. A block
// never owns allocated storage of its own — its header lives at whatever
// address the region (or a prior split) placed it at.
type Block struct {
	size   uintptr // payload size in bytes, excluding this header
	free   bool
	region *list.Node[Region]
}

// BlockNode is a pointer to a block header in place.
type BlockNode = *list.Node[Block]

var blockHeaderSize = unsafe.Sizeof(list.Node[Block]{})

// blockPayload returns the address of the bytes a caller would receive for
// this block: immediately past its header.
func blockPayload(block BlockNode) unsafe.Pointer {
	return unsafe.Pointer(uintptr(unsafe.Pointer(block)) + blockHeaderSize)
}

// blockFromPayload recovers a block header from a payload address
// previously handed to a caller.
func blockFromPayload(payload unsafe.Pointer) BlockNode {
	return (BlockNode)(unsafe.Pointer(uintptr(payload) - blockHeaderSize))
}
