package heap

import (
	"unsafe"

	"github.com/orizon-lang/memalloc/internal/list"
	"github.com/orizon-lang/memalloc/internal/platform"
)

// Manager holds the region list and free-list index and implements
// find/grow/split on allocate and coalesce/shrink on deallocate. It is not
// internally synchronized: the caller (the root façade) serializes every
// entry point with its own lock, exactly as the manager's own metadata
// traversal assumes a single writer.
type Manager struct {
	regions       list.List[Region]
	free          freeIndex
	pageSize      uintptr
	minRegionSize uintptr

	allocCount uint64
	freeCount  uint64
}

// effectivePageSize returns the cached page size, querying the platform
// layer once on first use. Safe without its own lock because every caller
// already holds the façade's single mutex around the whole manager.
func (m *Manager) effectivePageSize() uintptr {
	if m.pageSize == 0 {
		m.pageSize = platform.PageSize()
	}

	return m.pageSize
}

// NewManager returns an empty manager with no regions and nothing indexed.
// minRegionSize is a floor under every region grown, applied before the
// page-alignment rule in grow; it never shrinks a region below what a
// request actually needs.
func NewManager(minRegionSize uintptr) *Manager {
	return &Manager{minRegionSize: minRegionSize}
}

// Stats is a snapshot of the manager's structural state, recomputed by
// walking the region and block lists rather than kept in a side-tracking
// table: the only metadata this package trusts is the in-band metadata the
// regions and blocks already carry.
type Stats struct {
	RegionCount    int
	BlockCount     int
	FreeBlockCount int
	BytesReserved  uintptr
	BytesInUse     uintptr
	AllocCount     uint64
	FreeCount      uint64
}

// Stats walks the region and block lists under the caller's lock and
// reports the manager's current shape.
func (m *Manager) Stats() Stats {
	s := Stats{
		RegionCount: m.regions.Len(),
		AllocCount:  m.allocCount,
		FreeCount:   m.freeCount,
	}

	for region := range m.regions.All() {
		s.BytesReserved += region.Data.totalSize()

		for block := range region.Data.blocks.All() {
			s.BlockCount++

			if block.Data.free {
				s.FreeBlockCount++
			} else {
				s.BytesInUse += block.Data.size
			}
		}
	}

	return s
}

// grow asks the platform layer for a new region sized to comfortably hold
// one block of at least payloadNeeded bytes, writes the region header, a
// single free block spanning the whole payload, and that block's
// free-index node. It reports false, mutating nothing, if the platform
// refuses the request.
func (m *Manager) grow(payloadNeeded uintptr) bool {
	gross := payloadNeeded + blockHeaderSize
	regionSize := alignUp(maxUintptr(gross+regionHeaderSize, m.minRegionSize), m.effectivePageSize())

	base, ok := platform.Acquire(regionSize)
	if !ok {
		return false
	}

	regionNode := m.regions.Append(Region{payloadSize: regionSize - regionHeaderSize}, base)

	blockAddr := unsafe.Pointer(uintptr(base) + regionHeaderSize)
	blockPayloadSize := regionSize - regionHeaderSize - blockHeaderSize
	blockNode := regionNode.Data.blocks.Append(Block{size: blockPayloadSize, region: regionNode}, blockAddr)

	m.insertFree(blockNode)

	return true
}

// takeFromBlock serves request bytes out of the free block chosen by
// findFit, splitting off an unused tail back into the free index when the
// remainder is large enough to be worth keeping as its own block. It
// returns the payload pointer the caller receives.
func (m *Manager) takeFromBlock(block BlockNode, request uintptr) unsafe.Pointer {
	target := targetSize(request)
	splitOffset := alignUp(blockHeaderSize+target, wordSize)
	total := block.Data.size + blockHeaderSize

	m.removeFree(block)
	block.Data.free = false

	if total >= splitOffset+blockHeaderSize+minBlockSize {
		region := block.Data.region
		remainder := total - splitOffset - blockHeaderSize
		block.Data.size = splitOffset - blockHeaderSize

		newAddr := unsafe.Pointer(uintptr(unsafe.Pointer(block)) + splitOffset)
		sibling := region.Data.blocks.InsertAfter(block, Block{size: remainder, region: region}, newAddr)

		m.insertFree(sibling)
	}

	return blockPayload(block)
}

// Allocate serves a request of size bytes, growing the heap at most once
// if no existing free block fits. It returns nil on platform exhaustion;
// no region or index state is mutated in that case.
func (m *Manager) Allocate(size uintptr) unsafe.Pointer {
	target := targetSize(size)

	block := m.findFit(target)
	if block == nil {
		if !m.grow(target) {
			return nil
		}

		block = m.findFit(target)
		if block == nil {
			return nil
		}
	}

	m.allocCount++

	return m.takeFromBlock(block, size)
}

// AllocateZeroed is Allocate followed by zeroing exactly size bytes of the
// returned payload.
func (m *Manager) AllocateZeroed(size uintptr) unsafe.Pointer {
	p := m.Allocate(size)
	if p == nil {
		return nil
	}

	clear(unsafe.Slice((*byte)(p), size))

	return p
}

// Deallocate recovers the block header behind ptr, marks it free, coalesces
// it with free neighbors in its region, and either reinserts the resulting
// block into the free index or releases the whole region to the platform
// layer if it was the region's only block. ptr == nil and ptr pointing at
// an already-free block are both no-ops, the latter checked before any
// merge work so a redundant free stays O(1). That check reads the block
// header, so it only covers a block whose region is still held: once a
// free has released the region, a second free of the same pointer reads
// memory already returned to the platform.
func (m *Manager) Deallocate(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}

	block := blockFromPayload(ptr)
	if block.Data.free {
		return
	}

	block.Data.free = true
	region := block.Data.region

	merged := m.mergeWithPrev(region, block)
	merged = m.mergeWithNext(region, merged)

	m.freeCount++

	if region.Data.blocks.Len() == 1 {
		m.regions.Remove(region)
		platform.Release(unsafe.Pointer(region), region.Data.totalSize())

		return
	}

	m.insertFree(merged)
}
