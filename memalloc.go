// Package memalloc is a general-purpose heap allocator that sits directly
// above the operating system's virtual-memory primitives. Every byte of
// its own metadata lives inside the memory it manages: regions acquired
// from the platform layer, blocks carved out of those regions, and a
// free-list index threaded through the payloads of free blocks
// themselves. It never calls any other allocator to maintain its own
// structures.
//
// The free-space manager (internal/heap) does the actual work; this
// package is the thin, lock-holding adapter a host program installs as
// its allocator of record.
package memalloc

import (
	"sync"
	"unsafe"

	"github.com/orizon-lang/memalloc/internal/heap"
	"github.com/orizon-lang/memalloc/memerr"
)

// Config carries the handful of knobs this allocator's design allows to
// vary. It deliberately does not carry pool sizes, size classes, or arena
// limits: a single global lock and a first-fit free-list index are not
// optional features of this allocator, they are its whole design.
type Config struct {
	InitialRegionHint uintptr
	LeakCheckOnClose  bool
}

// Option configures an Allocator at construction time.
type Option func(*Config)

func defaultConfig() *Config {
	return &Config{
		InitialRegionHint: 64 * 1024,
		LeakCheckOnClose:  false,
	}
}

// WithInitialRegionHint sets a floor, in bytes, under the size of every
// region grown, applied before the size is rounded up to the page size. A
// request that needs more than the floor still gets a region large enough.
func WithInitialRegionHint(size uintptr) Option {
	return func(c *Config) { c.InitialRegionHint = size }
}

// WithLeakCheckOnClose makes Close panic via memerr if any region is still
// held when called, instead of returning quietly. Close releases no
// regions either way.
func WithLeakCheckOnClose(enabled bool) Option {
	return func(c *Config) { c.LeakCheckOnClose = enabled }
}

// Allocator is a single installable heap: one mutex guarding one manager.
// The zero value is not usable; construct with New.
type Allocator struct {
	mu      sync.Mutex
	manager *heap.Manager
	config  *Config
}

// New constructs an empty Allocator. No memory is reserved from the
// platform until the first allocation.
func New(options ...Option) *Allocator {
	config := defaultConfig()
	for _, opt := range options {
		opt(config)
	}

	return &Allocator{
		manager: heap.NewManager(config.InitialRegionHint),
		config:  config,
	}
}

// Allocate reserves size bytes and returns a pointer to them, word-aligned,
// or nil if the platform refused to provide more memory. Requested
// alignment beyond the machine word is not supported in this revision.
func (a *Allocator) Allocate(size uintptr) unsafe.Pointer {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.manager.Allocate(size)
}

// AllocateZeroed is Allocate followed by zeroing exactly size bytes of the
// returned payload.
func (a *Allocator) AllocateZeroed(size uintptr) unsafe.Pointer {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.manager.AllocateZeroed(size)
}

// Deallocate returns a pointer previously obtained from Allocate or
// AllocateZeroed. It is a no-op on nil and on a pointer already freed
// whose region is still held; if the earlier free released the region, a
// second free reads released memory. Passing a pointer not obtained from
// this Allocator is undefined
// behavior and is not detected.
func (a *Allocator) Deallocate(ptr unsafe.Pointer) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.manager.Deallocate(ptr)
}

// Stats reports the allocator's current structural shape: region and
// block counts, bytes reserved from the platform versus bytes actually
// handed to callers, and lifetime allocate/deallocate counts.
func (a *Allocator) Stats() heap.Stats {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.manager.Stats()
}

// Close checks the leak-check-on-close configuration option. If it was
// enabled and any region is still held, it raises an InvariantViolation;
// there is nothing else productive an allocator can do with memory it can
// no longer account for once the host program is shutting it down.
func (a *Allocator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.config.LeakCheckOnClose {
		return
	}

	if stats := a.manager.Stats(); stats.RegionCount != 0 {
		memerr.Invariant("LEAK_ON_CLOSE", "regions still held at Close")
	}
}

// global is the process-wide default instance. Like the teacher's own
// GlobalAllocator, it is pure data behind one mutex: no destructors, no
// lifecycle beyond the process itself.
var global = New()

// Allocate reserves size bytes from the process-wide default Allocator.
func Allocate(size uintptr) unsafe.Pointer { return global.Allocate(size) }

// AllocateZeroed reserves size zeroed bytes from the process-wide default
// Allocator.
func AllocateZeroed(size uintptr) unsafe.Pointer { return global.AllocateZeroed(size) }

// Deallocate returns ptr to the process-wide default Allocator.
func Deallocate(ptr unsafe.Pointer) { global.Deallocate(ptr) }

// Stats reports the process-wide default Allocator's current shape.
func Stats() heap.Stats { return global.Stats() }
