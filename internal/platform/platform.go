// Package platform hides the OS differences behind the three primitives the
// manager needs: reserve/commit a page-aligned range, release one back, and
// report the page size. Everything here is a thin wrapper over a single
// syscall; acquire_unix.go and acquire_windows.go hold the actual calls.
package platform

import "sync"

var (
	pageSizeOnce   sync.Once
	pageSizeCached uintptr
)

// PageSize returns the virtual memory page size, querying the OS once and
// caching the result process-wide. Each manager calls it under its own
// Allocator's lock, but separate Allocators hold separate locks, so the
// sync.Once is what keeps concurrent first calls from racing.
func PageSize() uintptr {
	pageSizeOnce.Do(func() {
		pageSizeCached = queryPageSize()
	})

	return pageSizeCached
}
