//go:build unix

package platform

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

func queryPageSize() uintptr {
	return uintptr(unix.Getpagesize())
}

// Acquire reserves and commits a zero-filled, readable/writable range of
// exactly length bytes via an anonymous private mapping. length must be a
// multiple of the page size. It returns false if the OS refused the
// mapping (exhaustion); the manager never panics on that, it just fails
// the allocation that triggered the request.
func Acquire(length uintptr) (unsafe.Pointer, bool) {
	b, err := unix.Mmap(-1, 0, int(length), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, false
	}

	return unsafe.Pointer(&b[0]), true
}

// Release returns a range previously obtained from Acquire back to the OS.
func Release(addr unsafe.Pointer, length uintptr) {
	b := unsafe.Slice((*byte)(addr), length)
	_ = unix.Munmap(b)
}
