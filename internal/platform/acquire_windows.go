//go:build windows

package platform

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

func queryPageSize() uintptr {
	var info windows.SystemInfo

	windows.GetSystemInfo(&info)

	return uintptr(info.PageSize)
}

// Acquire reserves and commits length bytes with VirtualAlloc. length must
// be a multiple of the page size.
func Acquire(length uintptr) (unsafe.Pointer, bool) {
	addr, err := windows.VirtualAlloc(0, length, windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil || addr == 0 {
		return nil, false
	}

	return unsafe.Pointer(addr), true
}

// Release returns a range previously obtained from Acquire back to the OS.
// VirtualFree with MEM_RELEASE ignores the supplied size and frees the
// entire original reservation; length is accepted for symmetry with Acquire.
func Release(addr unsafe.Pointer, length uintptr) {
	_ = length
	_ = windows.VirtualFree(uintptr(addr), 0, windows.MEM_RELEASE)
}
