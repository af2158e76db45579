//go:build windows

package mmap

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

func osReserve(size int) ([]byte, error) {
	// MEM_COMMIT with VirtualAlloc is demand paged: pages are only backed
	// by physical memory when first accessed, like an anonymous mmap.
	addr, err := windows.VirtualAlloc(0, uintptr(size),
		windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

// The address range stays reserved; only the commit charge is returned.
func osReleaseTail(data []byte, keep int) error {
	tail := data[keep:]
	if len(tail) == 0 {
		return nil
	}
	addr := uintptr(unsafe.Pointer(&tail[0]))
	return windows.VirtualFree(addr, uintptr(len(tail)), windows.MEM_DECOMMIT)
}

func osRelease(base []byte, _ int) error {
	if len(base) == 0 {
		return nil
	}
	// MEM_RELEASE frees the entire region, including any decommitted tail.
	return windows.VirtualFree(uintptr(unsafe.Pointer(&base[0])), 0, windows.MEM_RELEASE)
}

func osAdvise(data []byte, pattern AccessPattern) error {
	// Windows has no direct madvise equivalent. PrefetchVirtualMemory would
	// serve AccessWillNeed but requires Windows 8+.
	_ = data
	_ = pattern
	return nil
}
