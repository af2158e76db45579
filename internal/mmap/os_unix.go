//go:build linux || darwin

package mmap

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// MmapPtr and MunmapPtr bypass the x/sys mapping registry, which only
// accepts the exact slice returned by Mmap and so cannot unmap a tail.
func osReserve(size int) ([]byte, error) {
	prot := unix.PROT_READ | unix.PROT_WRITE

	ptr, err := unix.MmapPtr(-1, 0, nil, uintptr(size), prot, reserveFlags)
	if err != nil {
		return nil, err
	}

	return unsafe.Slice((*byte)(ptr), size), nil
}

func osReleaseTail(data []byte, keep int) error {
	tail := data[keep:]
	if len(tail) == 0 {
		return nil
	}
	return unix.MunmapPtr(unsafe.Pointer(&tail[0]), uintptr(len(tail))) //nolint:gosec // unsafe is required to unmap a sub-range
}

func osRelease(base []byte, mapped int) error {
	if mapped == 0 {
		return nil
	}
	return unix.MunmapPtr(unsafe.Pointer(&base[0]), uintptr(mapped)) //nolint:gosec // unsafe is required to unmap the reservation
}

func osAdvise(data []byte, pattern AccessPattern) error {
	if len(data) == 0 {
		return nil
	}

	advice := unix.MADV_NORMAL
	if pattern == AccessWillNeed {
		advice = unix.MADV_WILLNEED
	}

	// Advice is non-critical; a misaligned range is not worth failing over.
	err := unix.Madvise(data, advice)
	if err == unix.EINVAL {
		return nil
	}
	return err
}
