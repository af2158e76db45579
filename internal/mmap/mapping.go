package mmap

import (
	"os"
	"sync/atomic"

	"github.com/hupe1980/bumpbuf/internal/conv"
)

// Mapping is an anonymous reservation of address space.
// It owns the underlying memory and is responsible for releasing it.
type Mapping struct {
	base   []byte // the full reservation; only its address is used after Shrink
	data   []byte // still-mapped prefix of the reservation
	closed atomic.Bool
}

// PageSize returns the operating system page size.
func PageSize() int {
	return os.Getpagesize()
}

// Reserve maps size bytes of anonymous read-write memory.
// Physical pages are not committed until they are touched.
func Reserve(size int) (*Mapping, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	data, err := osReserve(size)
	if err != nil {
		return nil, err
	}

	return &Mapping{
		base: data[:size:size],
		data: data[:size:size],
	}, nil
}

// Bytes returns the still-mapped part of the reservation.
// Warning: The slice is valid only until Close() is called.
// Accessing the slice after Close() results in undefined behavior (likely a crash).
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// AdviseRange hints to the kernel how the n bytes at off will be accessed.
// The start is widened down to a page boundary because madvise(2) requires it.
func (m *Mapping) AdviseRange(off, n int, pattern AccessPattern) error {
	if m.closed.Load() {
		return ErrClosed
	}
	if off < 0 || n < 0 || off > len(m.data) || n > len(m.data)-off {
		return ErrOutOfBounds
	}
	if n == 0 {
		return nil
	}
	start := conv.AlignDown(off, PageSize())
	return osAdvise(m.data[start:off+n], pattern)
}

// Shrink releases every page past size back to the operating system.
// size is rounded up to the page size. It returns the number of bytes released.
// Shrink is irreversible; the mapping cannot grow again.
func (m *Mapping) Shrink(size int) (int, error) {
	if m.closed.Load() {
		return 0, ErrClosed
	}
	if size < 0 {
		return 0, ErrInvalidSize
	}

	keep := conv.AlignUp(size, PageSize())
	if keep >= len(m.data) {
		return 0, nil
	}

	if err := osReleaseTail(m.data, keep); err != nil {
		return 0, err
	}

	released := len(m.data) - keep
	m.data = m.data[:keep:keep]
	return released, nil
}

// Close releases the whole mapping. It is idempotent.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	mapped := len(m.data)
	m.data = nil
	return osRelease(m.base, mapped)
}
