// Package mmap reserves anonymous address space for off-heap arenas.
//
// # Overview
//
// A reservation is a contiguous range of virtual memory obtained from the
// operating system without committing physical pages. Pages are backed lazily
// the first time they are written, so a reservation of several gigabytes
// costs nothing until it is used.
//
// # Usage
//
//	m, err := mmap.Reserve(1 << 32)
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//
//	// Hint that the next 1 MiB will be written soon
//	_ = m.AdviseRange(off, 1<<20, mmap.AccessWillNeed)
//
//	// Give everything past the first 64 KiB back to the OS
//	released, err := m.Shrink(64 << 10)
//
// # Platform Support
//
//   - Linux: mmap(2) with MAP_NORESERVE, madvise(2) for hints, munmap(2) for release
//   - macOS: mmap(2) without MAP_NORESERVE (the kernel overcommits anonymous memory)
//   - Windows: VirtualAlloc (demand paged); Shrink decommits the tail; hints are no-ops
//   - Other platforms: a pre-sized heap buffer stands in for the reservation
//
// # Thread Safety
//
// Close is idempotent and protected by an atomic flag. Shrink and Close must
// not race with each other or with readers of Bytes.
package mmap
