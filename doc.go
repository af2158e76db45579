// Package bumpbuf provides a bump allocator for building variable-length byte
// sequences in place.
//
// An Arena reserves a large range of address space up front (2^capacityBits
// bytes) without committing physical memory. Callers build one byte sequence
// at a time directly at the arena's top through a Buffer, then freeze it into
// a fixed-length slice that stays valid until the arena is released. There is
// no per-sequence heap allocation and no copy on freeze.
//
// # Quick Start
//
//	a, err := bumpbuf.New(32) // 4 GiB of address space
//	if err != nil { ... }
//	defer a.Release()
//
//	buf, _ := a.BeginAllocation()
//	buf.Append([]byte("hello, "))
//	buf.AppendString("world")
//	greeting, _ := buf.Freeze() // []byte("hello, world"), backed by the arena
//
// Typical consumers are interning pools and string or bytecode emitters that
// produce many small sequences and keep all of them alive together.
//
// # Buffer Lifecycle
//
//	BeginAllocation ──► Open ──(Append, Pop, Truncate, ...)──► Freeze  ──► Frozen
//	                      │
//	                      └────────────────────────────────► Discard ──► Discarded
//
// Only one buffer can be open per arena; BeginAllocation returns ErrBufferOpen
// until the open one is frozen or discarded. A discarded buffer's bytes are
// dropped and the next buffer starts empty at the same position.
//
// # Capacity
//
// The fast append methods do not check capacity. NearCapacity reports when
// more than half of the reservation is in use; that is the caller's cue to
// flush or switch arenas. Writing past Capacity panics with a runtime bounds
// error. TryAppend and the io.Writer methods return ErrCapacityExceeded
// instead.
//
// ReclaimUnused returns the pages past the current usage to the operating
// system once an arena is known to be complete. Release returns everything;
// all frozen slices become invalid.
//
// # Errors
//
// Failures of the operating system memory calls are fatal: they are reported
// as *FatalError and match errors.Is(err, ErrFatal). Everything else is
// either a sentinel error (ErrBufferOpen, ErrStaleBuffer, ...) or a silent
// no-op (Pop on an empty buffer, Truncate beyond the length).
//
// # Thread Safety
//
// An Arena and its Buffer are not safe for concurrent use. A
// resource.Controller may be shared by arenas on different goroutines.
package bumpbuf
