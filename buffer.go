package bumpbuf

import (
	"fmt"
	"iter"
)

// Buffer is a growable byte sequence built in place at the arena's top.
//
// A Buffer is a small handle; its length lives in the arena. It is valid from
// BeginAllocation until Freeze or Discard, after which every copy of the
// handle is stale: Freeze and Discard return ErrStaleBuffer and all other
// methods panic with it.
//
// The append methods do not check the remaining capacity. Writing past
// Capacity is a caller error that panics with a runtime bounds error. Use
// Available, TryAppend or the io.Writer methods for a checked path.
type Buffer struct {
	arena *Arena
	gen   uint64
}

func (b *Buffer) owner() *Arena {
	a := b.arena
	if a == nil || !a.busy || a.gen != b.gen {
		panic(ErrStaleBuffer)
	}
	return a
}

func (b *Buffer) valid() bool {
	a := b.arena
	return a != nil && a.busy && a.gen == b.gen
}

// Len returns the current length of the buffer.
func (b *Buffer) Len() int {
	return b.owner().open
}

// Offset returns the position of the buffer's first byte within the arena.
// After Freeze, Arena.View(Offset, n) returns the frozen bytes again.
func (b *Buffer) Offset() int {
	return b.owner().top
}

// Available returns how many more bytes fit before Capacity is reached.
func (b *Buffer) Available() int {
	a := b.owner()
	return len(a.data) - a.top - a.open
}

// Bytes returns the buffer's contents as a slice of exactly Len bytes.
// Writes through the slice modify the buffer. The slice has no spare
// capacity, so appending to it never writes into the arena.
func (b *Buffer) Bytes() []byte {
	a := b.owner()
	end := a.top + a.open
	return a.data[a.top:end:end]
}

// AppendByte appends c.
func (b *Buffer) AppendByte(c byte) {
	a := b.owner()
	a.data[a.top+a.open] = c
	a.open++
}

// Append appends p. p may alias the arena, including this buffer.
func (b *Buffer) Append(p []byte) {
	a := b.owner()
	end := a.top + a.open
	copy(a.data[end:end+len(p)], p)
	a.open += len(p)
}

// AppendString appends s.
func (b *Buffer) AppendString(s string) {
	a := b.owner()
	end := a.top + a.open
	copy(a.data[end:end+len(s)], s)
	a.open += len(s)
}

// AppendSeq appends every byte produced by seq, in order.
func (b *Buffer) AppendSeq(seq iter.Seq[byte]) {
	for c := range seq {
		b.AppendByte(c)
	}
}

// AppendWithin appends a copy of the buffer's own bytes [from, to).
// The range must lie within [0, Len()).
func (b *Buffer) AppendWithin(from, to int) {
	a := b.owner()
	if from < 0 || to < from || to > a.open {
		panic(fmt.Sprintf("bumpbuf: AppendWithin range [%d:%d] out of bounds with length %d", from, to, a.open))
	}
	end := a.top + a.open
	n := to - from
	copy(a.data[end:end+n], a.data[a.top+from:a.top+to])
	a.open += n
}

// Pop removes and returns the last byte. It returns false if the buffer is empty.
func (b *Buffer) Pop() (byte, bool) {
	a := b.owner()
	if a.open == 0 {
		return 0, false
	}
	a.open--
	return a.data[a.top+a.open], true
}

// Truncate shortens the buffer to n bytes.
// If n is negative or not less than Len, Truncate does nothing.
func (b *Buffer) Truncate(n int) {
	a := b.owner()
	if n < 0 || n > a.open {
		return
	}
	a.open = n
}

// TryAppendByte appends c, or returns ErrCapacityExceeded if it does not fit.
func (b *Buffer) TryAppendByte(c byte) error {
	a := b.owner()
	if a.top+a.open >= len(a.data) {
		return ErrCapacityExceeded
	}
	a.data[a.top+a.open] = c
	a.open++
	return nil
}

// TryAppend appends p, or returns ErrCapacityExceeded and leaves the buffer
// unchanged if it does not fit.
func (b *Buffer) TryAppend(p []byte) error {
	a := b.owner()
	if len(p) > len(a.data)-a.top-a.open {
		return fmt.Errorf("%w: need %d bytes, %d available", ErrCapacityExceeded, len(p), len(a.data)-a.top-a.open)
	}
	b.Append(p)
	return nil
}

// Write implements io.Writer on the checked path.
func (b *Buffer) Write(p []byte) (int, error) {
	if err := b.TryAppend(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteByte implements io.ByteWriter on the checked path.
func (b *Buffer) WriteByte(c byte) error {
	return b.TryAppendByte(c)
}

// WriteString implements io.StringWriter on the checked path.
func (b *Buffer) WriteString(s string) (int, error) {
	a := b.owner()
	if len(s) > len(a.data)-a.top-a.open {
		return 0, fmt.Errorf("%w: need %d bytes, %d available", ErrCapacityExceeded, len(s), len(a.data)-a.top-a.open)
	}
	b.AppendString(s)
	return len(s), nil
}

// Prefetch hints that the next n bytes past the end of the buffer will be
// written soon, so the kernel can back them before the first write faults.
// It is purely advisory: errors are ignored and the hint may be skipped by
// the arena's resource controller.
func (b *Buffer) Prefetch(n int) {
	a := b.owner()
	a.prefetch(a.top+a.open, n)
}

// Freeze fixes the buffer's length and returns its contents.
//
// No copy is made: the slice points into the arena and stays valid, and
// independently mutable, until the arena is released. The next
// BeginAllocation starts immediately after it.
func (b *Buffer) Freeze() ([]byte, error) {
	if !b.valid() {
		return nil, ErrStaleBuffer
	}
	return b.arena.freeze(), nil
}

// Discard abandons the buffer. Its bytes are dropped and the next buffer
// starts empty at the same position.
func (b *Buffer) Discard() error {
	if !b.valid() {
		return ErrStaleBuffer
	}
	b.arena.discard()
	return nil
}
