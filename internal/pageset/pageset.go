// Package pageset tracks which pages of a reservation have been touched.
//
// The ledger is a 64-bit Roaring bitmap of page numbers. Bump allocation
// touches pages in long contiguous runs, which Roaring stores as run
// containers, so the ledger stays a few words in size even for reservations
// of many gigabytes.
package pageset

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/bumpbuf/internal/conv"
)

// Set is a set of page numbers within a single reservation.
// It is not safe for concurrent use.
type Set struct {
	rb        *roaring64.Bitmap
	pageShift uint
}

// New creates an empty set for pages of pageSize bytes, which must be a power of two.
func New(pageSize int) *Set {
	shift := uint(0)
	for (1 << shift) < pageSize {
		shift++
	}
	return &Set{
		rb:        roaring64.New(),
		pageShift: shift,
	}
}

// Touch marks every page overlapping the byte range [off, off+n).
func (s *Set) Touch(off, n int) {
	if n <= 0 {
		return
	}
	start, err := conv.IntToUint64(off)
	if err != nil {
		return
	}
	end, err := conv.IntToUint64(off + n - 1)
	if err != nil {
		return
	}
	s.rb.AddRange(start>>s.pageShift, end>>s.pageShift+1)
}

// DropFrom removes every page that starts at or after byte offset off.
func (s *Set) DropFrom(off int) {
	start, err := conv.IntToUint64(off)
	if err != nil {
		start = 0
	}
	first := (start + (1 << s.pageShift) - 1) >> s.pageShift
	s.rb.RemoveRange(first, math.MaxUint64)
}

// Pages returns the number of pages in the set.
func (s *Set) Pages() uint64 {
	return s.rb.GetCardinality()
}

// Bytes returns the number of bytes covered by the pages in the set.
func (s *Set) Bytes() uint64 {
	return s.rb.GetCardinality() << s.pageShift
}

// Clear empties the set.
func (s *Set) Clear() {
	s.rb.Clear()
}
