package bumpbuf

import (
	"context"
	"fmt"
	"math/bits"
	"time"

	"github.com/hupe1980/bumpbuf/internal/conv"
	"github.com/hupe1980/bumpbuf/internal/mmap"
	"github.com/hupe1980/bumpbuf/internal/pageset"
	"github.com/hupe1980/bumpbuf/resource"
)

const (
	// MinCapacityBits is the smallest accepted reservation (one 4 KiB page).
	MinCapacityBits = 12
	// MaxCapacityBits is the largest accepted reservation: 64 TiB on 64-bit
	// platforms, 1 GiB on 32-bit ones.
	MaxCapacityBits = 30 + 16*(bits.UintSize/64)
	// DefaultCapacityBits reserves 4 GiB where the address space allows it.
	DefaultCapacityBits = min(32, MaxCapacityBits)

	// headerOverhead is the number of reserved bytes spent on bookkeeping.
	// Arena state lives on the Go heap, so data starts at the first reserved byte.
	headerOverhead = 0

	defaultAcquireTimeout = 100 * time.Millisecond
)

// Stats is a snapshot of arena usage.
type Stats struct {
	Reserved     int    // bytes of address space reserved at creation
	Capacity     int    // bytes still mapped (shrinks on ReclaimUnused)
	Used         int    // Frozen + Open
	Frozen       int    // bytes in frozen buffers
	Open         int    // length of the open buffer
	Buffers      uint64 // buffers frozen
	Discards     uint64 // buffers discarded
	Reclaimed    int    // bytes returned to the OS by ReclaimUnused
	TouchedPages uint64 // pages written, frozen or prefetched
	TouchedBytes uint64 // TouchedPages in bytes
	Released     bool
}

// Arena is a bump allocator over a single reserved region of address space.
//
// Byte sequences are built in place through the Buffer returned by
// BeginAllocation and fixed with Buffer.Freeze. Frozen slices stay valid
// until Release. Nothing is ever freed individually.
//
// An Arena is not safe for concurrent use.
type Arena struct {
	mapping  *mmap.Mapping
	data     []byte // mapped part of the reservation
	reserved int
	bits     uint8

	top  int // start of the open region
	open int // length of the open region

	gen      uint64
	busy     bool
	released bool
	warned   bool

	pages     *pageset.Set
	freezes   uint64
	discards  uint64
	reclaimed int

	logger     *Logger
	metrics    MetricsCollector
	controller *resource.Controller
	charged    int64 // bytes held against controller
}

// New reserves 2^capacityBits bytes of address space.
//
// Failure to obtain the reservation from the operating system returns a
// *FatalError (errors.Is(err, ErrFatal)); there is no retry or degraded mode.
func New(capacityBits uint8, optFns ...Option) (*Arena, error) {
	return NewContext(context.Background(), capacityBits, optFns...)
}

// MustNew is like New but panics on error.
func MustNew(capacityBits uint8, optFns ...Option) *Arena {
	a, err := New(capacityBits, optFns...)
	if err != nil {
		panic(err)
	}
	return a
}

// NewContext is like New. ctx bounds the wait for the resource controller's
// budget; without a deadline a 100ms timeout applies. The reservation
// syscall itself cannot be canceled.
func NewContext(ctx context.Context, capacityBits uint8, optFns ...Option) (*Arena, error) {
	if capacityBits < MinCapacityBits || capacityBits > MaxCapacityBits {
		return nil, fmt.Errorf("%w: %d bits, want [%d, %d]", ErrInvalidCapacity, capacityBits, MinCapacityBits, MaxCapacityBits)
	}
	size, err := conv.ShiftToInt(capacityBits)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCapacity, err)
	}

	o := applyOptions(optFns)
	logger := o.logger.WithArena(size)

	if !o.controller.TryAcquireMemory(int64(size)) {
		if err := acquireBudget(ctx, o.controller, size); err != nil {
			logger.LogReserve(ctx, capacityBits, size, err)
			return nil, fmt.Errorf("bumpbuf: acquire reservation budget: %w", err)
		}
	}

	m, err := mmap.Reserve(size)
	if err != nil {
		o.controller.ReleaseMemory(int64(size))
		ferr := &FatalError{Op: "reserve", Size: size, Err: err}
		logger.LogReserve(ctx, capacityBits, size, ferr)
		return nil, ferr
	}
	logger.LogReserve(ctx, capacityBits, size, nil)

	a := &Arena{
		mapping:    m,
		data:       m.Bytes(),
		reserved:   size,
		bits:       capacityBits,
		pages:      pageset.New(mmap.PageSize()),
		logger:     logger,
		metrics:    o.metricsCollector,
		controller: o.controller,
	}
	if o.controller != nil {
		a.charged = int64(size)
	}
	return a, nil
}

// acquireBudget waits for the controller's budget, bounded by ctx or the
// default timeout when ctx has no deadline.
func acquireBudget(ctx context.Context, rc *resource.Controller, size int) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultAcquireTimeout)
		defer cancel()
	}
	return rc.AcquireMemory(ctx, int64(size))
}

// BeginAllocation returns the handle for the open region.
//
// At most one buffer is open at a time: until the returned buffer is frozen
// or discarded, further calls return ErrBufferOpen.
func (a *Arena) BeginAllocation() (Buffer, error) {
	if a.released {
		return Buffer{}, ErrReleased
	}
	if a.busy {
		return Buffer{}, ErrBufferOpen
	}
	a.gen++
	a.busy = true
	return Buffer{arena: a, gen: a.gen}, nil
}

// Used returns the bytes frozen so far plus the length of the open region.
func (a *Arena) Used() int {
	return a.top + a.open
}

// Frozen returns the bytes frozen so far.
func (a *Arena) Frozen() int {
	return a.top
}

// Reserved returns the size of the reservation made at creation.
func (a *Arena) Reserved() int {
	return a.reserved
}

// CapacityBits returns the capacityBits the arena was created with.
func (a *Arena) CapacityBits() uint8 {
	return a.bits
}

// Capacity returns the number of bytes that may still be written, counted from
// the start of the arena. It equals Reserved until ReclaimUnused shrinks it.
func (a *Arena) Capacity() int {
	return len(a.data)
}

// NearCapacity reports whether more than half of the reservation is in use.
//
// It is advisory: nothing stops writes past the halfway mark. Callers should
// treat it as the signal to flush or start a new arena.
func (a *Arena) NearCapacity() bool {
	return a.Used()+headerOverhead > a.reserved/2
}

// Generation returns the number of buffers handed out so far.
func (a *Arena) Generation() uint64 {
	return a.gen
}

// View returns n frozen bytes starting at offset off.
// Offsets come from Buffer.Offset taken before the buffer was frozen.
func (a *Arena) View(off, n int) ([]byte, error) {
	if a.released {
		return nil, ErrReleased
	}
	if off < 0 || n < 0 || off > a.top || n > a.top-off {
		return nil, fmt.Errorf("%w: offset %d length %d outside frozen range [0:%d]", ErrOutOfRange, off, n, a.top)
	}
	end := off + n
	return a.data[off:end:end], nil
}

// ReclaimUnused rounds the current usage up to the page size and returns
// every page beyond it to the operating system. It returns the number of
// bytes released.
//
// Reclamation is irreversible: Capacity shrinks and the arena cannot grow
// past the new boundary. An OS failure returns a *FatalError.
func (a *Arena) ReclaimUnused() (int, error) {
	if a.released {
		return 0, ErrReleased
	}

	ctx := context.Background()
	used := a.Used()

	released, err := a.mapping.Shrink(used)
	if err != nil {
		keep := conv.AlignUp(used, mmap.PageSize())
		ferr := &FatalError{Op: "reclaim", Size: len(a.data) - keep, Err: err}
		a.logger.LogReclaim(ctx, used, 0, ferr)
		a.metrics.RecordReclaim(0, ferr)
		return 0, ferr
	}

	a.data = a.mapping.Bytes()
	if released > 0 {
		a.pages.DropFrom(len(a.data))
		a.reclaimed += released
		if a.charged > 0 {
			a.controller.ReleaseMemory(int64(released))
			a.charged -= int64(released)
		}
	}

	a.logger.LogReclaim(ctx, used, released, nil)
	a.metrics.RecordReclaim(released, nil)
	return released, nil
}

// Release returns the whole reservation to the operating system.
//
// Every slice frozen from the arena and any open buffer become invalid.
// Release is idempotent. A failing release syscall is logged, not returned:
// there is nothing useful a caller can do about it at teardown.
func (a *Arena) Release() {
	if a.released {
		return
	}
	a.released = true
	a.busy = false

	used := a.Used()
	var ferr error
	if err := a.mapping.Close(); err != nil {
		ferr = &FatalError{Op: "release", Size: len(a.data), Err: err}
	}
	a.logger.LogRelease(context.Background(), used, ferr)

	a.controller.ReleaseMemory(a.charged)
	a.charged = 0
	a.data = nil
	a.pages.Clear()
}

// Stats returns a snapshot of the arena's usage.
func (a *Arena) Stats() Stats {
	return Stats{
		Reserved:     a.reserved,
		Capacity:     len(a.data),
		Used:         a.Used(),
		Frozen:       a.top,
		Open:         a.open,
		Buffers:      a.freezes,
		Discards:     a.discards,
		Reclaimed:    a.reclaimed,
		TouchedPages: a.pages.Pages(),
		TouchedBytes: a.pages.Bytes(),
		Released:     a.released,
	}
}

// Usage returns the percentage of the reservation in use.
func (a *Arena) Usage() float64 {
	if a.reserved == 0 {
		return 0
	}
	return float64(a.Used()) / float64(a.reserved) * 100
}

func (a *Arena) String() string {
	stats := a.Stats()
	return fmt.Sprintf(
		"Arena{reserved: %.2f MB, capacity: %.2f MB, used: %.2f KB, open: %d, buffers: %d, usage: %.1f%%}",
		float64(stats.Reserved)/(1024*1024),
		float64(stats.Capacity)/(1024*1024),
		float64(stats.Used)/1024,
		stats.Open,
		stats.Buffers,
		a.Usage(),
	)
}

func (a *Arena) freeze() []byte {
	start, n := a.top, a.open
	end := start + n
	out := a.data[start:end:end]

	a.top = end
	a.open = 0
	a.busy = false
	a.freezes++
	a.pages.Touch(start, n)
	a.metrics.RecordFreeze(n)

	if !a.warned && a.NearCapacity() {
		a.warned = true
		a.logger.LogNearCapacity(context.Background(), a.Used(), a.reserved)
	}
	return out
}

func (a *Arena) discard() {
	n := a.open
	a.pages.Touch(a.top, n)

	a.open = 0
	a.busy = false
	a.discards++
	a.metrics.RecordDiscard(n)
}

func (a *Arena) prefetch(off, n int) {
	if n <= 0 || off >= len(a.data) {
		return
	}
	if rest := len(a.data) - off; n > rest {
		n = rest
	}

	if !a.controller.AllowPrefetch(n) {
		a.metrics.RecordPrefetch(n, true)
		return
	}

	_ = a.mapping.AdviseRange(off, n, mmap.AccessWillNeed)
	a.pages.Touch(off, n)
	a.metrics.RecordPrefetch(n, false)
}
