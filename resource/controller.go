package resource

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"time"

	"github.com/hupe1980/bumpbuf/internal/conv"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrMemoryLimitExceeded is returned when a reservation would exceed the memory limit.
var ErrMemoryLimitExceeded = errors.New("resource: memory limit exceeded")

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for reserved address space.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// PrefetchLimitBytesPerSec is the maximum number of bytes per second that may
	// be advised to the kernel as soon-to-be-written.
	// If 0, unlimited.
	PrefetchLimitBytesPerSec int64
}

// Controller manages resources shared by many arenas.
type Controller struct {
	cfg Config

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	// Prefetch hints
	prefetchLimiter *rate.Limiter
	prefetchBurst   int
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{
		cfg: cfg,
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.PrefetchLimitBytesPerSec > 0 {
		burst, err := conv.Int64ToInt(cfg.PrefetchLimitBytesPerSec)
		if err != nil {
			burst = math.MaxInt
		}
		c.prefetchBurst = burst
		c.prefetchLimiter = rate.NewLimiter(rate.Limit(cfg.PrefetchLimitBytesPerSec), c.prefetchBurst)
	}

	return c
}

// AcquireMemory reserves bytes from the budget.
// If a hard limit is configured and usage would exceed it,
// this blocks until memory is available or ctx is canceled.
// A request larger than the whole limit fails immediately.
func (c *Controller) AcquireMemory(ctx context.Context, bytes int64) error {
	if c == nil {
		return nil
	}
	if bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if bytes > c.cfg.MemoryLimitBytes {
			return ErrMemoryLimitExceeded
		}
		if err := c.memSem.Acquire(ctx, bytes); err != nil {
			return err
		}
	}

	c.memUsed.Add(bytes)
	return nil
}

// TryAcquireMemory reserves bytes without blocking.
// Returns true if acquired, false if limit would be exceeded.
func (c *Controller) TryAcquireMemory(bytes int64) bool {
	if c == nil {
		return true
	}
	if bytes <= 0 {
		return true
	}

	if c.memSem != nil {
		if !c.memSem.TryAcquire(bytes) {
			return false
		}
	}

	c.memUsed.Add(bytes)
	return true
}

// ReleaseMemory returns bytes to the budget.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil {
		return
	}
	if bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the number of bytes currently acquired.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// MemoryLimit returns the configured memory limit in bytes (0 if unlimited).
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MemoryLimitBytes
}

// AllowPrefetch reports whether a hint covering bytes may be issued now.
// It never blocks. Requests larger than one second's budget are charged
// the full burst rather than being refused forever.
func (c *Controller) AllowPrefetch(bytes int) bool {
	if c == nil || c.prefetchLimiter == nil {
		return true
	}
	if bytes <= 0 {
		return true
	}
	if bytes > c.prefetchBurst {
		bytes = c.prefetchBurst
	}
	return c.prefetchLimiter.AllowN(time.Now(), bytes)
}
