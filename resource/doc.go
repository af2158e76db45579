// Package resource governs the resources that arenas draw from a shared pool.
//
// A Controller covers two resource types:
//
//   - Address space: a budget for reservations (blocking with context, or fail-fast)
//   - Prefetch hints: a token bucket that caps how many bytes per second may be
//     advised to the kernel, since every hint is a syscall
//
// # Reservation Budget
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 8 << 30, // at most 8 GiB reserved across all arenas
//	})
//
//	a, err := bumpbuf.New(32, bumpbuf.WithResourceController(rc))
//	if errors.Is(err, resource.ErrMemoryLimitExceeded) {
//	    // budget exhausted; release another arena first
//	}
//
// # Prefetch Throttling
//
//	rc := resource.NewController(resource.Config{
//	    PrefetchLimitBytesPerSec: 256 << 20,
//	})
//
//	if rc.AllowPrefetch(n) {
//	    // issue the hint
//	}
//
// # Thread Safety
//
// All Controller methods are safe for concurrent use, so a single Controller
// can be shared by arenas owned by different goroutines.
//
// # Nil Safety
//
// All methods accept a nil receiver and then behave as unlimited.
package resource
