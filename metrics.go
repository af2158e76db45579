package bumpbuf

import (
	"sync/atomic"
)

// MetricsCollector defines an interface for collecting arena metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Collectors are called synchronously on the allocation path, so
// implementations should be cheap (atomic adds, not locks or I/O).
type MetricsCollector interface {
	// RecordFreeze is called after each buffer is frozen with its final length.
	RecordFreeze(n int)

	// RecordDiscard is called after each buffer is discarded with the length it had.
	RecordDiscard(n int)

	// RecordReclaim is called after each ReclaimUnused.
	// released is the number of bytes returned to the OS, err is nil if successful.
	RecordReclaim(released int, err error)

	// RecordPrefetch is called after each prefetch hint.
	// throttled is true when the hint was skipped by the resource controller.
	RecordPrefetch(n int, throttled bool)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordFreeze(int)         {}
func (NoopMetricsCollector) RecordDiscard(int)        {}
func (NoopMetricsCollector) RecordReclaim(int, error) {}
func (NoopMetricsCollector) RecordPrefetch(int, bool) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
// One collector may be shared by several arenas.
type BasicMetricsCollector struct {
	FreezeCount       atomic.Int64
	FrozenBytes       atomic.Int64
	DiscardCount      atomic.Int64
	DiscardedBytes    atomic.Int64
	ReclaimCount      atomic.Int64
	ReclaimErrors     atomic.Int64
	ReclaimedBytes    atomic.Int64
	PrefetchCount     atomic.Int64
	PrefetchBytes     atomic.Int64
	PrefetchThrottled atomic.Int64
}

// RecordFreeze implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFreeze(n int) {
	b.FreezeCount.Add(1)
	b.FrozenBytes.Add(int64(n))
}

// RecordDiscard implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDiscard(n int) {
	b.DiscardCount.Add(1)
	b.DiscardedBytes.Add(int64(n))
}

// RecordReclaim implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReclaim(released int, err error) {
	b.ReclaimCount.Add(1)
	if err != nil {
		b.ReclaimErrors.Add(1)
		return
	}
	b.ReclaimedBytes.Add(int64(released))
}

// RecordPrefetch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPrefetch(n int, throttled bool) {
	if throttled {
		b.PrefetchThrottled.Add(1)
		return
	}
	b.PrefetchCount.Add(1)
	b.PrefetchBytes.Add(int64(n))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		FreezeCount:       b.FreezeCount.Load(),
		FrozenBytes:       b.FrozenBytes.Load(),
		AvgFrozenBytes:    b.getAvgFrozenBytes(),
		DiscardCount:      b.DiscardCount.Load(),
		DiscardedBytes:    b.DiscardedBytes.Load(),
		ReclaimCount:      b.ReclaimCount.Load(),
		ReclaimErrors:     b.ReclaimErrors.Load(),
		ReclaimedBytes:    b.ReclaimedBytes.Load(),
		PrefetchCount:     b.PrefetchCount.Load(),
		PrefetchBytes:     b.PrefetchBytes.Load(),
		PrefetchThrottled: b.PrefetchThrottled.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgFrozenBytes() int64 {
	count := b.FreezeCount.Load()
	if count == 0 {
		return 0
	}
	return b.FrozenBytes.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	FreezeCount       int64
	FrozenBytes       int64
	AvgFrozenBytes    int64
	DiscardCount      int64
	DiscardedBytes    int64
	ReclaimCount      int64
	ReclaimErrors     int64
	ReclaimedBytes    int64
	PrefetchCount     int64
	PrefetchBytes     int64
	PrefetchThrottled int64
}
