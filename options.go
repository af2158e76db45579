package bumpbuf

import (
	"log/slog"

	"github.com/hupe1980/bumpbuf/resource"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	controller       *resource.Controller
}

// Option configures Arena construction.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for arena operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &bumpbuf.BasicMetricsCollector{}
//	a, _ := bumpbuf.New(32, bumpbuf.WithMetricsCollector(metrics))
//	// ... use a ...
//	stats := metrics.GetStats()
//	fmt.Printf("Frozen: %d buffers, %d bytes\n", stats.FreezeCount, stats.FrozenBytes)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for reservation lifecycle events.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := bumpbuf.NewJSONLogger(slog.LevelInfo)
//	a, _ := bumpbuf.New(32, bumpbuf.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithResourceController charges the reservation against a shared budget and
// throttles prefetch hints through it.
//
// The reservation size is acquired in New and returned by ReclaimUnused and
// Release, so one controller can cap the address space of many arenas.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
