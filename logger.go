package bumpbuf

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Logger wraps slog.Logger with arena-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewConsoleLogger creates a Logger with colorized, compact output for
// interactive use. Output goes to w, or stderr if w is nil.
func NewConsoleLogger(w io.Writer, level slog.Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	handler := tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithArena tags the logger with the arena's reservation size.
func (l *Logger) WithArena(reserved int) *Logger {
	return &Logger{
		Logger: l.Logger.With("reserved", reserved),
	}
}

// LogReserve logs the outcome of reserving address space.
func (l *Logger) LogReserve(ctx context.Context, capacityBits uint8, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "reservation failed",
			"capacity_bits", capacityBits,
			"size", size,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "reservation created",
			"capacity_bits", capacityBits,
			"size", size,
		)
	}
}

// LogReclaim logs the outcome of releasing unused pages.
func (l *Logger) LogReclaim(ctx context.Context, used, released int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "reclaim failed",
			"used", used,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "reclaimed unused pages",
			"used", used,
			"released", released,
		)
	}
}

// LogRelease logs the outcome of releasing the whole reservation.
func (l *Logger) LogRelease(ctx context.Context, used int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "release failed",
			"used", used,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "reservation released",
			"used", used,
		)
	}
}

// LogNearCapacity logs that an arena has used more than half of its reservation.
func (l *Logger) LogNearCapacity(ctx context.Context, used, reserved int) {
	l.WarnContext(ctx, "arena near capacity",
		"used", used,
		"reserved", reserved,
	)
}
