package mmap

import "errors"

// AccessPattern provides hints to the kernel about how memory will be accessed.
type AccessPattern int

const (
	// AccessDefault is the default access pattern (no specific advice).
	AccessDefault AccessPattern = iota
	// AccessWillNeed expects memory to be accessed in the near future.
	AccessWillNeed
)

var (
	// ErrClosed is returned when attempting to use a closed mapping.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidSize is returned when a reservation or shrink size is invalid.
	ErrInvalidSize = errors.New("mmap: invalid size")
	// ErrOutOfBounds is returned when a range lies outside the mapping.
	ErrOutOfBounds = errors.New("mmap: out of bounds")
)
