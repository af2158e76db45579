package bumpbuf

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCapacity is returned when capacityBits is outside [MinCapacityBits, MaxCapacityBits].
	ErrInvalidCapacity = errors.New("bumpbuf: invalid capacity")
	// ErrBufferOpen is returned by BeginAllocation while another buffer is still open.
	ErrBufferOpen = errors.New("bumpbuf: buffer already open")
	// ErrStaleBuffer is returned (or panicked with) when a frozen or discarded buffer is used.
	ErrStaleBuffer = errors.New("bumpbuf: stale buffer")
	// ErrReleased is returned when the arena has already been released.
	ErrReleased = errors.New("bumpbuf: arena released")
	// ErrOutOfRange is returned by View for ranges outside the frozen bytes.
	ErrOutOfRange = errors.New("bumpbuf: out of range")
	// ErrCapacityExceeded is returned by the checked append path when a write would not fit.
	ErrCapacityExceeded = errors.New("bumpbuf: capacity exceeded")
	// ErrFatal marks failures of the operating system memory calls.
	// The arena cannot continue after one; match with errors.Is.
	ErrFatal = errors.New("bumpbuf: fatal memory error")
)

// FatalError reports a failed reservation or release syscall.
//
// The underlying OS error can be accessed via errors.Unwrap, and
// errors.Is(err, ErrFatal) is true for every FatalError.
type FatalError struct {
	Op   string
	Size int
	Err  error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("bumpbuf: %s %d bytes: %v", e.Op, e.Size, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

// Is reports whether target is ErrFatal.
func (e *FatalError) Is(target error) bool { return target == ErrFatal }

// IsFatal reports whether err belongs to the fatal category.
func IsFatal(err error) bool {
	return errors.Is(err, ErrFatal)
}
