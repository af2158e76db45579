//go:build !linux && !darwin && !windows

package mmap

// Platforms without a supported reservation primitive get a pre-sized heap
// buffer. It is committed up front, so keep capacities modest there.
func osReserve(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func osReleaseTail(data []byte, keep int) error {
	clear(data[keep:])
	return nil
}

func osRelease(_ []byte, _ int) error {
	return nil
}

func osAdvise(_ []byte, _ AccessPattern) error {
	return nil
}
