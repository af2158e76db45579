package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Byte returns a pseudo-random byte.
func (r *RNG) Byte() byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return byte(r.rand.Intn(256))
}

// Bytes returns n pseudo-random bytes.
func (r *RNG) Bytes(n int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := make([]byte, n)
	_, _ = r.rand.Read(p)
	return p
}

// Range returns a pseudo-random half-open range [from, to) within [0, n).
// It returns (0, 0) when n is zero.
func (r *RNG) Range(n int) (int, int) {
	if n == 0 {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	from := r.rand.Intn(n)
	to := from + r.rand.Intn(n-from+1)
	return from, to
}
