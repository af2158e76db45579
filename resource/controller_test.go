package resource

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Memory(t *testing.T) {
	// Test with limit
	c := NewController(Config{MemoryLimitBytes: 100})

	// Acquire 50
	err := c.AcquireMemory(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, int64(50), c.MemoryUsage())

	// Acquire 40
	err = c.AcquireMemory(context.Background(), 40)
	require.NoError(t, err)
	assert.Equal(t, int64(90), c.MemoryUsage())

	// TryAcquire 20 (should fail)
	ok := c.TryAcquireMemory(20)
	assert.False(t, ok)
	assert.Equal(t, int64(90), c.MemoryUsage())

	// Acquire 20 (should block/timeout)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err = c.AcquireMemory(ctx, 20)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// Release 50
	c.ReleaseMemory(50)
	assert.Equal(t, int64(40), c.MemoryUsage())

	// Now Acquire 20 should succeed
	err = c.AcquireMemory(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, int64(60), c.MemoryUsage())
	assert.Equal(t, int64(100), c.MemoryLimit())
}

func TestController_LargerThanLimit(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	err := c.AcquireMemory(context.Background(), 101)
	assert.ErrorIs(t, err, ErrMemoryLimitExceeded)
	assert.Equal(t, int64(0), c.MemoryUsage())
}

func TestController_UnlimitedMemory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 0})

	err := c.AcquireMemory(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), c.MemoryUsage())
	assert.True(t, c.TryAcquireMemory(1<<40))

	c.ReleaseMemory(500)
	assert.Equal(t, int64(500+1<<40), c.MemoryUsage())
}

func TestController_ReleaseUnblocksWaiter(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 64})
	require.NoError(t, c.AcquireMemory(context.Background(), 64))

	var wg sync.WaitGroup
	wg.Add(1)
	var err error
	go func() {
		defer wg.Done()
		err = c.AcquireMemory(context.Background(), 32)
	}()

	c.ReleaseMemory(64)
	wg.Wait()

	require.NoError(t, err)
	assert.Equal(t, int64(32), c.MemoryUsage())
}

func TestController_AllowPrefetch(t *testing.T) {
	t.Run("unlimited", func(t *testing.T) {
		c := NewController(Config{})
		for i := 0; i < 100; i++ {
			assert.True(t, c.AllowPrefetch(1<<30))
		}
	})

	t.Run("limited", func(t *testing.T) {
		c := NewController(Config{PrefetchLimitBytesPerSec: 4096})

		// Full burst is available up front
		assert.True(t, c.AllowPrefetch(4096))
		// Bucket is empty now
		assert.False(t, c.AllowPrefetch(4096))
		// Zero-byte hints are free
		assert.True(t, c.AllowPrefetch(0))
	})

	t.Run("limit beyond int", func(t *testing.T) {
		c := NewController(Config{PrefetchLimitBytesPerSec: math.MaxInt64})
		assert.True(t, c.AllowPrefetch(math.MaxInt))
		assert.True(t, c.AllowPrefetch(1<<30))
	})

	t.Run("oversized request is clamped", func(t *testing.T) {
		c := NewController(Config{PrefetchLimitBytesPerSec: 1024})
		assert.True(t, c.AllowPrefetch(1<<20))
		assert.False(t, c.AllowPrefetch(1))
	})
}

func TestController_NilSafe(t *testing.T) {
	var c *Controller

	assert.NoError(t, c.AcquireMemory(context.Background(), 10))
	assert.True(t, c.TryAcquireMemory(10))
	c.ReleaseMemory(10)
	assert.Equal(t, int64(0), c.MemoryUsage())
	assert.Equal(t, int64(0), c.MemoryLimit())
	assert.True(t, c.AllowPrefetch(10))
}
