package mmap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserve_WriteRead(t *testing.T) {
	size := 16 * PageSize()
	m, err := Reserve(size)
	require.NoError(t, err)
	defer m.Close()

	data := m.Bytes()
	require.Len(t, data, size)
	assert.Equal(t, size, cap(data))

	// Anonymous memory starts zeroed
	assert.Equal(t, byte(0), data[0])
	assert.Equal(t, byte(0), data[size-1])

	data[0] = 0xAA
	data[size-1] = 0xBB
	assert.Equal(t, byte(0xAA), m.Bytes()[0])
	assert.Equal(t, byte(0xBB), m.Bytes()[size-1])
}

func TestReserve_InvalidSize(t *testing.T) {
	_, err := Reserve(0)
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = Reserve(-1)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestMapping_Shrink(t *testing.T) {
	page := PageSize()
	m, err := Reserve(8 * page)
	require.NoError(t, err)
	defer m.Close()

	m.Bytes()[10] = 42

	t.Run("rounds up to page", func(t *testing.T) {
		released, err := m.Shrink(page + 1)
		require.NoError(t, err)
		assert.Equal(t, 6*page, released)
		assert.Len(t, m.Bytes(), 2*page)
		assert.Equal(t, byte(42), m.Bytes()[10])
	})

	t.Run("no growth", func(t *testing.T) {
		released, err := m.Shrink(4 * page)
		require.NoError(t, err)
		assert.Equal(t, 0, released)
		assert.Len(t, m.Bytes(), 2*page)
	})

	t.Run("negative", func(t *testing.T) {
		_, err := m.Shrink(-1)
		assert.ErrorIs(t, err, ErrInvalidSize)
	})
}

func TestMapping_ShrinkToZero(t *testing.T) {
	page := PageSize()
	m, err := Reserve(4 * page)
	require.NoError(t, err)

	released, err := m.Shrink(0)
	require.NoError(t, err)
	assert.Equal(t, 4*page, released)
	assert.Empty(t, m.Bytes())

	assert.NoError(t, m.Close())
}

func TestMapping_AdviseRange(t *testing.T) {
	page := PageSize()
	m, err := Reserve(4 * page)
	require.NoError(t, err)

	// Unaligned start is widened to the page boundary
	require.NoError(t, m.AdviseRange(100, 200, AccessWillNeed))
	require.NoError(t, m.AdviseRange(0, 4*page, AccessDefault))
	assert.NoError(t, m.AdviseRange(4*page, 0, AccessWillNeed))

	tests := []struct {
		name   string
		off, n int
	}{
		{"negative offset", -1, 0},
		{"negative length", 0, -1},
		{"offset past end", 4*page + 1, 0},
		{"past end", 3 * page, 2 * page},
		{"length overflows", 1, math.MaxInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, m.AdviseRange(tt.off, tt.n, AccessWillNeed), ErrOutOfBounds)
		})
	}

	require.NoError(t, m.Close())
	assert.ErrorIs(t, m.AdviseRange(0, 1, AccessWillNeed), ErrClosed)
}

func TestMapping_AdviseRangeDoesNotAllocate(t *testing.T) {
	page := PageSize()
	m, err := Reserve(4 * page)
	require.NoError(t, err)
	defer m.Close()

	allocs := testing.AllocsPerRun(100, func() {
		_ = m.AdviseRange(page+10, page, AccessWillNeed)
	})
	assert.Zero(t, allocs)
}

func TestMapping_AdviseRangeAfterShrink(t *testing.T) {
	page := PageSize()
	m, err := Reserve(4 * page)
	require.NoError(t, err)
	defer m.Close()

	_, err = m.Shrink(page)
	require.NoError(t, err)

	assert.NoError(t, m.AdviseRange(0, page, AccessWillNeed))
	assert.ErrorIs(t, m.AdviseRange(3*page, 10, AccessWillNeed), ErrOutOfBounds)
}

func TestMapping_AfterClose(t *testing.T) {
	m, err := Reserve(PageSize())
	require.NoError(t, err)

	require.NoError(t, m.Close())
	// Idempotent
	require.NoError(t, m.Close())

	assert.Nil(t, m.Bytes())
	assert.ErrorIs(t, m.AdviseRange(0, 1, AccessWillNeed), ErrClosed)

	_, err = m.Shrink(0)
	assert.ErrorIs(t, err, ErrClosed)
}
