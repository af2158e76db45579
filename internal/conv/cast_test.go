//go:build amd64 || arm64

package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShiftToInt(t *testing.T) {
	t.Run("valid small", func(t *testing.T) {
		got, err := ShiftToInt(12)
		assert.NoError(t, err)
		assert.Equal(t, 4096, got)
	})

	t.Run("valid max", func(t *testing.T) {
		got, err := ShiftToInt(MaxShift)
		assert.NoError(t, err)
		assert.Equal(t, 1<<62, got)
	})

	t.Run("invalid overflow", func(t *testing.T) {
		_, err := ShiftToInt(MaxShift + 1)
		assert.Error(t, err)
	})
}

func TestInt64ToInt(t *testing.T) {
	got, err := Int64ToInt(math.MaxInt64)
	assert.NoError(t, err)
	assert.Equal(t, math.MaxInt, got)

	got, err = Int64ToInt(-7)
	assert.NoError(t, err)
	assert.Equal(t, -7, got)
}

func TestIntToUint64(t *testing.T) {
	t.Run("valid zero", func(t *testing.T) {
		got, err := IntToUint64(0)
		assert.NoError(t, err)
		assert.Equal(t, uint64(0), got)
	})

	t.Run("valid max int", func(t *testing.T) {
		got, err := IntToUint64(math.MaxInt)
		assert.NoError(t, err)
		assert.Equal(t, uint64(math.MaxInt), got)
	})

	t.Run("invalid negative", func(t *testing.T) {
		_, err := IntToUint64(-1)
		assert.Error(t, err)
	})
}

func TestAlign(t *testing.T) {
	tests := []struct {
		v, align, up, down int
	}{
		{0, 4096, 0, 0},
		{1, 4096, 4096, 0},
		{4095, 4096, 4096, 0},
		{4096, 4096, 4096, 4096},
		{4097, 4096, 8192, 4096},
		{13, 8, 16, 8},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.up, AlignUp(tt.v, tt.align), "AlignUp(%d, %d)", tt.v, tt.align)
		assert.Equal(t, tt.down, AlignDown(tt.v, tt.align), "AlignDown(%d, %d)", tt.v, tt.align)
	}
}
