package conv

import (
	"fmt"
	"math"
	"math/bits"
)

// MaxShift is the largest bit count whose power of two fits in an int.
const MaxShift = bits.UintSize - 2

// ShiftToInt returns 1<<shift as an int.
func ShiftToInt(shift uint8) (int, error) {
	if int(shift) > MaxShift {
		return 0, fmt.Errorf("integer overflow: 1<<%d cannot be represented as int", shift)
	}
	return 1 << shift, nil
}

// Int64ToInt converts int64 to int safely.
func Int64ToInt(v int64) (int, error) {
	if v > math.MaxInt || v < math.MinInt {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int", v)
	}
	return int(v), nil
}

// IntToUint64 converts int to uint64 safely.
func IntToUint64(v int) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint64 (negative)", v)
	}
	return uint64(v), nil
}

// AlignUp rounds v up to the next multiple of align, which must be a power of two.
func AlignUp(v, align int) int {
	return (v + align - 1) &^ (align - 1)
}

// AlignDown rounds v down to a multiple of align, which must be a power of two.
func AlignDown(v, align int) int {
	return v &^ (align - 1)
}
