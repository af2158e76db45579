// Package conv provides checked integer conversions.
//
// The arena sizes its reservation from a bit count and hands byte counts to
// APIs that use int, int64 and uint64. These helpers reject values that would
// wrap instead of silently truncating them.
//
// Conversions that are provably safe by construction (offsets bounded by the
// mapping length, loop indices) use plain casts instead.
package conv
