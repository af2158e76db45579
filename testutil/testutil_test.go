package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRNG_Deterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)

	assert.Equal(t, a.Bytes(32), b.Bytes(32))
	assert.Equal(t, a.Uint64(), b.Uint64())
	assert.Equal(t, int64(42), a.Seed())

	first := a.Intn(1000)
	a.Reset()
	_ = a.Bytes(32)
	_ = a.Uint64()
	assert.Equal(t, first, a.Intn(1000))
}

func TestRNG_Range(t *testing.T) {
	rng := NewRNG(1)

	from, to := rng.Range(0)
	assert.Equal(t, 0, from)
	assert.Equal(t, 0, to)

	for i := 0; i < 1000; i++ {
		from, to := rng.Range(7)
		assert.GreaterOrEqual(t, from, 0)
		assert.LessOrEqual(t, from, to)
		assert.LessOrEqual(t, to, 7)
	}
}

func TestModel(t *testing.T) {
	var m Model

	_, ok := m.Pop()
	assert.False(t, ok)

	m.Append([]byte{1, 2, 3})
	m.AppendByte(4)
	m.AppendWithin(0, 3)
	assert.Equal(t, []byte{1, 2, 3, 4, 1, 2, 3}, m.Bytes())

	c, ok := m.Pop()
	assert.True(t, ok)
	assert.Equal(t, byte(3), c)

	m.Truncate(100)
	assert.Equal(t, 6, m.Len())

	m.Truncate(2)
	assert.Equal(t, []byte{1, 2}, m.Bytes())

	m.Reset()
	assert.Equal(t, 0, m.Len())
}
