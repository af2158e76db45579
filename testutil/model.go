package testutil

// Model is a reference growable byte array.
// Its zero value is an empty model ready to use.
type Model struct {
	buf []byte
}

// AppendByte appends c.
func (m *Model) AppendByte(c byte) {
	m.buf = append(m.buf, c)
}

// Append appends p.
func (m *Model) Append(p []byte) {
	m.buf = append(m.buf, p...)
}

// AppendWithin appends a copy of m[from:to].
func (m *Model) AppendWithin(from, to int) {
	m.buf = append(m.buf, m.buf[from:to]...)
}

// Pop removes and returns the last byte.
func (m *Model) Pop() (byte, bool) {
	if len(m.buf) == 0 {
		return 0, false
	}
	c := m.buf[len(m.buf)-1]
	m.buf = m.buf[:len(m.buf)-1]
	return c, true
}

// Truncate shortens the model to n bytes; out-of-range n is ignored.
func (m *Model) Truncate(n int) {
	if n < 0 || n > len(m.buf) {
		return
	}
	m.buf = m.buf[:n]
}

// Len returns the model's length.
func (m *Model) Len() int {
	return len(m.buf)
}

// Bytes returns a copy of the model's contents.
func (m *Model) Bytes() []byte {
	out := make([]byte, len(m.buf))
	copy(out, m.buf)
	return out
}

// Reset empties the model.
func (m *Model) Reset() {
	m.buf = m.buf[:0]
}
