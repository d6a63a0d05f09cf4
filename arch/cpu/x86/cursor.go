package x86

// Cursor is a forward-only reader over a byte stream. It is the only
// mutable state a decode operation touches: no registers, no memory image,
// just a position into the input.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor wraps a byte slice for decoding. The slice is not copied; the
// caller must not mutate it while decoding is in progress.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Pos returns the cursor's current byte offset into the original slice.
func (c *Cursor) Pos() int {
	return c.pos
}

// Done reports whether the cursor has consumed the entire input.
func (c *Cursor) Done() bool {
	return c.pos >= len(c.data)
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// Peek returns the next unread byte without advancing the cursor. ok is
// false if the cursor is exhausted.
func (c *Cursor) Peek() (b byte, ok bool) {
	if c.Done() {
		return 0, false
	}
	return c.data[c.pos], true
}

// Take returns the next byte and advances the cursor. ok is false if the
// cursor is exhausted, in which case the cursor is not advanced.
func (c *Cursor) Take() (b byte, ok bool) {
	if c.Done() {
		return 0, false
	}
	b = c.data[c.pos]
	c.pos++
	return b, true
}

// TakeI8 reads one byte as a sign-extended 8-bit value, used for 8-bit
// displacements and immediates.
func (c *Cursor) TakeI8() (v int8, ok bool) {
	b, ok := c.Take()
	if !ok {
		return 0, false
	}
	return int8(b), true
}

// TakeU16LE reads two bytes as a little-endian unsigned 16-bit value.
func (c *Cursor) TakeU16LE() (v uint16, ok bool) {
	if c.Remaining() < 2 {
		return 0, false
	}
	v = uint16(c.data[c.pos]) | uint16(c.data[c.pos+1])<<8
	c.pos += 2
	return v, true
}

// TakeI16LE reads two bytes as a little-endian signed 16-bit value, used
// for 16-bit displacements and immediates.
func (c *Cursor) TakeI16LE() (v int16, ok bool) {
	u, ok := c.TakeU16LE()
	if !ok {
		return 0, false
	}
	return int16(u), true
}
