package vm

import "math"

// ---------------------------------------------------------------------------
// Buffered input
// ---------------------------------------------------------------------------

// IOBuffer queues pending input bytes for the & and ~ instructions. The
// debugger's input command appends; the interpreter consumes front-to-back.
// Reads never block: an empty buffer reports false and the interpreter
// surfaces that as an input-exhausted error.
type IOBuffer struct {
	buf []byte
}

// Feed appends raw bytes to the back of the buffer.
func (b *IOBuffer) Feed(data []byte) {
	b.buf = append(b.buf, data...)
}

// Len returns the number of buffered bytes.
func (b *IOBuffer) Len() int {
	return len(b.buf)
}

// ReadByte consumes and returns the front byte. Reports false when the
// buffer is empty.
func (b *IOBuffer) ReadByte() (byte, bool) {
	if len(b.buf) == 0 {
		return 0, false
	}
	v := b.buf[0]
	b.buf = b.buf[1:]
	return v, true
}

// ReadDecimal scans the buffered bytes for an ASCII decimal integer with an
// optional leading minus sign, skipping any leading bytes that cannot start
// a number, and consumes the matched prefix (skipped garbage included).
// The end of the buffer terminates a digit run. Digits that would push the
// value past the int32 range stay buffered for the next read. Reports false,
// consuming nothing, when no number can be formed.
func (b *IOBuffer) ReadDecimal() (int32, bool) {
	start := -1
	neg := false
	for i, c := range b.buf {
		if isDigit(c) {
			start = i
			break
		}
		if c == '-' && i+1 < len(b.buf) && isDigit(b.buf[i+1]) {
			start = i
			neg = true
			break
		}
	}
	if start < 0 {
		return 0, false
	}

	i := start
	limit := int64(math.MaxInt32)
	if neg {
		i++
		limit++
	}
	var m int64
	for ; i < len(b.buf); i++ {
		c := b.buf[i]
		if !isDigit(c) {
			break
		}
		d := int64(c - '0')
		if m*10+d > limit {
			break
		}
		m = m*10 + d
	}
	b.buf = b.buf[i:]

	if neg {
		return int32(-m), true
	}
	return int32(m), true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
