// Package linebuf implements the fixed-capacity edit buffer behind the shell prompt.
//
// The backing array is allocated once by New; edit operations shift bytes in place
// and never grow it.
package linebuf

import "errors"

// ErrOverflow is returned by Insert when the buffer is full.
var ErrOverflow = errors.New("linebuf: buffer full")

// Buffer holds one line being edited.
//
// Invariant: 0 <= cursor <= n <= len(buf).
type Buffer struct {
	buf    []byte
	n      int
	cursor int
}

// New returns an empty buffer holding at most capacity bytes.
func New(capacity int) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{buf: make([]byte, capacity)}
}

func (b *Buffer) Cap() int    { return len(b.buf) }
func (b *Buffer) Len() int    { return b.n }
func (b *Buffer) Cursor() int { return b.cursor }

// Bytes returns the current contents. The slice aliases the buffer and is only
// valid until the next mutation.
func (b *Buffer) Bytes() []byte { return b.buf[:b.n] }

// Tail returns the bytes from the cursor to the end of the line.
func (b *Buffer) Tail() []byte { return b.buf[b.cursor:b.n] }

// String returns a copy of the current contents.
func (b *Buffer) String() string { return string(b.buf[:b.n]) }

// Insert places c at the cursor and advances the cursor.
func (b *Buffer) Insert(c byte) error {
	if b.n == len(b.buf) {
		return ErrOverflow
	}
	copy(b.buf[b.cursor+1:b.n+1], b.buf[b.cursor:b.n])
	b.buf[b.cursor] = c
	b.n++
	b.cursor++
	return nil
}

// Backspace removes the byte before the cursor. It reports whether anything changed.
func (b *Buffer) Backspace() bool {
	if b.cursor == 0 {
		return false
	}
	copy(b.buf[b.cursor-1:], b.buf[b.cursor:b.n])
	b.n--
	b.cursor--
	return true
}

// Delete removes the byte under the cursor. It reports whether anything changed.
func (b *Buffer) Delete() bool {
	if b.cursor == b.n {
		return false
	}
	copy(b.buf[b.cursor:], b.buf[b.cursor+1:b.n])
	b.n--
	return true
}

// Move shifts the cursor by delta, clamped to [0, Len()], and returns the
// distance actually moved.
func (b *Buffer) Move(delta int) int {
	next := b.cursor + delta
	if next < 0 {
		next = 0
	}
	if next > b.n {
		next = b.n
	}
	moved := next - b.cursor
	b.cursor = next
	return moved
}

// Home moves the cursor to the start of the line and returns how far it moved.
func (b *Buffer) Home() int { return -b.Move(-b.cursor) }

// End moves the cursor to the end of the line and returns how far it moved.
func (b *Buffer) End() int { return b.Move(b.n - b.cursor) }

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.n = 0
	b.cursor = 0
}

// Set replaces the contents with s, truncated to capacity, and puts the cursor at
// the end.
func (b *Buffer) Set(s string) {
	b.n = copy(b.buf, s)
	b.cursor = b.n
}

// KillLeft removes everything before the cursor.
func (b *Buffer) KillLeft() bool {
	if b.cursor == 0 {
		return false
	}
	copy(b.buf, b.buf[b.cursor:b.n])
	b.n -= b.cursor
	b.cursor = 0
	return true
}

// DeleteWordBack removes the word before the cursor, along with any spaces
// between it and the cursor.
func (b *Buffer) DeleteWordBack() bool {
	i := b.cursor
	for i > 0 && b.buf[i-1] == ' ' {
		i--
	}
	for i > 0 && b.buf[i-1] != ' ' {
		i--
	}
	if i == b.cursor {
		return false
	}
	copy(b.buf[i:], b.buf[b.cursor:b.n])
	b.n -= b.cursor - i
	b.cursor = i
	return true
}
