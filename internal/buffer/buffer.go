// Package buffer implements the bounded byte cursor every RakNet decoder reads through.
package buffer

// Buffer is a fixed capacity byte buffer with a read offset and a count of the bytes that
// are left to read. Every read either consumes exactly the bytes it returns or fails without
// moving the cursor, and no read panics on truncated input.
//
// Slices returned by a Buffer borrow its backing array. They are only valid until the buffer
// is reset and filled with the next datagram.
type Buffer struct {
	buf    []byte
	offset int
	length int
}

// Creates an empty buffer that can hold capacity bytes.
func New(capacity int) *Buffer {
	return &Buffer{
		buf: make([]byte, capacity),
	}
}

// Creates a buffer that reads the provided bytes. The bytes are not copied.
func From(b []byte) *Buffer {
	return &Buffer{
		buf:    b,
		length: len(b),
	}
}

// Returns the capacity of the buffer.
func (b *Buffer) Cap() int {
	return len(b.buf)
}

// Returns the current read offset.
func (b *Buffer) Offset() int {
	return b.offset
}

// Returns the number of bytes that are left to read.
func (b *Buffer) Remaining() int {
	return b.length
}

// Slice returns the whole backing array so that a network read can fill it. Resize must be
// called afterwards with the number of bytes read.
func (b *Buffer) Slice() []byte {
	return b.buf
}

// Resize marks the first n bytes of the backing array as the content to read and rewinds
// the offset to the start.
func (b *Buffer) Resize(n int) error {
	if n < 0 || n > len(b.buf) {
		return ErrOutOfBound
	}

	b.offset = 0
	b.length = n
	return nil
}

// Reset clears the buffer so it can be reused for the next datagram.
func (b *Buffer) Reset() {
	b.offset = 0
	b.length = 0
}

// Bytes returns every initialised byte of the buffer, read or not.
func (b *Buffer) Bytes() []byte {
	s, err := b.Window(0, b.offset+b.length)
	if err != nil {
		return nil
	}
	return s
}

// Rest returns the bytes that are left to read without consuming them.
func (b *Buffer) Rest() []byte {
	s, err := b.Window(b.offset, b.offset+b.length)
	if err != nil {
		return nil
	}
	return s
}

// Window returns the bytes in [start, end) without moving the cursor.
func (b *Buffer) Window(start, end int) ([]byte, error) {
	if start < 0 || end < start || end > len(b.buf) {
		return nil, ErrOutOfBound
	}
	return b.buf[start:end:end], nil
}

// Shift skips n bytes.
func (b *Buffer) Shift(n int) error {
	if n < 0 || n > b.length {
		return ErrInsufficientByte
	}
	if b.offset+n > len(b.buf) {
		return ErrOutOfBound
	}

	b.length -= n
	b.offset += n
	return nil
}

// Read returns the next n bytes and moves the cursor past them.
func (b *Buffer) Read(n int) ([]byte, error) {
	if n < 0 || n > b.length {
		return nil, ErrInsufficientByte
	}

	s, err := b.Window(b.offset, b.offset+n)
	if err != nil {
		return nil, err
	}

	if err := b.Shift(n); err != nil {
		return nil, err
	}

	return s, nil
}

// mark is a saved cursor position.
type mark struct {
	offset int
	length int
}

func (b *Buffer) mark() mark {
	return mark{offset: b.offset, length: b.length}
}

func (b *Buffer) rewind(m mark) {
	b.offset = m.offset
	b.length = m.length
}
