package buffer

import "errors"

// This error is returned when the buffer has run out of bytes before a field could be read.
var ErrInsufficientByte = errors.New("buffer: run out of bytes")

// This error is returned when a range requested from the buffer exceeds its capacity. It
// indicates broken offset bookkeeping rather than a short datagram.
var ErrOutOfBound = errors.New("buffer: slice out of bound")

// This error is returned when a string field is not valid UTF-8.
var ErrUtf8 = errors.New("buffer: invalid utf-8 in string")

// This error is returned when a timestamp cannot be represented as an instant.
var ErrInvalidTime = errors.New("buffer: invalid timestamp")

// This error is returned when an address has an IP version other than 4 or 6.
var ErrUnsupportedIPVersion = errors.New("buffer: unsupported ip version")
