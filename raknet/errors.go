package raknet

import (
	"github.com/KAIYOHUGO/rodust/internal/buffer"
	"github.com/KAIYOHUGO/rodust/internal/message"
)

// This error is returned when a read needs more bytes than the datagram has left.
var ErrInsufficientByte = buffer.ErrInsufficientByte

// This error is returned when a read would leave the capacity of the buffer.
var ErrOutOfBound = buffer.ErrOutOfBound

// This error is returned when a string is not valid UTF-8.
var ErrUtf8 = buffer.ErrUtf8

// This error is returned when a timestamp does not form a valid instant.
var ErrInvalidTime = buffer.ErrInvalidTime

// This error is returned when a socket address has an IP version other than 4 or 6.
var ErrUnsupportedIPVersion = buffer.ErrUnsupportedIPVersion

// This error is returned when the leading ID of a datagram or a frame body is not known.
var ErrUnknownPacket = message.ErrUnknownPacket

// This error is returned when the padding of an open connection request 1 does not fit in 16 bits.
var ErrInvalidMTUSize = message.ErrInvalidMTUSize
