package message

import (
	"encoding/binary"

	"github.com/KAIYOHUGO/rodust/internal/buffer"
)

// ConnectionRequest is the first raknet message sent in an encapsulated frame. It is sent by the
// client to send a request for establishing a connection.
type ConnectionRequest struct {
	ClientGUID       int64
	RequestTimestamp int64

	// For MCPE this field is always sent as false.
	Security SecurityState
}

func (pk *ConnectionRequest) ID() ID {
	return IDConnectionRequest
}

// Reads a connection request message from the buffer and returns an error if the operation
// has failed
func (pk *ConnectionRequest) Read(buf *buffer.Buffer) (err error) {
	if pk.ClientGUID, err = buf.ReadInt64(binary.BigEndian); err != nil {
		return
	}

	if pk.RequestTimestamp, err = buf.ReadInt64(binary.BigEndian); err != nil {
		return
	}

	if pk.Security, err = readSecurity(buf); err != nil {
		return
	}

	return
}
