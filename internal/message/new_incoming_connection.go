package message

import (
	"encoding/binary"
	"net"

	"github.com/KAIYOHUGO/rodust/internal/buffer"
)

// NewIncomingConnection is sent by the client to the server in response to the ConnectionRequestAccepted
// message. The next messages are the Game messages.
type NewIncomingConnection struct {
	ServerAddress     net.UDPAddr
	SystemAddresses   []net.UDPAddr
	RequestTimestamp  int64
	AcceptedTimestamp int64
}

func (pk *NewIncomingConnection) ID() ID {
	return IDNewIncomingConnection
}

// Reads a new incoming connection message from the buffer and returns an error if the operation
// has failed
func (pk *NewIncomingConnection) Read(buf *buffer.Buffer) (err error) {
	if err = buf.ReadAddr(&pk.ServerAddress); err != nil {
		return
	}

	if pk.SystemAddresses, err = readSystemAddresses(buf); err != nil {
		return
	}

	if pk.RequestTimestamp, err = buf.ReadInt64(binary.BigEndian); err != nil {
		return
	}

	if pk.AcceptedTimestamp, err = buf.ReadInt64(binary.BigEndian); err != nil {
		return
	}

	return
}
