package message

import (
	"encoding/binary"
	"net"

	"github.com/KAIYOHUGO/rodust/internal/buffer"
	"github.com/KAIYOHUGO/rodust/internal/protocol"
)

// OpenConnectionRequest2 is the next message in the login sequence sent by the client to the server.
// It sends a formulated MTU size from the server preferred MTU size sent by the server in the OpenConnectionReply1 message.
type OpenConnectionRequest2 struct {
	Magic protocol.Magic

	// The address used by the client to connect to the server
	ServerAddress net.UDPAddr

	// Client preferred MTU size formulated from server preferred MTU size
	ClientPreferredMTUSize uint16
	ClientGUID             int64
}

func (pk *OpenConnectionRequest2) ID() ID {
	return IDOpenConnectionRequest2
}

// Reads an open connection request 2 message from the buffer and returns an error if operation
// has failed
func (pk *OpenConnectionRequest2) Read(buf *buffer.Buffer) (err error) {
	if pk.Magic, err = buf.ReadMagic(); err != nil {
		return
	}

	if err = buf.ReadAddr(&pk.ServerAddress); err != nil {
		return
	}

	if pk.ClientPreferredMTUSize, err = buf.ReadUint16(binary.BigEndian); err != nil {
		return
	}

	if pk.ClientGUID, err = buf.ReadInt64(binary.BigEndian); err != nil {
		return
	}

	return
}
