package message

import (
	"encoding/binary"
	"net"

	"github.com/KAIYOHUGO/rodust/internal/buffer"
	"github.com/KAIYOHUGO/rodust/internal/protocol"
)

// OpenConnectionReply2 is sent by the server in response to the OpenConnectionRequest2
// thus finalizing the commonly accepted MTU size for the connection.
type OpenConnectionReply2 struct {
	Magic         protocol.Magic
	ServerGUID    int64
	ClientAddress net.UDPAddr
	MTUSize       uint16
	Security      SecurityState
}

func (pk *OpenConnectionReply2) ID() ID {
	return IDOpenConnectionReply2
}

// Reads an open connection reply 2 message from the buffer and returns an error if the operation
// has failed
func (pk *OpenConnectionReply2) Read(buf *buffer.Buffer) (err error) {
	if pk.Magic, err = buf.ReadMagic(); err != nil {
		return
	}

	if pk.ServerGUID, err = buf.ReadInt64(binary.BigEndian); err != nil {
		return
	}

	if err = buf.ReadAddr(&pk.ClientAddress); err != nil {
		return
	}

	if pk.MTUSize, err = buf.ReadUint16(binary.BigEndian); err != nil {
		return
	}

	if pk.Security, err = readSecurity(buf); err != nil {
		return
	}

	return
}
