package message

import (
	"encoding/binary"

	"github.com/KAIYOHUGO/rodust/internal/buffer"
	"github.com/KAIYOHUGO/rodust/internal/protocol"
)

// IncompatibleProtocolVersion is sent by the server in response to the OpenConnectionRequest1 message
// if the protocol version sent by the client is outdated or incompatible
type IncompatibleProtocolVersion struct {
	ServerProtocol byte
	Magic          protocol.Magic
	ServerGUID     int64
}

func (pk *IncompatibleProtocolVersion) ID() ID {
	return IDIncompatibleProtocolVersion
}

// Reads an incompatible protocol version message from the buffer and returns an error if
// the operation has failed
func (pk *IncompatibleProtocolVersion) Read(buf *buffer.Buffer) (err error) {
	if pk.ServerProtocol, err = buf.ReadUint8(); err != nil {
		return
	}

	if pk.Magic, err = buf.ReadMagic(); err != nil {
		return
	}

	if pk.ServerGUID, err = buf.ReadInt64(binary.BigEndian); err != nil {
		return
	}

	return
}
