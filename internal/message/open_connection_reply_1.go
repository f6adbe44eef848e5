package message

import (
	"encoding/binary"

	"github.com/KAIYOHUGO/rodust/internal/buffer"
	"github.com/KAIYOHUGO/rodust/internal/protocol"
)

// OpenConnectionReply1 is sent by the server in response to the OpenConnectionRequest1 message. It sends
// the server guid, and server preferred MTU size that it has formulated from the empty buffer sent by the client
// in OpenConnectionRequest1 packet to discover the MTU size of the connection.
type OpenConnectionReply1 struct {
	Magic                  protocol.Magic
	ServerGUID             int64
	Security               SecurityState
	ServerPreferredMTUSize uint16
}

func (pk *OpenConnectionReply1) ID() ID {
	return IDOpenConnectionReply1
}

// Reads an open connection reply 1 message from the buffer and returns an error if the operation
// failed.
func (pk *OpenConnectionReply1) Read(buf *buffer.Buffer) (err error) {
	if pk.Magic, err = buf.ReadMagic(); err != nil {
		return
	}

	if pk.ServerGUID, err = buf.ReadInt64(binary.BigEndian); err != nil {
		return
	}

	if pk.Security, err = readSecurity(buf); err != nil {
		return
	}

	if pk.ServerPreferredMTUSize, err = buf.ReadUint16(binary.BigEndian); err != nil {
		return
	}

	return
}
