package message

import (
	"encoding/binary"
	"time"

	"github.com/KAIYOHUGO/rodust/internal/buffer"
	"github.com/KAIYOHUGO/rodust/internal/protocol"
)

// UnconnectedPing is sent by the client to query the MCPE related data from the server such as
// MOTD, player count, version, etc. The open connections variant asks the server to only answer
// if it has open connection slots.
type UnconnectedPing struct {
	OpenConnections bool

	SendTimestamp time.Time
	Magic         protocol.Magic
	ClientGUID    int64
}

func (pk *UnconnectedPing) ID() ID {
	if pk.OpenConnections {
		return IDUnconnectedPingOpenConnections
	}
	return IDUnconnectedPing
}

// Reads an unconnected ping message from the buffer and returns an error if the operation
// failed.
func (pk *UnconnectedPing) Read(buf *buffer.Buffer) (err error) {
	if pk.SendTimestamp, err = buf.ReadTime(); err != nil {
		return
	}

	if pk.Magic, err = buf.ReadMagic(); err != nil {
		return
	}

	if pk.ClientGUID, err = buf.ReadInt64(binary.BigEndian); err != nil {
		return
	}

	return
}
