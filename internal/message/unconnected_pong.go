package message

import (
	"encoding/binary"
	"time"

	"github.com/KAIYOHUGO/rodust/internal/buffer"
	"github.com/KAIYOHUGO/rodust/internal/protocol"
)

// UnconnectedPong is sent by the server in response to the UnconnectedPing message. It sends the server's guid
// and the pong data that contains various information such as MOTD, player count, max player count, server version, etc.
type UnconnectedPong struct {
	SendTimestamp time.Time
	ServerGUID    int64
	Magic         protocol.Magic
	ServerID      string
}

func (pk *UnconnectedPong) ID() ID {
	return IDUnconnectedPong
}

// Reads unconnected pong from the underlying buffer and returns an error if the operation
// failed.
func (pk *UnconnectedPong) Read(buf *buffer.Buffer) (err error) {
	if pk.SendTimestamp, err = buf.ReadTime(); err != nil {
		return
	}

	if pk.ServerGUID, err = buf.ReadInt64(binary.BigEndian); err != nil {
		return
	}

	if pk.Magic, err = buf.ReadMagic(); err != nil {
		return
	}

	if pk.ServerID, err = buf.ReadString(); err != nil {
		return
	}

	return
}
