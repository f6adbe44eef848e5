package message

import (
	"time"

	"github.com/KAIYOHUGO/rodust/internal/buffer"
)

// ConnectedPong is sent by the server in response to the ConnectedPing message.
// It contains the original client timestamp sent by the client in the ping message and the
// server's timestamp which can be used for calculating the ping.
type ConnectedPong struct {
	ClientTimestamp time.Time
	ServerTimestamp time.Time
}

func (pk *ConnectedPong) ID() ID {
	return IDConnectedPong
}

// Reads a connected pong message from the buffer and returns an error if the operation
// has failed
func (pk *ConnectedPong) Read(buf *buffer.Buffer) (err error) {
	if pk.ClientTimestamp, err = buf.ReadTime(); err != nil {
		return
	}

	if pk.ServerTimestamp, err = buf.ReadTime(); err != nil {
		return
	}

	return
}
