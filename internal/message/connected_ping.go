package message

import (
	"time"

	"github.com/KAIYOHUGO/rodust/internal/buffer"
)

// ConnectedPing is sent by a connected client to a server to check if the connection
// is still alive. It is used for calculation of ping between the server and the client.
type ConnectedPing struct {
	ClientTimestamp time.Time
}

func (pk *ConnectedPing) ID() ID {
	return IDConnectedPing
}

// Reads a connected ping message and returns an error if the operation failed
func (pk *ConnectedPing) Read(buf *buffer.Buffer) (err error) {
	pk.ClientTimestamp, err = buf.ReadTime()
	return
}
