package message

import "github.com/KAIYOHUGO/rodust/internal/buffer"

// Disconnect can be used to disconnect a raknet connection. It can be sent by either the client
// or the server
type Disconnect struct{}

func (pk *Disconnect) ID() ID {
	return IDDisconnectNotification
}

// Reads a disconnect message from the buffer. It carries no fields.
func (pk *Disconnect) Read(buf *buffer.Buffer) (err error) {
	return
}

// DetectLostConnections is sent to probe whether the other end is still alive. It carries no fields.
type DetectLostConnections struct{}

func (pk *DetectLostConnections) ID() ID {
	return IDDetectLostConnections
}

func (pk *DetectLostConnections) Read(buf *buffer.Buffer) (err error) {
	return
}
