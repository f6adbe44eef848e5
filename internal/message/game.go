package message

import "github.com/KAIYOHUGO/rodust/internal/buffer"

// GamePacket represents a compressed and encrypted Minecraft Packet batch. The relay does not
// look into it.
type GamePacket struct {
	Data []byte
}

func (pk *GamePacket) ID() ID {
	return IDGamePacket
}

// Reads a game packet. Data borrows the rest of the buffer.
func (pk *GamePacket) Read(buf *buffer.Buffer) (err error) {
	pk.Data, err = buf.Read(buf.Remaining())
	return
}
