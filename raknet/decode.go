package raknet

import (
	"github.com/KAIYOHUGO/rodust/internal/buffer"
	"github.com/KAIYOHUGO/rodust/internal/message"
)

// Decode decodes a whole datagram as received from the network. The returned message may
// borrow from b, so b must not be reused while the message is in use.
func Decode(b []byte) (message.Message, error) {
	return message.Read(buffer.From(b))
}

// DecodeFrameSet decodes a datagram that is known to be a frame set, including its header byte.
func DecodeFrameSet(b []byte) (*message.FrameSet, error) {
	buf := buffer.From(b)

	id, err := message.ReadID(buf)
	if err != nil {
		return nil, err
	}

	if id != message.IDFrameSet {
		return nil, ErrUnknownPacket
	}

	set := &message.FrameSet{Header: b[0]}
	if err := set.Read(buf); err != nil {
		return nil, err
	}

	return set, nil
}

// DecodeConnected decodes a message carried in a frame body, usually the bytes returned by
// the Reassembler or the body of an unfragmented frame.
func DecodeConnected(b []byte) (message.Message, error) {
	return message.ReadConnected(buffer.From(b))
}
