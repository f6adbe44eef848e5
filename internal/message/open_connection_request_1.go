package message

import (
	"math"

	"github.com/KAIYOHUGO/rodust/internal/buffer"
	"github.com/KAIYOHUGO/rodust/internal/protocol"
)

// OpenConnectionRequest1 is the first packet sent by the client in the login sequence for raknet. It contains
// zero padding at the end of the packet to make the size of the packet reach a certain size known as the DiscoveringMTU.
// It is sent to know the maximum size of datagram that the network and the destination raknet server can handle.
type OpenConnectionRequest1 struct {
	Magic    protocol.Magic
	Protocol byte

	// MTUSize is the number of padding bytes that follow the protocol version. It is not
	// written on the wire but measured from what is left of the datagram.
	MTUSize uint16
}

func (pk *OpenConnectionRequest1) ID() ID {
	return IDOpenConnectionRequest1
}

// DiscoveringMTU returns the total size of the datagram on the network, including the IP and
// UDP headers, which is what the server compares against its own MTU limits.
func (pk *OpenConnectionRequest1) DiscoveringMTU() int {
	return protocol.UDP_HEADER_SIZE + protocol.MESSAGE_ID_SIZE + len(pk.Magic) + 1 + int(pk.MTUSize)
}

// Reads an open connection request 1 from the buffer and returns an error if the operation
// failed.
func (pk *OpenConnectionRequest1) Read(buf *buffer.Buffer) (err error) {
	if pk.Magic, err = buf.ReadMagic(); err != nil {
		return
	}

	if pk.Protocol, err = buf.ReadUint8(); err != nil {
		return
	}

	padding := buf.Remaining()
	if padding > math.MaxUint16 {
		return ErrInvalidMTUSize
	}

	if err = buf.Shift(padding); err != nil {
		return
	}

	pk.MTUSize = uint16(padding)
	return
}
