package message

import (
	"errors"

	"github.com/KAIYOHUGO/rodust/internal/buffer"
	"github.com/KAIYOHUGO/rodust/internal/protocol"
)

// ID represents a raknet message ID. It is a unique identifier for each RakNet
// message.
type ID = uint8

// IDs of the messages that are sent as a datagram of their own.
const (
	IDUnconnectedPing                ID = 0x01
	IDUnconnectedPingOpenConnections ID = 0x02
	IDUnconnectedPong                ID = 0x1c
	IDOpenConnectionRequest1         ID = 0x05
	IDOpenConnectionReply1           ID = 0x06
	IDOpenConnectionRequest2         ID = 0x07
	IDOpenConnectionReply2           ID = 0x08
	IDIncompatibleProtocolVersion    ID = 0x19
	IDFrameSet                       ID = 0x80
	IDNack                           ID = 0xa0
	IDAck                            ID = 0xc0
)

// IDs of the messages that are carried in the body of a frame once a connection exists.
const (
	IDConnectedPing             ID = 0x00
	IDConnectedPong             ID = 0x03
	IDDetectLostConnections     ID = 0x04
	IDConnectionRequest         ID = 0x09
	IDConnectionRequestAccepted ID = 0x10
	IDNewIncomingConnection     ID = 0x13
	IDDisconnectNotification    ID = 0x15
	IDGamePacket                ID = 0xfe
)

// This error is returned when the leading ID of a datagram or a frame body is not known.
var ErrUnknownPacket = errors.New("message: unknown packet id")

// This error is returned when the MTU derived from the padding of an open connection request
// does not fit in 16 bits.
var ErrInvalidMTUSize = errors.New("message: invalid mtu size in udp packet")

// Message represents a decoded raknet message. Read is called with the buffer positioned
// right after the message ID.
type Message interface {
	ID() ID
	Read(buf *buffer.Buffer) (err error)
}

// Reads the leading ID of a datagram. Every header from 0x80 up to 0x8d is a frame set and
// is reported as IDFrameSet; the other IDs must match exactly.
func ReadID(buf *buffer.Buffer) (ID, error) {
	_, id, err := readHeader(buf)
	return id, err
}

// Reads the leading byte of a datagram and returns it both as is and as a message ID.
func readHeader(buf *buffer.Buffer) (header byte, id ID, err error) {
	if header, err = buf.ReadUint8(); err != nil {
		return
	}

	switch {
	case header >= protocol.FLAG_DATAGRAM && header <= protocol.FRAME_SET_LAST:
		return header, IDFrameSet, nil
	case header == IDUnconnectedPing, header == IDUnconnectedPingOpenConnections, header == IDUnconnectedPong,
		header == IDOpenConnectionRequest1, header == IDOpenConnectionReply1,
		header == IDOpenConnectionRequest2, header == IDOpenConnectionReply2,
		header == IDIncompatibleProtocolVersion, header == IDNack, header == IDAck:
		return header, header, nil
	}

	return header, 0, ErrUnknownPacket
}

// Read decodes a whole datagram. The returned message may borrow bytes from the buffer.
func Read(buf *buffer.Buffer) (Message, error) {
	header, id, err := readHeader(buf)
	if err != nil {
		return nil, err
	}

	var msg Message

	switch id {
	case IDUnconnectedPing:
		msg = &UnconnectedPing{}
	case IDUnconnectedPingOpenConnections:
		msg = &UnconnectedPing{OpenConnections: true}
	case IDUnconnectedPong:
		msg = &UnconnectedPong{}
	case IDOpenConnectionRequest1:
		msg = &OpenConnectionRequest1{}
	case IDOpenConnectionReply1:
		msg = &OpenConnectionReply1{}
	case IDOpenConnectionRequest2:
		msg = &OpenConnectionRequest2{}
	case IDOpenConnectionReply2:
		msg = &OpenConnectionReply2{}
	case IDIncompatibleProtocolVersion:
		msg = &IncompatibleProtocolVersion{}
	case IDFrameSet:
		msg = &FrameSet{Header: header}
	case IDAck:
		msg = &Ack{}
	case IDNack:
		msg = &Nack{}
	}

	if err := msg.Read(buf); err != nil {
		return nil, err
	}

	return msg, nil
}

// ReadConnected decodes a message carried in the body of a frame, after reassembly if the
// message was fragmented.
func ReadConnected(buf *buffer.Buffer) (Message, error) {
	id, err := buf.ReadUint8()
	if err != nil {
		return nil, err
	}

	var msg Message

	switch id {
	case IDConnectedPing:
		msg = &ConnectedPing{}
	case IDConnectedPong:
		msg = &ConnectedPong{}
	case IDDetectLostConnections:
		msg = &DetectLostConnections{}
	case IDConnectionRequest:
		msg = &ConnectionRequest{}
	case IDConnectionRequestAccepted:
		msg = &ConnectionRequestAccepted{}
	case IDNewIncomingConnection:
		msg = &NewIncomingConnection{}
	case IDDisconnectNotification:
		msg = &Disconnect{}
	case IDGamePacket:
		msg = &GamePacket{}
	default:
		return nil, ErrUnknownPacket
	}

	if err := msg.Read(buf); err != nil {
		return nil, err
	}

	return msg, nil
}
