package message

import (
	"encoding/binary"

	"github.com/KAIYOHUGO/rodust/internal/buffer"
	"github.com/KAIYOHUGO/rodust/internal/protocol"
)

// FrameSet is a datagram carrying connected messages. Only the first frame of the datagram
// is decoded; any bytes after it are left in the buffer.
type FrameSet struct {
	// Header is the raw ID byte of the datagram. Its low nibble holds datagram flags.
	Header   byte
	Sequence uint32
	Frame    Frame
}

func (pk *FrameSet) ID() ID {
	return IDFrameSet
}

// Reads the sequence number and the first frame of the datagram.
func (pk *FrameSet) Read(buf *buffer.Buffer) (err error) {
	if pk.Sequence, err = buf.ReadUint24(binary.LittleEndian); err != nil {
		return
	}

	if err = pk.Frame.Read(buf); err != nil {
		return
	}

	return
}

// Order places a frame on one of the ordering channels.
type Order struct {
	Index   uint32
	Channel uint8
}

// Fragment describes the position of a frame in a fragmented message.
type Fragment struct {
	CompoundSize uint32
	CompoundID   uint16
	Index        uint32
}

// Frame is a single encapsulated message. The optional fields are nil unless the flag of the
// frame says they are present.
type Frame struct {
	Flag          protocol.Flag
	BitLength     uint16
	ReliableIndex *uint32
	SequenceIndex *uint32
	Order         *Order
	Fragment      *Fragment

	// Body borrows the buffer the frame was read from.
	Body []byte
}

// Reads a frame. The optional fields are read in the order reliable index, sequence index,
// order and fragment, each only if its flag is set.
func (f *Frame) Read(buf *buffer.Buffer) (err error) {
	header, err := buf.ReadUint8()
	if err != nil {
		return
	}
	f.Flag = protocol.ParseFlag(header)

	if f.BitLength, err = buf.ReadUint16(binary.BigEndian); err != nil {
		return
	}

	if f.Flag.IsReliable {
		var index uint32
		if index, err = buf.ReadUint24(binary.LittleEndian); err != nil {
			return
		}
		f.ReliableIndex = &index
	}

	if f.Flag.IsSequence {
		var index uint32
		if index, err = buf.ReadUint24(binary.LittleEndian); err != nil {
			return
		}
		f.SequenceIndex = &index
	}

	if f.Flag.IsOrder {
		order := &Order{}
		if order.Index, err = buf.ReadUint24(binary.LittleEndian); err != nil {
			return
		}
		if order.Channel, err = buf.ReadUint8(); err != nil {
			return
		}
		f.Order = order
	}

	if f.Flag.IsFragment {
		fragment := &Fragment{}
		if fragment.CompoundSize, err = buf.ReadUint32(binary.BigEndian); err != nil {
			return
		}
		if fragment.CompoundID, err = buf.ReadUint16(binary.BigEndian); err != nil {
			return
		}
		if fragment.Index, err = buf.ReadUint32(binary.BigEndian); err != nil {
			return
		}
		f.Fragment = fragment
	}

	if f.Body, err = buf.Read(int(f.BitLength / 8)); err != nil {
		return
	}

	return
}
