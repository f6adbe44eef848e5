package message

import (
	"encoding/binary"

	"github.com/KAIYOHUGO/rodust/internal/buffer"
	"github.com/KAIYOHUGO/rodust/internal/protocol"
)

// Every record takes at least a record type and one sequence number.
const minRecordSize = 1 + 3

// Acknowledgement is the content shared by ACK and NACK receipts: a record count followed by
// that many records.
type Acknowledgement struct {
	RecordCount uint16
	Records     []protocol.Record
}

// Count returns the number of sequence numbers covered by the records.
func (a *Acknowledgement) Count() int {
	n := 0
	for _, r := range a.Records {
		n += r.Count()
	}
	return n
}

// Reads the record count and the records of a receipt and returns an error if the operation
// has failed.
func (a *Acknowledgement) Read(buf *buffer.Buffer) (err error) {
	if a.RecordCount, err = buf.ReadUint16(binary.BigEndian); err != nil {
		return
	}

	capacity := int(a.RecordCount)
	if limit := buf.Remaining() / minRecordSize; capacity > limit {
		capacity = limit
	}
	a.Records = make([]protocol.Record, 0, capacity)

	for i := 0; i < int(a.RecordCount); i++ {
		var record protocol.Record
		if record, err = readRecord(buf); err != nil {
			return
		}
		a.Records = append(a.Records, record)
	}

	return
}

// Reads a single receipt record. A leading true byte marks a single sequence number,
// otherwise an inclusive range follows.
func readRecord(buf *buffer.Buffer) (record protocol.Record, err error) {
	if record.Single, err = buf.ReadBool(); err != nil {
		return
	}

	if record.Start, err = buf.ReadUint24(binary.LittleEndian); err != nil {
		return
	}

	if record.Single {
		record.End = record.Start
		return
	}

	if record.End, err = buf.ReadUint24(binary.LittleEndian); err != nil {
		return
	}

	return
}

// Ack is sent to confirm the datagrams that have been received.
type Ack struct {
	Acknowledgement
}

func (pk *Ack) ID() ID {
	return IDAck
}

// Nack is sent to request the datagrams that are missing.
type Nack struct {
	Acknowledgement
}

func (pk *Nack) ID() ID {
	return IDNack
}
