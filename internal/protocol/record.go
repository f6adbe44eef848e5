package protocol

// RecordType specifies the type of record the acknowledgement receipt contains. Record type
// can be either single i.e. one sequence number or ranged i.e. the start and the end of the range.
// Example for ranged record could be: start (12 uint24) - end (18 uint24) containing 7 sequence numbers.
type RecordType = uint8

const (
	SingleRecord RecordType = 0x01
	RangedRecord RecordType = 0x00
)

// Record is an entry of an ACK or NACK receipt. For a single record Start and End are equal.
// Ranges are inclusive on both ends.
type Record struct {
	Single bool
	Start  uint32
	End    uint32
}

// Count returns the number of sequence numbers covered by the record. A range whose end is
// before its start covers nothing.
func (r Record) Count() int {
	if r.Single {
		return 1
	}
	if r.End < r.Start {
		return 0
	}
	return int(r.End-r.Start) + 1
}

// Contains reports whether seq is acknowledged by the record.
func (r Record) Contains(seq uint32) bool {
	if r.Single {
		return seq == r.Start
	}
	return seq >= r.Start && seq <= r.End
}
