package protocol

// Reliability is the type of message ordering, sequencing that a message in raknet can be delivered with.
// It is stored in the upper three bits of a frame header. MCPE always uses the Reliable Ordered message type.
type Reliability uint8

const (
	Unreliable Reliability = iota
	UnreliableSequenced
	Reliable
	ReliableOrdered
	ReliableSequenced
	UnreliableWithAckReceipt
	ReliableWithAckReceipt
	ReliableOrderedWithAckReceipt
)

var reliabilityNames = [...]string{
	"Unreliable",
	"UnreliableSequenced",
	"Reliable",
	"ReliableOrdered",
	"ReliableSequenced",
	"UnreliableWithAckReceipt",
	"ReliableWithAckReceipt",
	"ReliableOrderedWithAckReceipt",
}

func (r Reliability) String() string {
	if int(r) < len(reliabilityNames) {
		return reliabilityNames[r]
	}
	return "Unknown"
}

// Flag is the decoded header of a frame.
type Flag struct {
	Reliability Reliability

	IsReliable bool
	IsOrder    bool
	IsSequence bool
	NeedAck    bool
	IsFragment bool
}

// flagTable maps a reliability to (reliable, order, sequence, need ack).
var flagTable = [8][4]bool{
	{false, false, false, false},
	{false, true, true, false},
	{true, false, false, false},
	{true, true, false, false},
	{true, true, true, false},
	{false, false, false, true},
	{true, false, false, true},
	{true, true, false, true},
}

// ParseFlag decodes the frame header byte. Only the upper nibble is used: its lowest bit
// marks a fragment and the remaining three bits select the reliability.
func ParseFlag(header byte) Flag {
	nibble := header >> 4
	r := Reliability(nibble >> 1)
	t := flagTable[r]

	return Flag{
		Reliability: r,
		IsReliable:  t[0],
		IsOrder:     t[1],
		IsSequence:  t[2],
		NeedAck:     t[3],
		IsFragment:  nibble&0b0001 != 0,
	}
}
