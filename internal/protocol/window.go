package protocol

import "slices"

// This is the maximum distance a datagram sequence number may be ahead of the oldest
// sequence number that has not been received yet.
const WINDOW_SIZE uint32 = 2048

// SeqDiff returns a - b for 24 bit datagram sequence numbers, taking the wrap around into
// account. The result is in [-2^23, 2^23).
func SeqDiff(a, b uint32) int32 {
	d := (a - b) & SEQUENCE_MASK
	if d >= 1<<23 {
		return int32(d) - 1<<24
	}
	return int32(d)
}

// SequenceWindow follows the datagram sequence numbers seen in one direction of a connection.
// The relay only observes traffic, so the window is used to report duplicated and missing
// datagrams rather than to write ACK/NACK receipts.
//
// Start is the oldest sequence number not received yet. When a datagram arrives beyond End,
// the window shifts forward and the sequence numbers it leaves behind are given up on.
type SequenceWindow struct {
	Start uint32
	End   uint32

	next     uint32
	started  bool
	received map[uint32]struct{}
	missing  map[uint32]struct{}
}

func CreateSequenceWindow() *SequenceWindow {
	return &SequenceWindow{
		Start:    0,
		End:      WINDOW_SIZE,
		received: map[uint32]struct{}{},
		missing:  map[uint32]struct{}{},
	}
}

// Receive records a datagram sequence number. It returns false if the sequence number has
// been received already or is behind the window, i.e. received or given up on. The first
// sequence number received anchors the window, so a relay attached to a running connection
// does not report every earlier datagram as missing. A sequence number far behind the window
// means the peer started over, and anchors the window again.
func (w *SequenceWindow) Receive(seq uint32) bool {
	seq &= SEQUENCE_MASK

	if !w.started {
		w.reset(seq)
	}

	d := SeqDiff(seq, w.Start)
	switch {
	case d < -int32(WINDOW_SIZE):
		w.reset(seq)
	case d < 0:
		return false
	case d > int32(WINDOW_SIZE):
		w.shift((seq - WINDOW_SIZE) & SEQUENCE_MASK)
	}

	if _, ok := w.received[seq]; ok {
		return false
	}

	w.received[seq] = struct{}{}
	delete(w.missing, seq)

	if SeqDiff(seq, w.next) >= 0 {
		for i := w.next; i != seq; i = (i + 1) & SEQUENCE_MASK {
			w.missing[i] = struct{}{}
		}
		w.next = (seq + 1) & SEQUENCE_MASK
	}

	for {
		if _, ok := w.received[w.Start]; !ok {
			break
		}
		delete(w.received, w.Start)
		w.Start = (w.Start + 1) & SEQUENCE_MASK
	}
	w.End = (w.Start + WINDOW_SIZE) & SEQUENCE_MASK

	return true
}

// Moves Start forward to start and forgets every sequence number behind it.
func (w *SequenceWindow) shift(start uint32) {
	w.Start = start
	w.End = (start + WINDOW_SIZE) & SEQUENCE_MASK

	for seq := range w.received {
		if SeqDiff(seq, start) < 0 {
			delete(w.received, seq)
		}
	}
	for seq := range w.missing {
		if SeqDiff(seq, start) < 0 {
			delete(w.missing, seq)
		}
	}
	if SeqDiff(w.next, start) < 0 {
		w.next = start
	}
}

func (w *SequenceWindow) reset(seq uint32) {
	w.started = true
	w.Start = seq
	w.End = (seq + WINDOW_SIZE) & SEQUENCE_MASK
	w.next = seq
	clear(w.received)
	clear(w.missing)
}

// Missing returns the sequence numbers skipped so far that have not arrived since, oldest
// first.
func (w *SequenceWindow) Missing() []uint32 {
	missing := make([]uint32, 0, len(w.missing))
	for seq := range w.missing {
		missing = append(missing, seq)
	}
	slices.SortFunc(missing, func(a, b uint32) int {
		return int(SeqDiff(a, w.Start)) - int(SeqDiff(b, w.Start))
	})
	return missing
}

// SplitWindow collects the fragments of one fragmented message. Fragments are only accepted
// in order: a fragment whose index is not the number of fragments taken so far is ignored.
// A window never holds more than Count fragments of MAX_MTU_SIZE bytes each.
type SplitWindow struct {
	Count   uint32
	counter uint32
	limit   int
	content []byte
}

func CreateSplitWindow(count uint32) *SplitWindow {
	return &SplitWindow{
		Count: count,
		limit: int(count) * MAX_MTU_SIZE,
	}
}

// Receive copies the fragment into the window if it is the next expected one and fits in
// the window. It returns true once all the fragments of the message have been taken.
func (w *SplitWindow) Receive(index uint32, fragment []byte) bool {
	if index != w.counter || w.counter >= w.Count {
		return false
	}

	if len(w.content)+len(fragment) > w.limit {
		return false
	}

	w.counter += 1
	w.content = append(w.content, fragment...)

	return w.counter == w.Count
}

// Received returns the number of fragments taken so far.
func (w *SplitWindow) Received() uint32 {
	return w.counter
}

// Content returns the bytes accumulated so far.
func (w *SplitWindow) Content() []byte {
	return w.content
}
