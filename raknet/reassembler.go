package raknet

import (
	"github.com/hashicorp/golang-lru/simplelru"

	"github.com/KAIYOHUGO/rodust/internal/message"
	"github.com/KAIYOHUGO/rodust/internal/protocol"
)

// Reassembler rebuilds fragmented messages out of the frames of one peer. Fragments of a
// message are only accepted in order of their index. Incomplete messages are kept until they
// complete or until the least recently touched one is evicted to make room for a new one.
//
// A Reassembler is not safe for concurrent use; the relay keeps one per direction.
type Reassembler struct {
	splits       *simplelru.LRU
	maxFragments uint32

	evicted uint64
	dropped uint64
}

// ReassemblerOption configures a Reassembler.
type ReassemblerOption func(*reassemblerOptions)

type reassemblerOptions struct {
	maxBuffers   int
	maxFragments uint32
}

// WithMaxBuffers sets how many incomplete messages are kept at the same time.
func WithMaxBuffers(n int) ReassemblerOption {
	return func(o *reassemblerOptions) {
		o.maxBuffers = n
	}
}

// WithMaxFragments sets how many fragments a message may be split into. Fragments of larger
// messages are dropped.
func WithMaxFragments(n uint32) ReassemblerOption {
	return func(o *reassemblerOptions) {
		o.maxFragments = n
	}
}

func NewReassembler(opts ...ReassemblerOption) *Reassembler {
	o := reassemblerOptions{
		maxBuffers:   protocol.MAX_SPLIT_BUFFERS,
		maxFragments: protocol.MAX_FRAGMENT_COUNT,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxBuffers <= 0 {
		o.maxBuffers = protocol.MAX_SPLIT_BUFFERS
	}
	if o.maxFragments == 0 {
		o.maxFragments = protocol.MAX_FRAGMENT_COUNT
	}

	r := &Reassembler{maxFragments: o.maxFragments}

	// NewLRU only fails on a non-positive size.
	r.splits, _ = simplelru.NewLRU(o.maxBuffers, func(_ interface{}, value interface{}) {
		// Remove also calls back here; only incomplete windows count as evicted.
		w := value.(*protocol.SplitWindow)
		if w.Received() != w.Count {
			r.evicted += 1
		}
	})

	return r
}

// Collect feeds a frame to the reassembler. It returns the reassembled message and true once
// the frame completes a fragmented message. Frames that are not fragments return nil and false;
// the caller uses their body as is. Fragments of an empty or oversized message, or whose index
// is past the end of the message, are dropped without creating a buffer.
func (r *Reassembler) Collect(frame *message.Frame) ([]byte, bool) {
	fragment := frame.Fragment
	if fragment == nil {
		return nil, false
	}

	if fragment.CompoundSize == 0 || fragment.CompoundSize > r.maxFragments ||
		fragment.Index >= fragment.CompoundSize {
		r.dropped += 1
		return nil, false
	}

	var window *protocol.SplitWindow
	if v, ok := r.splits.Get(fragment.CompoundID); ok {
		window = v.(*protocol.SplitWindow)
	} else {
		window = protocol.CreateSplitWindow(fragment.CompoundSize)
		r.splits.Add(fragment.CompoundID, window)
	}

	if !window.Receive(fragment.Index, frame.Body) {
		return nil, false
	}

	r.splits.Remove(fragment.CompoundID)
	return window.Content(), true
}

// Len returns the number of incomplete messages held.
func (r *Reassembler) Len() int {
	return r.splits.Len()
}

// Dropped returns how many fragments were refused because of their size or index.
func (r *Reassembler) Dropped() uint64 {
	return r.dropped
}

// Evicted returns how many incomplete messages were dropped to respect the buffer limit.
func (r *Reassembler) Evicted() uint64 {
	return r.evicted
}
