package raknet

import (
	"sync/atomic"

	"github.com/KAIYOHUGO/rodust/internal/message"
	"github.com/KAIYOHUGO/rodust/internal/protocol"
)

// Direction tells which peer sent a datagram.
type Direction uint8

const (
	ClientToServer Direction = iota
	ServerToClient
)

func (d Direction) String() string {
	if d == ServerToClient {
		return "server->client"
	}
	return "client->server"
}

// StreamStats counts what a stream has seen so far.
type StreamStats struct {
	Datagrams   uint64
	Failures    uint64
	Duplicates  uint64
	Reassembled uint64
	Evicted     uint64
	Dropped     uint64
}

// Stream inspects the datagrams sent by one peer. It tracks datagram sequence numbers,
// reassembles fragmented frames and hands every decoded message to an Inspector.
//
// Observe must be called by one goroutine at a time. Stats may be read concurrently.
type Stream struct {
	dir       Direction
	inspector Inspector

	window      *protocol.SequenceWindow
	reassembler *Reassembler

	datagrams   atomic.Uint64
	failures    atomic.Uint64
	duplicates  atomic.Uint64
	reassembled atomic.Uint64
	evicted     atomic.Uint64
	dropped     atomic.Uint64
}

func NewStream(dir Direction, inspector Inspector, opts ...ReassemblerOption) *Stream {
	return &Stream{
		dir:         dir,
		inspector:   inspector,
		window:      protocol.CreateSequenceWindow(),
		reassembler: NewReassembler(opts...),
	}
}

// Observe decodes a datagram and reports it to the inspector. A decode failure is reported
// too and returned, the datagram itself is never modified.
func (s *Stream) Observe(b []byte) (message.Message, error) {
	s.datagrams.Add(1)

	msg, err := Decode(b)
	if err != nil {
		s.failures.Add(1)
		s.inspector.Failure(s.dir, b, err)
		return nil, err
	}

	s.inspector.Datagram(s.dir, msg)

	if set, ok := msg.(*message.FrameSet); ok {
		s.observeFrameSet(set)
	}

	return msg, nil
}

func (s *Stream) observeFrameSet(set *message.FrameSet) {
	if !s.window.Receive(set.Sequence) {
		s.duplicates.Add(1)
		return
	}

	body := set.Frame.Body
	if set.Frame.Fragment != nil {
		payload, ok := s.reassembler.Collect(&set.Frame)
		s.evicted.Store(s.reassembler.Evicted())
		s.dropped.Store(s.reassembler.Dropped())
		if !ok {
			return
		}
		s.reassembled.Add(1)
		body = payload
	}

	msg, err := DecodeConnected(body)
	if err != nil {
		s.failures.Add(1)
		s.inspector.Failure(s.dir, body, err)
		return
	}

	s.inspector.Connected(s.dir, msg)
}

// Missing returns the datagram sequence numbers that were skipped and never arrived.
func (s *Stream) Missing() []uint32 {
	return s.window.Missing()
}

func (s *Stream) Stats() StreamStats {
	return StreamStats{
		Datagrams:   s.datagrams.Load(),
		Failures:    s.failures.Load(),
		Duplicates:  s.duplicates.Load(),
		Reassembled: s.reassembled.Load(),
		Evicted:     s.evicted.Load(),
		Dropped:     s.dropped.Load(),
	}
}
