package raknet

import (
	"bytes"
	"encoding/binary"
	"sync"

	"github.com/KAIYOHUGO/rodust/internal/message"
	"github.com/KAIYOHUGO/rodust/internal/protocol"
)

// Builds an unconnected ping datagram.
func unconnectedPing(magic protocol.Magic, guid int64) []byte {
	b := &bytes.Buffer{}
	b.WriteByte(message.IDUnconnectedPing)
	binary.Write(b, binary.BigEndian, int64(1000))
	b.Write(magic[:])
	binary.Write(b, binary.BigEndian, guid)
	return b.Bytes()
}

// Builds a frame set datagram carrying one reliable ordered frame, fragmented when count > 0.
func frameSet(seq uint32, id uint16, count, index uint32, body []byte) []byte {
	b := &bytes.Buffer{}
	b.WriteByte(0x84)
	b.Write([]byte{byte(seq), byte(seq >> 8), byte(seq >> 16)})

	header := byte(protocol.ReliableOrdered) << 5
	if count > 0 {
		header |= protocol.FLAG_FRAGMENTED
	}
	b.WriteByte(header)
	binary.Write(b, binary.BigEndian, uint16(len(body))<<3)
	b.Write([]byte{byte(seq), 0, 0})
	b.Write([]byte{0, 0, 0, 0})
	if count > 0 {
		binary.Write(b, binary.BigEndian, count)
		binary.Write(b, binary.BigEndian, id)
		binary.Write(b, binary.BigEndian, index)
	}
	b.Write(body)
	return b.Bytes()
}

func fragment(id uint16, count, index uint32, body []byte) *message.Frame {
	return &message.Frame{
		Flag:     protocol.ParseFlag(byte(protocol.ReliableOrdered)<<5 | protocol.FLAG_FRAGMENTED),
		Fragment: &message.Fragment{CompoundSize: count, CompoundID: id, Index: index},
		Body:     body,
	}
}

// recorder is an Inspector that remembers the names of what it saw.
type recorder struct {
	mu        sync.Mutex
	datagrams []string
	connected []string
	failures  []error
}

func (r *recorder) Datagram(dir Direction, msg message.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.datagrams = append(r.datagrams, dir.String()+" "+MessageName(msg))
}

func (r *recorder) Connected(dir Direction, msg message.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connected = append(r.connected, dir.String()+" "+MessageName(msg))
}

func (r *recorder) Failure(dir Direction, b []byte, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, err)
}

func (r *recorder) snapshot() (datagrams, connected []string, failures []error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.datagrams...), append([]string(nil), r.connected...), append([]error(nil), r.failures...)
}
