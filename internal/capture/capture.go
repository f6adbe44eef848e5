// Package capture reads UDP datagrams out of pcap files.
package capture

import (
	"io"
	"net"
	"os"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/pkg/errors"
)

// Datagram is the payload of one UDP packet found in a capture.
type Datagram struct {
	Timestamp time.Time
	Src       *net.UDPAddr
	Dst       *net.UDPAddr
	Payload   []byte
}

// Reader yields the UDP datagrams of a capture in file order. Packets that are not UDP, or
// that do not decode, are skipped.
type Reader struct {
	r      *pcapgo.Reader
	closer io.Closer

	skipped int
}

// Open opens a pcap file.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open capture")
	}

	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f

	return r, nil
}

// NewReader reads a capture from r.
func NewReader(r io.Reader) (*Reader, error) {
	pr, err := pcapgo.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read pcap header")
	}
	return &Reader{r: pr}, nil
}

// Next returns the next UDP datagram, or io.EOF at the end of the capture.
func (r *Reader) Next() (*Datagram, error) {
	for {
		data, ci, err := r.r.ReadPacketData()
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read packet")
		}

		if d := decode(data, ci, r.r.LinkType()); d != nil {
			return d, nil
		}
		r.skipped += 1
	}
}

// Skipped returns how many packets were not UDP datagrams.
func (r *Reader) Skipped() int {
	return r.skipped
}

func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func decode(data []byte, ci gopacket.CaptureInfo, link layers.LinkType) *Datagram {
	packet := gopacket.NewPacket(data, link, gopacket.DecodeOptions{Lazy: true, NoCopy: true})

	udpLayer := packet.Layer(layers.LayerTypeUDP)
	if udpLayer == nil {
		return nil
	}
	udp := udpLayer.(*layers.UDP)

	var src, dst net.IP
	switch ip := packet.NetworkLayer().(type) {
	case *layers.IPv4:
		src, dst = ip.SrcIP, ip.DstIP
	case *layers.IPv6:
		src, dst = ip.SrcIP, ip.DstIP
	default:
		return nil
	}

	return &Datagram{
		Timestamp: ci.Timestamp,
		Src:       &net.UDPAddr{IP: src, Port: int(udp.SrcPort)},
		Dst:       &net.UDPAddr{IP: dst, Port: int(udp.DstPort)},
		Payload:   udp.Payload,
	}
}
