package message

import (
	"bytes"
	"encoding/binary"
	"net"

	"github.com/KAIYOHUGO/rodust/internal/protocol"
)

// datagram builds raw message bytes for tests.
type datagram struct {
	bytes.Buffer
}

func (d *datagram) u8(v uint8) *datagram {
	d.WriteByte(v)
	return d
}

func (d *datagram) u16(v uint16) *datagram {
	binary.Write(&d.Buffer, binary.BigEndian, v)
	return d
}

func (d *datagram) u24(v uint32) *datagram {
	d.Write([]byte{byte(v), byte(v >> 8), byte(v >> 16)})
	return d
}

func (d *datagram) u32(v uint32) *datagram {
	binary.Write(&d.Buffer, binary.BigEndian, v)
	return d
}

func (d *datagram) i64(v int64) *datagram {
	binary.Write(&d.Buffer, binary.BigEndian, v)
	return d
}

func (d *datagram) magic() *datagram {
	d.Write(protocol.UNCONNECTED_MAGIC[:])
	return d
}

func (d *datagram) str(s string) *datagram {
	d.u16(uint16(len(s)))
	d.WriteString(s)
	return d
}

func (d *datagram) addr4(ip string, port uint16) *datagram {
	d.u8(4)
	d.Write(net.ParseIP(ip).To4())
	d.u16(port)
	return d
}

func (d *datagram) raw(b ...byte) *datagram {
	d.Write(b)
	return d
}
