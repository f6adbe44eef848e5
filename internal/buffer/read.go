package buffer

import (
	"encoding/binary"
	"net"
	"time"
	"unicode/utf8"
)

// Reads a single byte.
func (b *Buffer) ReadUint8() (uint8, error) {
	s, err := b.Read(1)
	if err != nil {
		return 0, err
	}
	return s[0], nil
}

// Reads a byte as a boolean. Any non-zero value is true.
func (b *Buffer) ReadBool() (bool, error) {
	v, err := b.ReadUint8()
	return v != 0, err
}

// Reads an unsigned 16 bit integer in the given byte order.
func (b *Buffer) ReadUint16(order binary.ByteOrder) (uint16, error) {
	s, err := b.Read(2)
	if err != nil {
		return 0, err
	}
	return order.Uint16(s), nil
}

// Reads a signed 16 bit integer in the given byte order.
func (b *Buffer) ReadInt16(order binary.ByteOrder) (int16, error) {
	v, err := b.ReadUint16(order)
	return int16(v), err
}

// Reads an unsigned 24 bit integer in the given byte order and widens it to 32 bits. RakNet
// writes every 24 bit integer in little endian.
func (b *Buffer) ReadUint24(order binary.ByteOrder) (uint32, error) {
	s, err := b.Read(3)
	if err != nil {
		return 0, err
	}

	var full [4]byte
	if order == binary.BigEndian {
		copy(full[1:], s)
	} else {
		copy(full[:3], s)
	}
	return order.Uint32(full[:]), nil
}

// Reads an unsigned 32 bit integer in the given byte order.
func (b *Buffer) ReadUint32(order binary.ByteOrder) (uint32, error) {
	s, err := b.Read(4)
	if err != nil {
		return 0, err
	}
	return order.Uint32(s), nil
}

// Reads an unsigned 64 bit integer in the given byte order.
func (b *Buffer) ReadUint64(order binary.ByteOrder) (uint64, error) {
	s, err := b.Read(8)
	if err != nil {
		return 0, err
	}
	return order.Uint64(s), nil
}

// Reads a signed 64 bit integer in the given byte order.
func (b *Buffer) ReadInt64(order binary.ByteOrder) (int64, error) {
	v, err := b.ReadUint64(order)
	return int64(v), err
}

// Reads the 16 byte magic found in unconnected messages. The value is not validated.
func (b *Buffer) ReadMagic() (magic [16]byte, err error) {
	s, err := b.Read(len(magic))
	if err != nil {
		return
	}
	copy(magic[:], s)
	return
}

// Reads a string prefixed by its big endian 16 bit length. The returned string is a copy.
func (b *Buffer) ReadString() (str string, err error) {
	m := b.mark()
	defer func() {
		if err != nil {
			b.rewind(m)
		}
	}()

	n, err := b.ReadUint16(binary.BigEndian)
	if err != nil {
		return
	}

	s, err := b.Read(int(n))
	if err != nil {
		return
	}

	if !utf8.Valid(s) {
		err = ErrUtf8
		return
	}

	str = string(s)
	return
}

// Reads a timestamp written as big endian milliseconds since the unix epoch.
func (b *Buffer) ReadTime() (time.Time, error) {
	m := b.mark()

	ms, err := b.ReadInt64(binary.BigEndian)
	if err != nil {
		return time.Time{}, err
	}

	if ms < 0 {
		b.rewind(m)
		return time.Time{}, ErrInvalidTime
	}

	return time.UnixMilli(ms), nil
}

// Reads a socket address into addr.
//
// IPv4 addresses are written as 4 raw bytes followed by a big endian port. IPv6 addresses
// follow the layout observed from other implementations: 2 skipped bytes, a little endian
// port, 4 skipped bytes, the 16 byte address and 4 more skipped bytes.
func (b *Buffer) ReadAddr(addr *net.UDPAddr) (err error) {
	m := b.mark()
	defer func() {
		if err != nil {
			b.rewind(m)
		}
	}()

	ver, err := b.ReadUint8()
	if err != nil {
		return
	}

	switch ver {
	case 4:
		var ip []byte
		if ip, err = b.Read(net.IPv4len); err != nil {
			return
		}

		var port uint16
		if port, err = b.ReadUint16(binary.BigEndian); err != nil {
			return
		}

		addr.IP = net.IPv4(ip[0], ip[1], ip[2], ip[3])
		addr.Port = int(port)
		addr.Zone = ""
	case 6:
		if err = b.Shift(2); err != nil {
			return
		}

		var port uint16
		if port, err = b.ReadUint16(binary.LittleEndian); err != nil {
			return
		}

		if err = b.Shift(4); err != nil {
			return
		}

		var ip []byte
		if ip, err = b.Read(net.IPv6len); err != nil {
			return
		}

		if err = b.Shift(4); err != nil {
			return
		}

		addr.IP = append(net.IP(nil), ip...)
		addr.Port = int(port)
		addr.Zone = ""
	default:
		err = ErrUnsupportedIPVersion
	}

	return
}
