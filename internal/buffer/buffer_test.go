package buffer

import (
	"encoding/binary"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBufferLifecycle(t *testing.T) {
	require := require.New(t)
	b := New(8)

	require.Equal(8, b.Cap())
	require.Equal(0, b.Remaining())

	copy(b.Slice(), []byte{1, 2, 3, 4, 5})
	require.Nil(b.Resize(5))
	require.Equal(5, b.Remaining())

	s, err := b.Read(2)
	require.Nil(err)
	require.Equal([]byte{1, 2}, s)
	require.Equal(2, b.Offset())
	require.Equal(3, b.Remaining())
	require.Equal([]byte{3, 4, 5}, b.Rest())
	require.Equal([]byte{1, 2, 3, 4, 5}, b.Bytes())

	require.Nil(b.Shift(3))
	require.Equal(0, b.Remaining())
	require.Equal(ErrInsufficientByte, b.Shift(1))

	b.Reset()
	require.Equal(0, b.Offset())
	require.Equal(0, b.Remaining())

	require.Equal(ErrOutOfBound, b.Resize(9))
}

func TestBufferReadFailureKeepsCursor(t *testing.T) {
	require := require.New(t)
	b := From([]byte{1, 2, 3})

	_, err := b.Read(1)
	require.Nil(err)

	_, err = b.Read(3)
	require.Equal(ErrInsufficientByte, err)
	require.Equal(1, b.Offset())
	require.Equal(2, b.Remaining())

	_, err = b.Read(-1)
	require.Equal(ErrInsufficientByte, err)
	require.Equal(1, b.Offset())
}

func TestBufferWindow(t *testing.T) {
	require := require.New(t)
	b := From([]byte{1, 2, 3, 4})

	s, err := b.Window(1, 3)
	require.Nil(err)
	require.Equal([]byte{2, 3}, s)
	require.Equal(0, b.Offset())

	_, err = b.Window(2, 5)
	require.Equal(ErrOutOfBound, err)
	_, err = b.Window(3, 2)
	require.Equal(ErrOutOfBound, err)
}

func TestShortPrimitivesKeepCursor(t *testing.T) {
	reads := map[string]func(b *Buffer) error{
		"uint8":  func(b *Buffer) error { _, err := b.ReadUint8(); return err },
		"bool":   func(b *Buffer) error { _, err := b.ReadBool(); return err },
		"uint16": func(b *Buffer) error { _, err := b.ReadUint16(binary.BigEndian); return err },
		"uint24": func(b *Buffer) error { _, err := b.ReadUint24(binary.LittleEndian); return err },
		"uint32": func(b *Buffer) error { _, err := b.ReadUint32(binary.BigEndian); return err },
		"int64":  func(b *Buffer) error { _, err := b.ReadInt64(binary.BigEndian); return err },
		"magic":  func(b *Buffer) error { _, err := b.ReadMagic(); return err },
		"time":   func(b *Buffer) error { _, err := b.ReadTime(); return err },
		"string": func(b *Buffer) error { _, err := b.ReadString(); return err },
		"addr":   func(b *Buffer) error { return b.ReadAddr(&net.UDPAddr{}) },
	}

	for name, read := range reads {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			b := From([]byte{0xff, 4})
			require.Nil(b.Shift(1))

			if name == "uint8" || name == "bool" {
				b = From(nil)
			}

			offset := b.Offset()
			require.Equal(ErrInsufficientByte, read(b))
			require.Equal(offset, b.Offset())
		})
	}
}

func TestReadIntegers(t *testing.T) {
	require := require.New(t)

	v24, err := From([]byte{0x01, 0x00, 0x00}).ReadUint24(binary.LittleEndian)
	require.Nil(err)
	require.Equal(uint32(1), v24)

	v24, err = From([]byte{0x00, 0x00, 0x01}).ReadUint24(binary.BigEndian)
	require.Nil(err)
	require.Equal(uint32(1), v24)

	v32, err := From([]byte{0x00, 0x00, 0x00, 0x01}).ReadUint32(binary.BigEndian)
	require.Nil(err)
	require.Equal(uint32(1), v32)

	v16, err := From([]byte{0x1f, 0x90}).ReadUint16(binary.BigEndian)
	require.Nil(err)
	require.Equal(uint16(8080), v16)

	v16, err = From([]byte{0x1f, 0x90}).ReadUint16(binary.LittleEndian)
	require.Nil(err)
	require.Equal(uint16(0x901f), v16)

	i16, err := From([]byte{0xff, 0xfe}).ReadInt16(binary.BigEndian)
	require.Nil(err)
	require.Equal(int16(-2), i16)

	b, err := From([]byte{0x02}).ReadBool()
	require.Nil(err)
	require.True(b)
}

func TestReadString(t *testing.T) {
	require := require.New(t)

	s, err := From([]byte{0x00, 0x05, 'P', 'a', 'u', 'l', 'a'}).ReadString()
	require.Nil(err)
	require.Equal("Paula", s)

	b := From([]byte{0x00, 0x06, 'P', 'a', 'u', 'l', 'a'})
	_, err = b.ReadString()
	require.Equal(ErrInsufficientByte, err)
	require.Equal(0, b.Offset())

	b = From([]byte{0x00, 0x02, 0xc3, 0x28})
	_, err = b.ReadString()
	require.Equal(ErrUtf8, err)
	require.Equal(0, b.Offset())
}

func TestReadTime(t *testing.T) {
	require := require.New(t)

	ts, err := From([]byte{0, 0, 0, 0, 0, 0, 0x03, 0xe8}).ReadTime()
	require.Nil(err)
	require.True(ts.Equal(time.Unix(1, 0)))

	b := From([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	_, err = b.ReadTime()
	require.Equal(ErrInvalidTime, err)
	require.Equal(0, b.Offset())
}

func TestReadAddr(t *testing.T) {
	require := require.New(t)

	var addr net.UDPAddr
	b := From([]byte{4, 127, 0, 0, 1, 0x1f, 0x90})
	require.Nil(b.ReadAddr(&addr))
	require.Equal("127.0.0.1:8080", addr.String())
	require.Equal(0, b.Remaining())

	v6 := []byte{6, 0x17, 0x00, 0x90, 0x1f, 0, 0, 0, 0}
	v6 = append(v6, net.ParseIP("::1")...)
	v6 = append(v6, 0, 0, 0, 0)
	b = From(v6)
	require.Nil(b.ReadAddr(&addr))
	require.True(addr.IP.Equal(net.ParseIP("::1")))
	require.Equal(8080, addr.Port)
	require.Equal(0, b.Remaining())

	b = From([]byte{5, 1, 2, 3, 4})
	require.Equal(ErrUnsupportedIPVersion, b.ReadAddr(&addr))
	require.Equal(0, b.Offset())

	b = From(v6[:20])
	require.Equal(ErrInsufficientByte, b.ReadAddr(&addr))
	require.Equal(0, b.Offset())
}
