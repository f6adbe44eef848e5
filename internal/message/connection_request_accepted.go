package message

import (
	"encoding/binary"
	"net"

	"github.com/KAIYOHUGO/rodust/internal/buffer"
)

// This is the maximum number of system addresses read from a connection handshake message.
// RakNet sends 10 of them and MCPE sends 20.
const maxSystemAddresses = 20

// The two timestamps that close the connection handshake messages take this many bytes.
const handshakeTimestampsSize = 8 + 8

// ConnectionRequestAccepted is sent by the server after accepting the connection request sent
// by the client.
type ConnectionRequestAccepted struct {
	ClientAddress     net.UDPAddr
	SystemIndex       int16
	SystemAddresses   []net.UDPAddr
	RequestTimestamp  int64
	AcceptedTimestamp int64
}

func (pk *ConnectionRequestAccepted) ID() ID {
	return IDConnectionRequestAccepted
}

// Reads the connection request accepted message from the buffer and returns an error if the
// operation has failed.
func (pk *ConnectionRequestAccepted) Read(buf *buffer.Buffer) (err error) {
	if err = buf.ReadAddr(&pk.ClientAddress); err != nil {
		return
	}

	if pk.SystemIndex, err = buf.ReadInt16(binary.BigEndian); err != nil {
		return
	}

	if pk.SystemAddresses, err = readSystemAddresses(buf); err != nil {
		return
	}

	if pk.RequestTimestamp, err = buf.ReadInt64(binary.BigEndian); err != nil {
		return
	}

	if pk.AcceptedTimestamp, err = buf.ReadInt64(binary.BigEndian); err != nil {
		return
	}

	return
}

// Reads the list of system addresses that precedes the handshake timestamps. The number of
// addresses is not written, so addresses are read until only the timestamps are left.
func readSystemAddresses(buf *buffer.Buffer) ([]net.UDPAddr, error) {
	var addrs []net.UDPAddr

	for buf.Remaining() > handshakeTimestampsSize && len(addrs) < maxSystemAddresses {
		var addr net.UDPAddr
		if err := buf.ReadAddr(&addr); err != nil {
			return nil, err
		}
		addrs = append(addrs, addr)
	}

	return addrs, nil
}
