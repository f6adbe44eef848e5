package message

import "github.com/KAIYOHUGO/rodust/internal/buffer"

// SecurityState tells whether a peer asked for the secure handshake. The relay only records
// it; encrypted connections are not decrypted.
type SecurityState uint8

const (
	SecurityRaw SecurityState = iota
	SecurityEncrypt
)

func (s SecurityState) String() string {
	if s == SecurityEncrypt {
		return "Encrypt"
	}
	return "Raw"
}

// Reads a security state encoded as a boolean.
func readSecurity(buf *buffer.Buffer) (SecurityState, error) {
	secure, err := buf.ReadBool()
	if err != nil || !secure {
		return SecurityRaw, err
	}
	return SecurityEncrypt, nil
}
