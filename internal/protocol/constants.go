package protocol

// This is the Raknet Protocol Version spoken by current MCPE clients and servers.
const PROTOCOL_VERSION byte = 11

// This specifies the maximum MTU size that a Raknet Datagram cannot exceed.
const MAX_MTU_SIZE int = 1500

// This specifies the minimum MTU size that a Raknet Datagram must have.
const MIN_MTU_SIZE int = 500

// This is the size taken by a raknet message to represent the ID in bytes
const MESSAGE_ID_SIZE int = 1

// This contains the size of the UDP Header.
// IP Header Size (20 bytes)
// UDP header size (8 bytes)
const UDP_HEADER_SIZE int = 20 + 8

// This is the size of the buffer each relay direction reads datagrams into. It is larger
// than any MTU a peer can negotiate so a datagram is never truncated by the read.
const DEFAULT_BUFFER_SIZE int = 4000

// This flag is set for all the raknet datagrams including the ACK/NACK receipts.
const FLAG_DATAGRAM uint8 = 0x80

// This flag is set for those datagrams that contain an ACK receipt.
const FLAG_ACK uint8 = 0x40

// This flag is set for those datagrams that contain a NACK receipt.
const FLAG_NACK uint8 = 0x20

// This flag is set for those frame messages that are fragmented into two or more frame messages
const FLAG_FRAGMENTED uint8 = 0x10

// FrameSet datagrams use every header from FLAG_DATAGRAM up to this value. The low nibble
// carries per-datagram flags such as needs B and AS (0x04) and continuous send (0x08).
const FRAME_SET_LAST uint8 = 0x8d

// This is the default number of incomplete fragmented messages kept per peer before the
// least recently touched one is evicted.
const MAX_SPLIT_BUFFERS int = 256

// Magic is the sequence of bytes found in every unconnected message.
type Magic = [16]byte

// UNCONNECTED_MAGIC is the magic sent by every real RakNet implementation. The decoder never
// checks it; it is used by the relay when it is configured to drop foreign traffic.
var UNCONNECTED_MAGIC = Magic{0x00, 0xff, 0xff, 0x00, 0xfe, 0xfe, 0xfe, 0xfe, 0xfd, 0xfd, 0xfd, 0xfd, 0x12, 0x34, 0x56, 0x78}

// This is the maximum number of fragments a fragmented message may be split into. Fragments
// of larger messages are ignored.
const MAX_FRAGMENT_COUNT uint32 = 250

// Datagram sequence numbers are 24 bit and wrap around to 0 after this mask.
const SEQUENCE_MASK uint32 = 1<<24 - 1
