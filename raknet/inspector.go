package raknet

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/KAIYOHUGO/rodust/internal/message"
)

// Inspector receives the messages decoded by a Stream. Messages may borrow the datagram they
// were decoded from and must not be kept after the call returns.
type Inspector interface {
	// Datagram is called for every datagram that decoded.
	Datagram(dir Direction, msg message.Message)
	// Connected is called for every message carried in a frame, once reassembled.
	Connected(dir Direction, msg message.Message)
	// Failure is called for every datagram or frame body that failed to decode.
	Failure(dir Direction, b []byte, err error)
}

// The number of bytes of a failed datagram that are dumped in the log.
const failureDumpSize = 32

// LogInspector logs decoded messages with logrus. Failures are logged at debug level and
// rate limited, a flood of foreign traffic cannot fill the log.
type LogInspector struct {
	log     logrus.FieldLogger
	limiter *rate.Limiter
}

func NewLogInspector(log logrus.FieldLogger, limit rate.Limit, burst int) *LogInspector {
	return &LogInspector{
		log:     log,
		limiter: rate.NewLimiter(limit, burst),
	}
}

func (i *LogInspector) Datagram(dir Direction, msg message.Message) {
	entry := i.log.WithFields(messageFields(dir, msg))

	switch msg.(type) {
	case *message.FrameSet, *message.Ack, *message.Nack:
		entry.Trace("Datagram")
	default:
		entry.Debug("Unconnected message")
	}
}

func (i *LogInspector) Connected(dir Direction, msg message.Message) {
	entry := i.log.WithFields(messageFields(dir, msg))

	switch msg.(type) {
	case *message.GamePacket, *message.ConnectedPing, *message.ConnectedPong:
		entry.Trace("Connected message")
	default:
		entry.Debug("Connected message")
	}
}

func (i *LogInspector) Failure(dir Direction, b []byte, err error) {
	if !i.limiter.Allow() {
		return
	}

	dump := b
	if len(dump) > failureDumpSize {
		dump = dump[:failureDumpSize]
	}

	i.log.WithFields(logrus.Fields{
		"direction": dir.String(),
		"size":      len(b),
		"head":      hex.EncodeToString(dump),
	}).WithError(err).Debug("Failed to decode")
}

// MessageName returns the type name of a message, e.g. UnconnectedPing.
func MessageName(msg message.Message) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", msg), "*message.")
}

func messageFields(dir Direction, msg message.Message) logrus.Fields {
	fields := logrus.Fields{
		"direction": dir.String(),
		"id":        fmt.Sprintf("0x%02x", msg.ID()),
		"message":   MessageName(msg),
	}

	switch pk := msg.(type) {
	case *message.UnconnectedPing:
		fields["guid"] = pk.ClientGUID
	case *message.UnconnectedPong:
		fields["guid"] = pk.ServerGUID
		fields["server_id"] = pk.ServerID
	case *message.OpenConnectionRequest1:
		fields["protocol"] = pk.Protocol
		fields["mtu"] = pk.DiscoveringMTU()
	case *message.OpenConnectionReply1:
		fields["guid"] = pk.ServerGUID
		fields["security"] = pk.Security.String()
		fields["mtu"] = pk.ServerPreferredMTUSize
	case *message.OpenConnectionRequest2:
		fields["guid"] = pk.ClientGUID
		fields["server"] = pk.ServerAddress.String()
		fields["mtu"] = pk.ClientPreferredMTUSize
	case *message.OpenConnectionReply2:
		fields["guid"] = pk.ServerGUID
		fields["client"] = pk.ClientAddress.String()
		fields["mtu"] = pk.MTUSize
		fields["security"] = pk.Security.String()
	case *message.IncompatibleProtocolVersion:
		fields["protocol"] = pk.ServerProtocol
	case *message.FrameSet:
		fields["sequence"] = pk.Sequence
		fields["reliability"] = pk.Frame.Flag.Reliability.String()
		fields["size"] = len(pk.Frame.Body)
		if f := pk.Frame.Fragment; f != nil {
			fields["fragment"] = fmt.Sprintf("%d:%d/%d", f.CompoundID, f.Index, f.CompoundSize)
		}
	case *message.Ack:
		fields["records"] = len(pk.Records)
		fields["count"] = pk.Count()
	case *message.Nack:
		fields["records"] = len(pk.Records)
		fields["count"] = pk.Count()
	case *message.ConnectionRequest:
		fields["guid"] = pk.ClientGUID
		fields["security"] = pk.Security.String()
	case *message.ConnectionRequestAccepted:
		fields["client"] = pk.ClientAddress.String()
	case *message.NewIncomingConnection:
		fields["server"] = pk.ServerAddress.String()
	case *message.GamePacket:
		fields["size"] = len(pk.Data)
	}

	return fields
}
