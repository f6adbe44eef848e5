package raknet

import (
	"context"
	"net"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/KAIYOHUGO/rodust/internal/buffer"
	"github.com/KAIYOHUGO/rodust/internal/message"
	"github.com/KAIYOHUGO/rodust/internal/protocol"
)

// RelayConfig configures a Relay.
type RelayConfig struct {
	// Listen is the address the client connects to.
	Listen string
	// Upstream is the address of the real server.
	Upstream string
	// BufferSize is the size of the buffer each direction reads datagrams into.
	BufferSize int
	// DropInvalidMagic drops unconnected messages whose magic is not the RakNet one instead
	// of forwarding them.
	DropInvalidMagic bool
	// MaxSplitBuffers bounds the incomplete fragmented messages kept per direction.
	MaxSplitBuffers int
	// MaxFragments bounds the number of fragments of one message.
	MaxFragments uint32

	Logger    logrus.FieldLogger
	Inspector Inspector
}

// Relay sits between a RakNet client and a server. Every datagram is forwarded as it was
// received and decoded on the side for inspection. The relay serves one client at a time:
// datagrams from the server go to the address the client last sent from.
type Relay struct {
	log logrus.FieldLogger

	client *net.UDPConn
	server *net.UDPConn

	bufferSize       int
	dropInvalidMagic bool

	mu   sync.RWMutex
	peer *net.UDPAddr

	streams [2]*Stream
}

// NewRelay binds the listening socket and connects to the upstream server.
func NewRelay(cfg RelayConfig) (*Relay, error) {
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.Inspector == nil {
		cfg.Inspector = NewLogInspector(cfg.Logger, 10, 20)
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = protocol.DEFAULT_BUFFER_SIZE
	}

	listen, err := net.ResolveUDPAddr("udp", cfg.Listen)
	if err != nil {
		return nil, errors.Wrap(err, "resolve listen address")
	}

	upstream, err := net.ResolveUDPAddr("udp", cfg.Upstream)
	if err != nil {
		return nil, errors.Wrap(err, "resolve upstream address")
	}

	client, err := net.ListenUDP("udp", listen)
	if err != nil {
		return nil, errors.Wrap(err, "listen")
	}

	server, err := net.DialUDP("udp", nil, upstream)
	if err != nil {
		client.Close()
		return nil, errors.Wrap(err, "dial upstream")
	}

	opts := []ReassemblerOption{
		WithMaxBuffers(cfg.MaxSplitBuffers),
		WithMaxFragments(cfg.MaxFragments),
	}

	return &Relay{
		log:              cfg.Logger,
		client:           client,
		server:           server,
		bufferSize:       cfg.BufferSize,
		dropInvalidMagic: cfg.DropInvalidMagic,
		streams: [2]*Stream{
			ClientToServer: NewStream(ClientToServer, cfg.Inspector, opts...),
			ServerToClient: NewStream(ServerToClient, cfg.Inspector, opts...),
		},
	}, nil
}

// LocalAddr returns the address clients connect to.
func (r *Relay) LocalAddr() *net.UDPAddr {
	return r.client.LocalAddr().(*net.UDPAddr)
}

// Peer returns the address of the client last seen, or nil if no client has sent anything yet.
func (r *Relay) Peer() *net.UDPAddr {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.peer
}

// Stream returns the inspection state of one direction.
func (r *Relay) Stream(dir Direction) *Stream {
	return r.streams[dir]
}

// Run forwards datagrams until the context is cancelled or one of the sockets is closed. Both
// sockets are closed when Run returns. Failed reads and writes are logged and skipped. A
// cancelled context is not an error.
func (r *Relay) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r.log.WithFields(logrus.Fields{
		"listen":   r.client.LocalAddr().String(),
		"upstream": r.server.RemoteAddr().String(),
	}).Info("Relay started")

	errc := make(chan error, 2)
	go func() { errc <- r.forwardClient() }()
	go func() { errc <- r.forwardServer() }()

	var err error
	select {
	case <-ctx.Done():
	case err = <-errc:
	}

	r.client.Close()
	r.server.Close()

	// Wait for the other direction to notice the closed sockets.
	if err == nil {
		<-errc
	}
	<-errc

	if err != nil {
		return err
	}

	r.log.Info("Relay stopped")
	return nil
}

// Reads datagrams from the client and forwards them to the server.
func (r *Relay) forwardClient() error {
	buf := buffer.New(r.bufferSize)

	for {
		buf.Reset()

		n, addr, err := r.client.ReadFromUDP(buf.Slice())
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return errors.Wrap(err, "read from client")
			}
			r.log.WithError(err).Warn("Client socket read")
			continue
		}

		if err := buf.Resize(n); err != nil {
			return errors.WithStack(err)
		}

		r.setPeer(addr)

		data := buf.Bytes()
		if !r.inspect(ClientToServer, data) {
			continue
		}

		if _, err := r.server.Write(data); err != nil {
			r.log.WithError(err).Warn("Server socket write")
		}
	}
}

// Reads datagrams from the server and forwards them to the last client address.
func (r *Relay) forwardServer() error {
	buf := buffer.New(r.bufferSize)

	for {
		buf.Reset()

		n, err := r.server.Read(buf.Slice())
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return errors.Wrap(err, "read from server")
			}
			// A connected socket reports ICMP errors of earlier writes here.
			r.log.WithError(err).Warn("Server socket read")
			continue
		}

		if err := buf.Resize(n); err != nil {
			return errors.WithStack(err)
		}

		data := buf.Bytes()
		if !r.inspect(ServerToClient, data) {
			continue
		}

		peer := r.Peer()
		if peer == nil {
			r.log.WithField("size", n).Debug("Dropping datagram from server, no client yet")
			continue
		}

		if _, err := r.client.WriteToUDP(data, peer); err != nil {
			r.log.WithError(err).Warn("Client socket write")
		}
	}
}

func (r *Relay) setPeer(addr *net.UDPAddr) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.peer == nil || r.peer.Port != addr.Port || !r.peer.IP.Equal(addr.IP) {
		r.log.WithField("client", addr.String()).Info("Client address changed")
	}
	r.peer = addr
}

// Decodes a datagram and tells whether it should be forwarded.
func (r *Relay) inspect(dir Direction, data []byte) bool {
	msg, err := r.streams[dir].Observe(data)
	if err != nil || !r.dropInvalidMagic {
		return true
	}

	if magic, ok := magicOf(msg); ok && magic != protocol.UNCONNECTED_MAGIC {
		r.log.WithFields(logrus.Fields{
			"direction": dir.String(),
			"message":   MessageName(msg),
		}).Debug("Dropping message with invalid magic")
		return false
	}

	return true
}

// Returns the magic of the unconnected messages.
func magicOf(msg message.Message) (protocol.Magic, bool) {
	switch pk := msg.(type) {
	case *message.UnconnectedPing:
		return pk.Magic, true
	case *message.UnconnectedPong:
		return pk.Magic, true
	case *message.OpenConnectionRequest1:
		return pk.Magic, true
	case *message.OpenConnectionReply1:
		return pk.Magic, true
	case *message.OpenConnectionRequest2:
		return pk.Magic, true
	case *message.OpenConnectionReply2:
		return pk.Magic, true
	case *message.IncompatibleProtocolVersion:
		return pk.Magic, true
	}
	return protocol.Magic{}, false
}
