package raknet

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/KAIYOHUGO/rodust/internal/protocol"
)

type relayFixture struct {
	relay    *Relay
	upstream *net.UDPConn
	client   *net.UDPConn
	rec      *recorder
	cancel   context.CancelFunc
	done     chan error
}

func startRelay(t *testing.T, dropInvalidMagic bool) *relayFixture {
	require := require.New(t)

	upstream, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.Nil(err)

	logger, _ := test.NewNullLogger()
	logger.SetLevel(logrus.TraceLevel)

	rec := &recorder{}
	relay, err := NewRelay(RelayConfig{
		Listen:           "127.0.0.1:0",
		Upstream:         upstream.LocalAddr().String(),
		DropInvalidMagic: dropInvalidMagic,
		Logger:           logger,
		Inspector:        rec,
	})
	require.Nil(err)

	client, err := net.DialUDP("udp", nil, relay.LocalAddr())
	require.Nil(err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- relay.Run(ctx) }()

	f := &relayFixture{
		relay:    relay,
		upstream: upstream,
		client:   client,
		rec:      rec,
		cancel:   cancel,
		done:     done,
	}

	t.Cleanup(func() {
		f.cancel()
		<-f.done
		upstream.Close()
		client.Close()
	})

	return f
}

func readWithin(conn *net.UDPConn, d time.Duration) ([]byte, *net.UDPAddr, error) {
	conn.SetReadDeadline(time.Now().Add(d))
	b := make([]byte, protocol.DEFAULT_BUFFER_SIZE)
	n, addr, err := conn.ReadFromUDP(b)
	if err != nil {
		return nil, nil, err
	}
	return b[:n], addr, nil
}

func TestRelayForwardsBothWays(t *testing.T) {
	require := require.New(t)

	f := startRelay(t, false)

	ping := unconnectedPing(protocol.UNCONNECTED_MAGIC, 7)
	_, err := f.client.Write(ping)
	require.Nil(err)

	got, relayAddr, err := readWithin(f.upstream, 2*time.Second)
	require.Nil(err)
	require.Equal(ping, got)

	require.Equal(f.client.LocalAddr().String(), f.relay.Peer().String())

	reply := frameSet(0, 0, 0, 0, []byte{0x15})
	_, err = f.upstream.WriteToUDP(reply, relayAddr)
	require.Nil(err)

	got, _, err = readWithin(f.client, 2*time.Second)
	require.Nil(err)
	require.Equal(reply, got)

	// Garbage is forwarded as is.
	garbage := []byte{0x42, 0x42}
	_, err = f.client.Write(garbage)
	require.Nil(err)

	got, _, err = readWithin(f.upstream, 2*time.Second)
	require.Nil(err)
	require.Equal(garbage, got)

	datagrams, connected, failures := f.rec.snapshot()
	require.Equal([]string{"client->server UnconnectedPing", "server->client FrameSet"}, datagrams)
	require.Equal([]string{"server->client Disconnect"}, connected)
	require.Equal([]error{ErrUnknownPacket}, failures)

	require.Equal(uint64(2), f.relay.Stream(ClientToServer).Stats().Datagrams)
	require.Equal(uint64(1), f.relay.Stream(ServerToClient).Stats().Datagrams)
}

func TestRelayDropsInvalidMagic(t *testing.T) {
	require := require.New(t)

	f := startRelay(t, true)

	foreign := unconnectedPing(protocol.Magic{1, 2, 3}, 7)
	_, err := f.client.Write(foreign)
	require.Nil(err)

	valid := unconnectedPing(protocol.UNCONNECTED_MAGIC, 8)
	_, err = f.client.Write(valid)
	require.Nil(err)

	got, _, err := readWithin(f.upstream, 2*time.Second)
	require.Nil(err)
	require.Equal(valid, got)
}

func TestRelayStopsOnCancel(t *testing.T) {
	require := require.New(t)

	f := startRelay(t, false)
	f.cancel()

	select {
	case err := <-f.done:
		require.Nil(err)
		f.done <- err
	case <-time.After(2 * time.Second):
		t.Fatal("relay did not stop")
	}
}
