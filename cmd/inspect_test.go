package cmd

import (
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/KAIYOHUGO/rodust/internal/config"
	"github.com/KAIYOHUGO/rodust/raknet"
)

func writeCapture(t *testing.T, payloads map[uint16][]byte, order []uint16) string {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "session.pcap")
	f, err := os.Create(path)
	require.Nil(err)
	defer f.Close()

	w := pcapgo.NewWriter(f)
	require.Nil(w.WriteFileHeader(65536, layers.LinkTypeEthernet))

	for i, sport := range order {
		dport := sport + 1
		switch sport {
		case 50000:
			dport = 19132
		case 19132:
			dport = 50000
		}

		eth := &layers.Ethernet{
			SrcMAC:       net.HardwareAddr{0, 1, 2, 3, 4, 5},
			DstMAC:       net.HardwareAddr{0, 1, 2, 3, 4, 6},
			EthernetType: layers.EthernetTypeIPv4,
		}
		ip := &layers.IPv4{
			Version:  4,
			TTL:      64,
			Protocol: layers.IPProtocolUDP,
			SrcIP:    net.IPv4(10, 0, 0, 1).To4(),
			DstIP:    net.IPv4(10, 0, 0, 2).To4(),
		}
		udp := &layers.UDP{SrcPort: layers.UDPPort(sport), DstPort: layers.UDPPort(dport)}
		require.Nil(udp.SetNetworkLayerForChecksum(ip))

		buf := gopacket.NewSerializeBuffer()
		opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
		require.Nil(gopacket.SerializeLayers(buf, opts, eth, ip, udp, gopacket.Payload(payloads[sport])))

		data := buf.Bytes()
		ci := gopacket.CaptureInfo{
			Timestamp:     time.Unix(1700000000, int64(i)*int64(time.Millisecond)),
			CaptureLength: len(data),
			Length:        len(data),
		}
		require.Nil(w.WritePacket(ci, data))
	}

	return path
}

func TestRunInspect(t *testing.T) {
	require := require.New(t)

	ping := []byte{
		0x01,
		0, 0, 0, 0, 0, 0, 0x03, 0xe8,
		0x00, 0xff, 0xff, 0x00, 0xfe, 0xfe, 0xfe, 0xfe, 0xfd, 0xfd, 0xfd, 0xfd, 0x12, 0x34, 0x56, 0x78,
		0, 0, 0, 0, 0, 0, 0, 0x2a,
	}
	disconnect := []byte{0x84, 0, 0, 0, 0x00, 0x00, 0x08, 0x15}

	path := writeCapture(t, map[uint16][]byte{
		50000: ping,
		19132: disconnect,
		53:    {0xde, 0xad},
	}, []uint16{50000, 19132, 53})

	cfg := &config.Config{
		Reassembly: config.ReassemblyConfig{MaxBuffers: 8, MaxFragments: 16},
		Inspect:    config.InspectConfig{FailureLogRate: 10, FailureLogBurst: 10},
	}

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	require.Nil(runInspect(path, 19132, cfg, logger))

	summaries := map[string]logrus.Fields{}
	for _, e := range hook.AllEntries() {
		if e.Message == "Stream summary" {
			summaries[e.Data["direction"].(string)] = e.Data
		}
	}

	require.Len(summaries, 2)
	require.Equal(uint64(1), summaries[raknet.ClientToServer.String()]["datagrams"])
	require.Equal(uint64(1), summaries[raknet.ServerToClient.String()]["datagrams"])
	require.Equal(uint64(0), summaries[raknet.ServerToClient.String()]["failures"])

	require.Error(runInspect(filepath.Join(t.TempDir(), "missing.pcap"), 19132, cfg, logger))
}
