package cmd

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/KAIYOHUGO/rodust/internal/capture"
	"github.com/KAIYOHUGO/rodust/internal/config"
	"github.com/KAIYOHUGO/rodust/raknet"
)

var inspectPort int

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.pcap>",
	Short: "Decode the RakNet traffic of a pcap capture",
	Long: `Read the UDP datagrams of a pcap capture and decode those sent to or from the server
port. Datagrams to the port are treated as client traffic, datagrams from it as server traffic.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}

		return runInspect(args[0], inspectPort, cfg, logger)
	},
}

func init() {
	inspectCmd.Flags().IntVarP(&inspectPort, "port", "p", 19132, "UDP port of the server")
}

func runInspect(path string, port int, cfg *config.Config, logger *logrus.Logger) error {
	r, err := capture.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	inspector := raknet.NewLogInspector(logger,
		rate.Limit(cfg.Inspect.FailureLogRate), cfg.Inspect.FailureLogBurst)
	opts := []raknet.ReassemblerOption{
		raknet.WithMaxBuffers(cfg.Reassembly.MaxBuffers),
		raknet.WithMaxFragments(cfg.Reassembly.MaxFragments),
	}

	streams := map[raknet.Direction]*raknet.Stream{
		raknet.ClientToServer: raknet.NewStream(raknet.ClientToServer, inspector, opts...),
		raknet.ServerToClient: raknet.NewStream(raknet.ServerToClient, inspector, opts...),
	}

	ignored := 0
	for {
		d, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		var dir raknet.Direction
		switch port {
		case d.Dst.Port:
			dir = raknet.ClientToServer
		case d.Src.Port:
			dir = raknet.ServerToClient
		default:
			ignored += 1
			continue
		}

		if logger.IsLevelEnabled(logrus.TraceLevel) {
			logger.WithFields(logrus.Fields{
				"captured": d.Timestamp,
				"src":      d.Src.String(),
				"dst":      d.Dst.String(),
				"size":     len(d.Payload),
			}).Trace("UDP datagram")
		}

		// Decode failures are reported through the inspector.
		_, _ = streams[dir].Observe(d.Payload)
	}

	logger.WithFields(logrus.Fields{
		"skipped": r.Skipped(),
		"ignored": ignored,
	}).Info("Capture read")

	for _, dir := range []raknet.Direction{raknet.ClientToServer, raknet.ServerToClient} {
		logStats(logger, dir, streams[dir])
	}

	return nil
}
