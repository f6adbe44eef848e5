package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/KAIYOHUGO/rodust/internal/config"
	"github.com/KAIYOHUGO/rodust/raknet"
)

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Relay a Bedrock client to a server and log the decoded traffic",
	Long: `Listen for a Bedrock client and forward its datagrams to the upstream server.

Every datagram is forwarded unchanged. Decoded messages are logged at debug and trace
level; datagrams that fail to decode are still forwarded.`,
	Example: `  rodust relay --upstream play.example.com:19132
  RODUST_RELAY_UPSTREAM=10.0.0.5:19132 rodust relay --listen :19133 -c rodust.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		cfg, logger, err := setup(
			config.FlagBinding{Key: "relay.listen", Flag: flags.Lookup("listen")},
			config.FlagBinding{Key: "relay.upstream", Flag: flags.Lookup("upstream")},
			config.FlagBinding{Key: "relay.drop_invalid_magic", Flag: flags.Lookup("drop-invalid-magic")},
		)
		if err != nil {
			return err
		}

		if err := cfg.ValidateRelay(); err != nil {
			return err
		}

		return runRelay(cmd.Context(), cfg, logger)
	},
}

func init() {
	relayCmd.Flags().StringP("listen", "l", ":19132", "address the client connects to")
	relayCmd.Flags().StringP("upstream", "u", "", "address of the server")
	relayCmd.Flags().Bool("drop-invalid-magic", false, "drop unconnected messages without the RakNet magic")
}

func runRelay(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	inspector := raknet.NewLogInspector(logger,
		rate.Limit(cfg.Inspect.FailureLogRate), cfg.Inspect.FailureLogBurst)

	relay, err := raknet.NewRelay(raknet.RelayConfig{
		Listen:           cfg.Relay.Listen,
		Upstream:         cfg.Relay.Upstream,
		BufferSize:       cfg.Relay.BufferSize,
		DropInvalidMagic: cfg.Relay.DropInvalidMagic,
		MaxSplitBuffers:  cfg.Reassembly.MaxBuffers,
		MaxFragments:     cfg.Reassembly.MaxFragments,
		Logger:           logger,
		Inspector:        inspector,
	})
	if err != nil {
		return err
	}

	err = relay.Run(ctx)

	for _, dir := range []raknet.Direction{raknet.ClientToServer, raknet.ServerToClient} {
		logStats(logger, dir, relay.Stream(dir))
	}

	return err
}

func logStats(logger logrus.FieldLogger, dir raknet.Direction, s *raknet.Stream) {
	stats := s.Stats()
	logger.WithFields(logrus.Fields{
		"direction":   dir.String(),
		"datagrams":   stats.Datagrams,
		"failures":    stats.Failures,
		"duplicates":  stats.Duplicates,
		"missing":     len(s.Missing()),
		"reassembled": stats.Reassembled,
		"evicted":     stats.Evicted,
		"dropped":     stats.Dropped,
	}).Info("Stream summary")
}
