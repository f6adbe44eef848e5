// Package cmd implements the rodust command line using cobra.
package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/KAIYOHUGO/rodust/internal/config"
	"github.com/KAIYOHUGO/rodust/internal/log"
)

var configFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rodust",
	Short: "rodust - RakNet decoding relay for Minecraft Bedrock",
	Long: `rodust sits between a Minecraft Bedrock client and a server and forwards every
RakNet datagram unchanged while decoding it on the side.

It can also decode RakNet traffic out of a pcap capture or a single datagram given in hex.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"config file path (optional)")

	rootCmd.AddCommand(relayCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(decodeCmd)
}

// Loads the configuration and builds the logger.
func setup(flags ...config.FlagBinding) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(configFile, flags...)
	if err != nil {
		return nil, nil, err
	}

	logger, err := log.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}

	return cfg, logger, nil
}
