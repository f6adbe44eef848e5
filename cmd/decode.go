package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/KAIYOHUGO/rodust/internal/message"
	"github.com/KAIYOHUGO/rodust/raknet"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <hex>",
	Short: "Decode a single RakNet datagram given in hex",
	Example: `  rodust decode 0100000000000003e800ffff00fefefefefdfdfdfd12345678000000000000002a
  rodust decode "84 00 00 00 00 00 08 15"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDecode(cmd.OutOrStdout(), strings.Join(args, ""))
	},
}

func runDecode(out io.Writer, input string) error {
	input = strings.NewReplacer(" ", "", ":", "", "\n", "").Replace(input)
	input = strings.TrimPrefix(input, "0x")

	b, err := hex.DecodeString(input)
	if err != nil {
		return errors.Wrap(err, "invalid hex")
	}

	msg, err := raknet.Decode(b)
	if err != nil {
		return errors.Wrap(err, "failed to decode datagram")
	}

	fmt.Fprintf(out, "%s %+v\n", raknet.MessageName(msg), msg)

	set, ok := msg.(*message.FrameSet)
	if !ok || set.Frame.Fragment != nil {
		return nil
	}

	connected, err := raknet.DecodeConnected(set.Frame.Body)
	if err != nil {
		fmt.Fprintf(out, "body: %v\n", err)
		return nil
	}

	fmt.Fprintf(out, "body: %s %+v\n", raknet.MessageName(connected), connected)
	return nil
}
