package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunDecode(t *testing.T) {
	require := require.New(t)

	out := &bytes.Buffer{}
	ping := "01 00000000000003e8 00ffff00fefefefefdfdfdfd12345678 000000000000002a"
	require.Nil(runDecode(out, ping))
	require.Contains(out.String(), "UnconnectedPing")
	require.Contains(out.String(), "ClientGUID:42")

	// An unreliable frame carrying a disconnect notification.
	out.Reset()
	require.Nil(runDecode(out, "0x84 000000 00 0008 15"))
	require.Contains(out.String(), "FrameSet")
	require.Contains(out.String(), "body: Disconnect")

	out.Reset()
	require.Nil(runDecode(out, "84 000000 00 0008 42"))
	require.Contains(out.String(), "body: message: unknown packet id")

	require.Error(runDecode(out, "zz"))
	require.Error(runDecode(out, "90"))
}

func TestDecodeCommand(t *testing.T) {
	require := require.New(t)

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"decode", "c0", "0001", "01", "050000"})
	defer rootCmd.SetArgs(nil)

	require.Nil(rootCmd.Execute())
	require.Contains(out.String(), "Ack")
}
