package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/KAIYOHUGO/rodust/internal/config"
)

func TestNew(t *testing.T) {
	require := require.New(t)

	logger, err := New(config.LogConfig{Level: "debug", Format: "json"})
	require.Nil(err)
	require.Equal(logrus.DebugLevel, logger.Level)
	require.IsType(&logrus.JSONFormatter{}, logger.Formatter)

	_, err = New(config.LogConfig{Level: "loud", Format: "text"})
	require.Error(err)

	_, err = New(config.LogConfig{Level: "info", Format: "xml"})
	require.Error(err)

	_, err = New(config.LogConfig{Level: "info", Format: "text", File: config.FileOutputConfig{Enabled: true}})
	require.Error(err)
}

func TestNewWritesFile(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "rodust.log")
	logger, err := New(config.LogConfig{
		Level:  "info",
		Format: "text",
		File: config.FileOutputConfig{
			Enabled:  true,
			Path:     path,
			Rotation: config.RotationConfig{MaxSizeMB: 1, MaxBackups: 1},
		},
	})
	require.Nil(err)

	logger.WithField("client", "127.0.0.1:1").Info("Client address changed")

	content, err := os.ReadFile(path)
	require.Nil(err)
	require.Contains(string(content), "Client address changed")
	require.Contains(string(content), "client=")
}
