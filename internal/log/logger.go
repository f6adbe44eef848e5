// Package log builds the logrus logger used by every command.
package log

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/KAIYOHUGO/rodust/internal/config"
)

// New creates a logger based on configuration. Output always goes to stderr and, when
// enabled, to a rotated log file.
func New(cfg config.LogConfig) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, errors.Wrap(err, "invalid log level")
	}

	writers := []io.Writer{os.Stderr}

	if cfg.File.Enabled {
		w, err := createFileWriter(cfg.File)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create file output")
		}
		writers = append(writers, w)
	}

	var formatter logrus.Formatter

	switch strings.ToLower(cfg.Format) {
	case "json":
		formatter = &logrus.JSONFormatter{}
	case "text":
		formatter = &logrus.TextFormatter{
			FullTimestamp: true,
		}
	default:
		return nil, errors.Errorf("unsupported log format: %s (must be json or text)", cfg.Format)
	}

	return &logrus.Logger{
		Out:       io.MultiWriter(writers...),
		Level:     level,
		Formatter: formatter,
		Hooks:     make(logrus.LevelHooks),
		ExitFunc:  os.Exit,
	}, nil
}

// createFileWriter creates a lumberjack file writer for log rotation.
func createFileWriter(fc config.FileOutputConfig) (io.Writer, error) {
	if fc.Path == "" {
		return nil, errors.New("file output requires 'path' field")
	}
	return &lumberjack.Logger{
		Filename:   fc.Path,
		MaxSize:    fc.Rotation.MaxSizeMB,
		MaxBackups: fc.Rotation.MaxBackups,
		MaxAge:     fc.Rotation.MaxAgeDays,
		Compress:   fc.Rotation.Compress,
	}, nil
}
