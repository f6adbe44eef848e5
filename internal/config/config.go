// Package config loads the rodust configuration using viper.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. RODUST_RELAY_UPSTREAM.
const EnvPrefix = "RODUST"

// Config is the root of the configuration file.
type Config struct {
	Relay      RelayConfig      `mapstructure:"relay"`
	Reassembly ReassemblyConfig `mapstructure:"reassembly"`
	Inspect    InspectConfig    `mapstructure:"inspect"`
	Log        LogConfig        `mapstructure:"log"`
}

// RelayConfig contains the sockets of the relay.
type RelayConfig struct {
	Listen           string `mapstructure:"listen"`
	Upstream         string `mapstructure:"upstream"`
	BufferSize       int    `mapstructure:"buffer_size"`
	DropInvalidMagic bool   `mapstructure:"drop_invalid_magic"`
}

// ReassemblyConfig bounds the fragment reassembly of each direction.
type ReassemblyConfig struct {
	MaxBuffers   int    `mapstructure:"max_buffers"`
	MaxFragments uint32 `mapstructure:"max_fragments"`
}

// InspectConfig controls how decoded traffic is reported.
type InspectConfig struct {
	FailureLogRate  float64 `mapstructure:"failure_log_rate"` // per second
	FailureLogBurst int     `mapstructure:"failure_log_burst"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string           `mapstructure:"level"`  // trace / debug / info / warn / error
	Format string           `mapstructure:"format"` // json / text
	File   FileOutputConfig `mapstructure:"file"`
}

// FileOutputConfig configures file log output.
type FileOutputConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	Path     string         `mapstructure:"path"`
	Rotation RotationConfig `mapstructure:"rotation"`
}

// RotationConfig configures log file rotation.
type RotationConfig struct {
	MaxSizeMB  int  `mapstructure:"max_size_mb"`
	MaxAgeDays int  `mapstructure:"max_age_days"`
	MaxBackups int  `mapstructure:"max_backups"`
	Compress   bool `mapstructure:"compress"`
}

// FlagBinding overrides a configuration key with a command line flag when the flag is set.
type FlagBinding struct {
	Key  string
	Flag *pflag.Flag
}

// Load reads the configuration. The file is optional: with an empty path only the defaults,
// the environment and the flags are used. Flags take precedence over the environment, which
// takes precedence over the file.
func Load(path string, flags ...FlagBinding) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	for _, b := range flags {
		if b.Flag == nil {
			continue
		}
		if err := v.BindPFlag(b.Key, b.Flag); err != nil {
			return nil, errors.Wrapf(err, "failed to bind flag %s", b.Flag.Name)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("relay.listen", ":19132")
	v.SetDefault("relay.upstream", "")
	v.SetDefault("relay.buffer_size", 4000)
	v.SetDefault("relay.drop_invalid_magic", false)

	v.SetDefault("reassembly.max_buffers", 256)
	v.SetDefault("reassembly.max_fragments", 250)

	v.SetDefault("inspect.failure_log_rate", 10)
	v.SetDefault("inspect.failure_log_burst", 20)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file.enabled", false)
	v.SetDefault("log.file.path", "rodust.log")
	v.SetDefault("log.file.rotation.max_size_mb", 100)
	v.SetDefault("log.file.rotation.max_age_days", 30)
	v.SetDefault("log.file.rotation.max_backups", 5)
	v.SetDefault("log.file.rotation.compress", true)
}

// Validate checks the settings every command needs.
func (cfg *Config) Validate() error {
	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(cfg.Log.Level)] {
		return errors.Errorf("invalid log level: %s (must be trace/debug/info/warn/error)", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" && cfg.Log.Format != "text" {
		return errors.Errorf("invalid log format: %s (must be json/text)", cfg.Log.Format)
	}
	if cfg.Log.File.Enabled && cfg.Log.File.Path == "" {
		return errors.New("log.file.path is required when log.file.enabled=true")
	}

	if cfg.Relay.BufferSize <= 0 {
		return errors.Errorf("invalid relay.buffer_size: %d", cfg.Relay.BufferSize)
	}
	if cfg.Reassembly.MaxBuffers <= 0 {
		return errors.Errorf("invalid reassembly.max_buffers: %d", cfg.Reassembly.MaxBuffers)
	}
	if cfg.Reassembly.MaxFragments == 0 {
		return errors.New("invalid reassembly.max_fragments: 0")
	}
	if cfg.Inspect.FailureLogRate < 0 || cfg.Inspect.FailureLogBurst < 0 {
		return errors.New("inspect.failure_log_rate and inspect.failure_log_burst must not be negative")
	}

	return nil
}

// ValidateRelay checks the settings the relay needs on top of Validate.
func (cfg *Config) ValidateRelay() error {
	if cfg.Relay.Listen == "" {
		return errors.New("relay.listen is required")
	}
	if cfg.Relay.Upstream == "" {
		return errors.New("relay.upstream is required")
	}
	return nil
}
