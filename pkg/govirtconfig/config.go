// Package govirtconfig loads client configuration from environment
// variables and an optional YAML file, the way the wider example corpus
// configures its servers: viper for precedence and env binding, struct
// tags plus go-playground/validator for the actual validation pass.
package govirtconfig

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Config is the handful of fields a connection actually needs, as opposed
// to a server's whole-process configuration: where to find the socket if
// the URI itself doesn't say, how long to wait to dial, and how large a
// single frame is allowed to get. This package only loads and validates a
// Config: pkg/govirt.Open takes its own Options and does not read one, and
// internal/rpc and internal/transport apply their own fixed 4 MiB frame
// limit.
type Config struct {
	// SocketPath names a socket to dial in place of URI-based resolution.
	SocketPath string `mapstructure:"socket_path" yaml:"socket_path"`

	// DialTimeout bounds the initial connect to the daemon's socket.
	DialTimeout time.Duration `mapstructure:"dial_timeout" validate:"required,gt=0" yaml:"dial_timeout"`

	// MaxFrameLength is the largest single RPC frame size, in bytes.
	MaxFrameLength int `mapstructure:"max_frame_length" validate:"required,gt=0" yaml:"max_frame_length"`
}

// DefaultConfig returns the configuration used when nothing else is set.
func DefaultConfig() *Config {
	return &Config{
		DialTimeout:    5 * time.Second,
		MaxFrameLength: 4 * 1024 * 1024,
	}
}

// Load builds a Config from, in increasing precedence: defaults, an
// optional YAML file at configPath, and GOVIRT_* environment variables.
// configPath may be empty, in which case only env vars and defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	cfg := DefaultConfig()
	v.SetDefault("socket_path", cfg.SocketPath)
	v.SetDefault("dial_timeout", cfg.DialTimeout)
	v.SetDefault("max_frame_length", cfg.MaxFrameLength)

	if configPath != "" {
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config file %s: %w", configPath, err)
			}
		}
	}

	if err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.StringToTimeDurationHookFunc())); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// setupViper wires GOVIRT_* environment variable binding and, if
// configPath is set, a YAML config file source.
func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("GOVIRT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
	}
}

var structValidator = validator.New()

// Validate runs go-playground/validator's struct-tag validation over cfg.
func Validate(cfg *Config) error {
	return structValidator.Struct(cfg)
}

// RuntimeSocketDir resolves $XDG_RUNTIME_DIR for session-scope socket
// resolution, read fresh on every call rather than cached, since the
// environment a long-lived process runs in can change out from under it
// (a re-login rotates XDG_RUNTIME_DIR under systemd, for instance).
func RuntimeSocketDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir
	}
	return "/tmp"
}
