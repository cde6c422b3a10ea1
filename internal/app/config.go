package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	envHome        = "PUBIDENT_HOME"
	envLogLevel    = "PUBIDENT_LOG_LEVEL"
	envMaxIdentAge = "PUBIDENT_MAX_IDENT_AGE"
	envMetricsOut  = "PUBIDENT_METRICS_OUT"

	// ConfigFileName is looked up in the home directory when no config path
	// is given.
	ConfigFileName = "config.yaml"
)

// RateLimitConfig bounds verifications per signer.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"perSecond"`
	Burst     int     `yaml:"burst"`
}

// Config holds runtime wiring options for building the app.
type Config struct {
	Home                  string          `yaml:"home"`     // data directory, e.g. $HOME/.pubident
	LogLevel              string          `yaml:"logLevel"` // debug, info, warn or error
	MaxIdentAge           time.Duration   `yaml:"maxIdentAge"`
	AuthorizationValidity time.Duration   `yaml:"authorizationValidity"`
	VerifyRateLimit       RateLimitConfig `yaml:"verifyRateLimit"`
	MetricsOut            string          `yaml:"metricsOut"` // textfile written after each command; empty disables
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	home := ".pubident"
	if dir, err := os.UserHomeDir(); err == nil {
		home = filepath.Join(dir, ".pubident")
	}
	return Config{
		Home:                  home,
		LogLevel:              "info",
		AuthorizationValidity: 365 * 24 * time.Hour,
		VerifyRateLimit:       RateLimitConfig{PerSecond: 20, Burst: 40},
	}
}

// LoadConfig reads the YAML file at path over the defaults, then applies
// environment overrides. An empty path means home/config.yaml. A missing
// file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if v := strings.TrimSpace(os.Getenv(envHome)); v != "" {
		cfg.Home = v
	}
	if path == "" {
		path = filepath.Join(cfg.Home, ConfigFileName)
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, err
	default:
		var parsed Config
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
		Merge(&cfg, parsed)
	}

	if err := ApplyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Merge copies every field set in src over dst.
func Merge(dst *Config, src Config) {
	if src.Home != "" {
		dst.Home = src.Home
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.MaxIdentAge != 0 {
		dst.MaxIdentAge = src.MaxIdentAge
	}
	if src.AuthorizationValidity != 0 {
		dst.AuthorizationValidity = src.AuthorizationValidity
	}
	if src.VerifyRateLimit.PerSecond != 0 {
		dst.VerifyRateLimit.PerSecond = src.VerifyRateLimit.PerSecond
	}
	if src.VerifyRateLimit.Burst != 0 {
		dst.VerifyRateLimit.Burst = src.VerifyRateLimit.Burst
	}
	if src.MetricsOut != "" {
		dst.MetricsOut = src.MetricsOut
	}
}

// ApplyEnvOverrides applies PUBIDENT_* variables to cfg.
func ApplyEnvOverrides(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(envHome)); v != "" {
		cfg.Home = v
	}
	if v := strings.TrimSpace(os.Getenv(envLogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(envMaxIdentAge)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envMaxIdentAge, err)
		}
		cfg.MaxIdentAge = d
	}
	if v := strings.TrimSpace(os.Getenv(envMetricsOut)); v != "" {
		cfg.MetricsOut = v
	}
	return nil
}

// SlogLevel parses LogLevel, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// NewLogger returns a text logger writing to w at the configured level.
func NewLogger(c Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.SlogLevel()}))
}
