// Package config holds process configuration for the piprs daemons.
//
// Configuration is assembled once in main and handed to the rest of the
// program as a value; no other package reads flags, files, or the
// environment. Precedence: flags > environment > config file > defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
)

// Environment variable names, kept compatible with earlier deployments.
const (
	EnvPort       = "PIPRS_PORT"
	EnvStore      = "PIPRS_STORE"
	EnvLedger     = "PIPRS_LEDGER"
	EnvDeadLetter = "PIPRS_DEADLETTER"
	EnvLogLevel   = "PIPRS_LOG_LEVEL"
)

// Config describes one piprs gateway process.
type Config struct {
	// Listen is the HTTP listen address (host:port).
	Listen string `json:"listen,omitempty"`

	// Store is the SQLite registry path; ":memory:" keeps the registry
	// in process memory.
	Store string `json:"store,omitempty"`

	// Ledger is the gRPC target of the ledger service.
	Ledger string `json:"ledger,omitempty"`

	// LedgerTimeoutMS bounds each ledger RPC; 0 means no deadline.
	LedgerTimeoutMS int `json:"ledger_timeout_ms,omitempty"`

	// DeadLetterDir is where failed submissions are archived.
	// Empty keeps the archive in process memory.
	DeadLetterDir string `json:"dead_letter_dir,omitempty"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	LogLevel string `json:"log_level,omitempty"`
}

// Default returns the configuration a bare process starts with.
func Default() Config {
	return Config{
		Listen:          ":6666",
		Store:           ":memory:",
		Ledger:          "127.0.0.1:7777",
		LedgerTimeoutMS: 10000,
		LogLevel:        "info",
	}
}

// LoadFile reads a JSON config file and overlays it on the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, errors.New("config: empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// FromEnv overlays recognized environment variables on cfg.
// PIPRS_PORT is a bare port number.
func FromEnv(cfg Config) (Config, error) {
	if port := os.Getenv(EnvPort); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n <= 0 || n > 65535 {
			return cfg, fmt.Errorf("config: invalid %s %q", EnvPort, port)
		}
		cfg.Listen = ":" + port
	}
	if v := os.Getenv(EnvStore); v != "" {
		cfg.Store = v
	}
	if v := os.Getenv(EnvLedger); v != "" {
		cfg.Ledger = v
	}
	if v := os.Getenv(EnvDeadLetter); v != "" {
		cfg.DeadLetterDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Listen == "" {
		return errors.New("config: listen address is required")
	}
	if c.Store == "" {
		return errors.New("config: store path is required")
	}
	if c.Ledger == "" {
		return errors.New("config: ledger target is required")
	}
	if c.LedgerTimeoutMS < 0 {
		return errors.New("config: ledger timeout must not be negative")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: invalid log level %q", c.LogLevel)
	}
	return nil
}

// Level returns the parsed zerolog level. Validate must have passed.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
