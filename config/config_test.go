package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadFile_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "piprs.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"listen": ":8080",
		"store": "/var/lib/piprs/users.db"
	}`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, "/var/lib/piprs/users.db", cfg.Store)
	// Untouched fields keep their defaults.
	assert.Equal(t, "127.0.0.1:7777", cfg.Ledger)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile("")
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"log_level": "loud"}`), 0o644))
	_, err = LoadFile(bad)
	assert.Error(t, err)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv(EnvPort, "7001")
	t.Setenv(EnvStore, "/tmp/users.db")
	t.Setenv(EnvLedger, "ledger.internal:7777")
	t.Setenv(EnvDeadLetter, "/tmp/deadletter")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := FromEnv(Default())
	require.NoError(t, err)

	assert.Equal(t, ":7001", cfg.Listen)
	assert.Equal(t, "/tmp/users.db", cfg.Store)
	assert.Equal(t, "ledger.internal:7777", cfg.Ledger)
	assert.Equal(t, "/tmp/deadletter", cfg.DeadLetterDir)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestFromEnv_RejectsBadPort(t *testing.T) {
	for _, port := range []string{"nope", "-1", "0", "70000"} {
		t.Setenv(EnvPort, port)
		_, err := FromEnv(Default())
		assert.Error(t, err, "port %q", port)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty listen", func(c *Config) { c.Listen = "" }},
		{"empty store", func(c *Config) { c.Store = "" }},
		{"empty ledger", func(c *Config) { c.Ledger = "" }},
		{"negative timeout", func(c *Config) { c.LedgerTimeoutMS = -1 }},
		{"bad log level", func(c *Config) { c.LogLevel = "shout" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
