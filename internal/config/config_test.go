package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir is a stand-in for t.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir()) // no config file in cwd

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.APIURL)
	assert.Equal(t, 10, cfg.ConnectTimeoutSec)
	assert.Equal(t, 30, cfg.HeartbeatIntervalSec)
	assert.Equal(t, 2, cfg.LivenessMultiplier)
	assert.Equal(t, 5000, cfg.ReconnectBaseMs)
	assert.Equal(t, 5, cfg.MaxReconnectAttempts)
	assert.Equal(t, 7, cfg.HistoryRetentionDays)
}

func TestLoadEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("OPSSIGHT_API_URL", "https://ops.example.com")
	t.Setenv("OPSSIGHT_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://ops.example.com", cfg.APIURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestDurationHelpers(t *testing.T) {
	cfg := &Config{
		RequestTimeoutSec:    5,
		ConnectTimeoutSec:    3,
		HeartbeatIntervalSec: 15,
		ReconnectBaseMs:      250,
		CacheTTLSec:          60,
	}
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 3*time.Second, cfg.ConnectTimeout())
	assert.Equal(t, 15*time.Second, cfg.HeartbeatInterval())
	assert.Equal(t, 250*time.Millisecond, cfg.ReconnectBase())
	assert.Equal(t, time.Minute, cfg.CacheTTL())
}

func TestDurationHelpersZeroValues(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout())
	assert.Equal(t, 30*time.Second, cfg.HeartbeatInterval())
	assert.Equal(t, 5*time.Second, cfg.ReconnectBase())
	assert.Equal(t, time.Duration(0), cfg.CacheTTL())
}
