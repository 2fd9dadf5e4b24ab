package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	APIURL               string  `mapstructure:"api_url"`
	TokenPath            string  `mapstructure:"token_path"`             // Bearer token file; read once at connect time
	LogLevel             string  `mapstructure:"log_level"`
	RequestTimeoutSec    int     `mapstructure:"request_timeout_sec"`    // Outbound REST call timeout
	ConnectTimeoutSec    int     `mapstructure:"connect_timeout_sec"`    // Stream dial timeout
	HeartbeatIntervalSec int     `mapstructure:"heartbeat_interval_sec"` // Outbound heartbeat period
	LivenessMultiplier   int     `mapstructure:"liveness_multiplier"`    // Read deadline = N x heartbeat interval
	ReconnectBaseMs      int     `mapstructure:"reconnect_base_ms"`      // Backoff base; doubles per attempt, capped at 30s
	MaxReconnectAttempts int     `mapstructure:"max_reconnect_attempts"` // Give up after this many retries; 0 = never retry
	RateLimitPerSec      float64 `mapstructure:"rate_limit_per_sec"`     // Token bucket for REST calls; 0 = no limit
	RateLimitBurst       int     `mapstructure:"rate_limit_burst"`
	CacheTTLSec          int     `mapstructure:"cache_ttl_sec"`          // GET response cache TTL; 0 = cache disabled
	HistoryPath          string  `mapstructure:"history_path"`           // SQLite file for --record mode
	HistoryRetentionDays int     `mapstructure:"history_retention_days"` // Prune recorded events older than this
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.opssight")
	viper.AddConfigPath(".")

	// Defaults
	viper.SetDefault("api_url", "http://localhost:8080")
	viper.SetDefault("token_path", "$HOME/.opssight/token")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("request_timeout_sec", 30)
	viper.SetDefault("connect_timeout_sec", 10)
	viper.SetDefault("heartbeat_interval_sec", 30)
	viper.SetDefault("liveness_multiplier", 2)
	viper.SetDefault("reconnect_base_ms", 5000)
	viper.SetDefault("max_reconnect_attempts", 5)
	viper.SetDefault("rate_limit_per_sec", 0) // 0 = disabled
	viper.SetDefault("rate_limit_burst", 0)
	viper.SetDefault("cache_ttl_sec", 30)
	viper.SetDefault("history_path", "$HOME/.opssight/history.db")
	viper.SetDefault("history_retention_days", 7)

	// Environment variables
	viper.SetEnvPrefix("OPSSIGHT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found; using defaults and env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// RequestTimeout returns the REST call timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSec <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// ConnectTimeout returns the stream dial timeout as a duration.
func (c *Config) ConnectTimeout() time.Duration {
	if c.ConnectTimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ConnectTimeoutSec) * time.Second
}

// HeartbeatInterval returns the heartbeat period as a duration.
func (c *Config) HeartbeatInterval() time.Duration {
	if c.HeartbeatIntervalSec <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.HeartbeatIntervalSec) * time.Second
}

// ReconnectBase returns the backoff base as a duration.
func (c *Config) ReconnectBase() time.Duration {
	if c.ReconnectBaseMs <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.ReconnectBaseMs) * time.Millisecond
}

// CacheTTL returns the GET cache TTL; zero disables caching.
func (c *Config) CacheTTL() time.Duration {
	if c.CacheTTLSec <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSec) * time.Second
}
