package sse

import "time"

// Config holds configuration for SSE connections
type Config struct {
	// KeepAliveInterval is how often a comment line is written to idle streams
	// so proxies do not time the connection out
	KeepAliveInterval time.Duration
}

// DefaultConfig returns the default SSE configuration.
// 10 seconds is safe for most proxies and edge runtimes.
func DefaultConfig() *Config {
	return &Config{
		KeepAliveInterval: 10 * time.Second,
	}
}

// NewConfig returns a config with the given keep-alive interval, falling back
// to the default for non-positive values
func NewConfig(keepAlive time.Duration) *Config {
	cfg := DefaultConfig()
	if keepAlive > 0 {
		cfg.KeepAliveInterval = keepAlive
	}
	return cfg
}
