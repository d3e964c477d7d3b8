package config

import (
	"fmt"
	"time"
)

// ServerConfig defines the HTTP API listener.
type ServerConfig struct {
	Addr string `json:"addr"`
	// CORSOrigins lists the dashboard origins allowed to call the API.
	CORSOrigins []string `json:"cors_origins"`
	// StreamIntervalSeconds is the push period of the websocket price stream.
	StreamIntervalSeconds int `json:"stream_interval_seconds"`
	// ShutdownTimeoutSeconds bounds graceful shutdown.
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds"`
}

func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":5001"
	}
	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if c.StreamIntervalSeconds == 0 {
		c.StreamIntervalSeconds = 5
	}
	if c.ShutdownTimeoutSeconds == 0 {
		c.ShutdownTimeoutSeconds = 5
	}
}

func (c ServerConfig) Validate() error {
	if c.StreamIntervalSeconds < 0 {
		return fmt.Errorf("stream_interval_seconds must be positive")
	}
	if c.ShutdownTimeoutSeconds < 0 {
		return fmt.Errorf("shutdown_timeout_seconds must be positive")
	}
	return nil
}

func (c ServerConfig) StreamInterval() time.Duration {
	return time.Duration(c.StreamIntervalSeconds) * time.Second
}

func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
