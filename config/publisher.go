package config

import (
	"fmt"
	"strings"
	"time"
)

// PublisherConfig controls the periodic MQTT snapshot publisher.
type PublisherConfig struct {
	Enabled         bool   `json:"enabled"`
	IntervalSeconds int    `json:"interval_seconds"`
	TopicPrefix     string `json:"topic_prefix"`
}

func (c *PublisherConfig) SetDefaults() {
	if c.IntervalSeconds == 0 {
		c.IntervalSeconds = 10
	}
	if c.TopicPrefix == "" {
		c.TopicPrefix = "fleetcompute"
	}
	c.TopicPrefix = strings.TrimSuffix(c.TopicPrefix, "/")
}

func (c PublisherConfig) Validate() error {
	if c.IntervalSeconds < 0 {
		return fmt.Errorf("interval_seconds must be positive")
	}
	return nil
}

func (c PublisherConfig) Interval() time.Duration {
	if c.IntervalSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.IntervalSeconds) * time.Second
}
