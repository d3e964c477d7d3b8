package config

import "fmt"

// LoggingConfig defines the application log output.
type LoggingConfig struct {
	// Level is the minimum level: debug, info, warn or error.
	Level string `json:"level"`
	// Console switches to human readable output.
	Console bool `json:"console"`
	// File mirrors logs to a rotated file when Path is set.
	File LogFileConfig `json:"file"`
}

// LogFileConfig configures size based log rotation.
type LogFileConfig struct {
	Path       string `json:"path"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.File.MaxSizeMB <= 0 {
		c.File.MaxSizeMB = 100
	}
	if c.File.MaxBackups <= 0 {
		c.File.MaxBackups = 3
	}
	if c.File.MaxAgeDays <= 0 {
		c.File.MaxAgeDays = 28
	}
}

// Validate checks mandatory fields.
func (c LoggingConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("unknown level %s", c.Level)
	}
}
