package config

import "fmt"

// StoreConfig selects the job record backend.
type StoreConfig struct {
	// Backend is one of "memory", "sqlite" or "postgres".
	Backend string `json:"backend"`
	// DSN is the sqlite file path or the postgres connection string.
	DSN string `json:"dsn"`
	// SeedDemo inserts demo jobs into an empty store at startup.
	SeedDemo *bool `json:"seed_demo"`
}

func (c *StoreConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "memory"
	}
	if c.Backend == "sqlite" && c.DSN == "" {
		c.DSN = "fleetcompute.db"
	}
	if c.SeedDemo == nil {
		seed := true
		c.SeedDemo = &seed
	}
}

func (c StoreConfig) Validate() error {
	switch c.Backend {
	case "memory":
	case "sqlite", "postgres":
		if c.DSN == "" {
			return fmt.Errorf("dsn is required for %s", c.Backend)
		}
	default:
		return fmt.Errorf("unknown backend %s", c.Backend)
	}
	return nil
}

// Seed reports whether demo jobs should be inserted.
func (c StoreConfig) Seed() bool { return c.SeedDemo == nil || *c.SeedDemo }
