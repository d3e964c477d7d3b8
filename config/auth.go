package config

import (
	"fmt"
	"time"
)

// UserConfig declares an operator account. Either Password or PasswordHash
// (bcrypt) must be set.
type UserConfig struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	PasswordHash string `json:"password_hash"`
	Company      string `json:"company"`
	Role         string `json:"role"`
}

// AuthConfig defines token issuance and the user directory.
type AuthConfig struct {
	Secret        string       `json:"secret"`
	TokenTTLHours int          `json:"token_ttl_hours"`
	Users         []UserConfig `json:"users"`
}

// DemoUsers are the accounts available when none are configured.
var DemoUsers = []UserConfig{
	{Username: "waymo_ops", Password: "demo", Company: "Waymo", Role: "operator"},
	{Username: "zoox_dev", Password: "demo", Company: "Zoox", Role: "developer"},
	{Username: "admin", Password: "demo", Company: "FleetCompute", Role: "admin"},
}

func (c *AuthConfig) SetDefaults() {
	if c.Secret == "" {
		c.Secret = "fleetcompute-secret"
	}
	if c.TokenTTLHours == 0 {
		c.TokenTTLHours = 24
	}
	if len(c.Users) == 0 {
		c.Users = append([]UserConfig(nil), DemoUsers...)
	}
}

func (c AuthConfig) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("secret is required")
	}
	if c.TokenTTLHours <= 0 {
		return fmt.Errorf("token_ttl_hours must be positive")
	}
	seen := map[string]bool{}
	for _, u := range c.Users {
		if u.Username == "" {
			return fmt.Errorf("user without username")
		}
		if seen[u.Username] {
			return fmt.Errorf("duplicate user %s", u.Username)
		}
		seen[u.Username] = true
		if u.Company == "" || u.Role == "" {
			return fmt.Errorf("user %s requires company and role", u.Username)
		}
		if u.Password == "" && u.PasswordHash == "" {
			return fmt.Errorf("user %s requires password or password_hash", u.Username)
		}
	}
	return nil
}

func (c AuthConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}
