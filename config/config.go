// Package config handles loading and parsing the service configuration.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Members is the fixed band roster used by the all-members availability
// endpoint. Overridable from the config file for other line-ups.
var Members = []string{"Lead Guitar", "Bass", "Drums", "Keys", "Saxophone", "Vocals"}

// RateLimit configures the per-client token bucket for the API.
type RateLimit struct {
	PerMinute int `toml:"per_minute"`
	Burst     int `toml:"burst"`
}

// Config holds all configuration for the service.
type Config struct {
	Host           string    `toml:"host"`
	Port           int       `toml:"port"`
	DataDir        string    `toml:"data_dir"`
	Backend        string    `toml:"backend"` // "file" or "sqlite"
	AllowedOrigins []string  `toml:"allowed_origins"`
	LogLevel       string    `toml:"log_level"`
	Members        []string  `toml:"members"`
	RateLimit      RateLimit `toml:"rate_limit"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Host:           "0.0.0.0",
		Port:           8080,
		DataDir:        "./data",
		Backend:        "file",
		AllowedOrigins: []string{"*"},
		LogLevel:       "info",
		Members:        Members,
		RateLimit:      RateLimit{PerMinute: 300, Burst: 30},
	}
}

// Load reads a TOML configuration file and populates the Config.
func (c *Config) Load(path string) error {
	_, err := toml.DecodeFile(path, c)
	return err
}

// ApplyEnv overrides fields from environment variables, which take
// precedence over the config file.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Port = p
		}
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("STORE_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}
