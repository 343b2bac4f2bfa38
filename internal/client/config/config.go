package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the tracker client.
type Config struct {
	ServerURL    string
	DatabasePath string
	// SessionTTL bounds how long a persisted token is trusted across restarts.
	SessionTTL time.Duration
	LogLevel   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8006/api"
	c.DatabasePath = "tracker.db"
	c.SessionTTL = 7 * 24 * time.Hour
	c.LogLevel = "info"
}

// LoadConfig constructs a Config from defaults, then the config file (if
// any), then command-line flags. Later sources take precedence.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
