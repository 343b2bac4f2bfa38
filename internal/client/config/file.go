package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sicmundus/tracker/internal/flagx"
	"github.com/sicmundus/tracker/internal/timex"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape of Config. Empty fields leave the current
// value untouched.
type fileConfig struct {
	ServerURL    string         `json:"server_url" yaml:"server_url"`
	DatabasePath string         `json:"database_path" yaml:"database_path"`
	SessionTTL   timex.Duration `json:"session_ttl" yaml:"session_ttl"`
	LogLevel     string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file named by -c/-config, if present.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.ServerURL != "" {
		cfg.ServerURL = fc.ServerURL
	}
	if fc.DatabasePath != "" {
		cfg.DatabasePath = fc.DatabasePath
	}
	if fc.SessionTTL.Duration > 0 {
		cfg.SessionTTL = fc.SessionTTL.Duration
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	return nil
}
