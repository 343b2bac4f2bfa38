// Package config loads runtime configuration for the tracker client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are decoded as YAML, everything else as JSON.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the tracker API (e.g. http://localhost:8006/api)
//	-d string   path of the local SQLite database holding the session token
//	-l string   log level: debug, info, warn, error
//
// # File schema
//
// Durations accept strings like "168h" or integer nanoseconds:
//
//	{
//	  "server_url": "http://localhost:8006/api",
//	  "database_path": "tracker.db",
//	  "session_ttl": "168h",
//	  "log_level": "info"
//	}
package config
