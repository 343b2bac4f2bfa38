package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/sicmundus/tracker/internal/flagx"
)

// parseFlags applies -a, -d and -l. Only those flags are looked at, so the
// config file flag and anything else on the command line do not interfere.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("tracker", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the tracker API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local session database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug|info|warn|error)")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-a", "-d", "-l"})); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
