package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sicmundus/tracker/internal/client/cli"
	"github.com/sicmundus/tracker/internal/client/config"
	"github.com/sicmundus/tracker/internal/logging"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
