package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/dogbox/internal/client/cli"
	"github.com/dmitrijs2005/dogbox/internal/client/config"
	"github.com/dmitrijs2005/dogbox/internal/logging"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}

}
