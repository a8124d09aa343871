package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/zagzy8776/realssa-news-agg/internal/app"
	"github.com/zagzy8776/realssa-news-agg/internal/config"
	"github.com/zagzy8776/realssa-news-agg/internal/logging"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration:\n%v\n", err)
		os.Exit(2)
	}

	a, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx); err != nil {
		a.Logger.Error("Application error", logging.WithField("error", err.Error()))
		os.Exit(1)
	}
}
