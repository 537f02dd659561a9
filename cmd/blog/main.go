package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/snx/snx/internal/app"
	"github.com/snx/snx/internal/config"
	"github.com/snx/snx/internal/logging"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "Path to the configuration file")
	flag.Parse()

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("configuration loaded",
		zap.String("config", *configPath),
		zap.String("address", cfg.App.Address()),
		zap.Bool("metrics", cfg.Metrics.Enabled),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Boot(ctx, newBlog(logger), cfg, logger); err != nil {
		logger.Error("server error", zap.Error(err))
		stop()
		_ = logger.Sync()
		os.Exit(1)
	}
}
