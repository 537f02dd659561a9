// Package app defines the contract an application implements and boots it.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/snx/snx/internal/config"
	"github.com/snx/snx/internal/metrics"
	"github.com/snx/snx/internal/router"
	"github.com/snx/snx/internal/server"
)

// App is implemented by applications served by Boot.
type App interface {
	// Routes declares the application's routes on b.
	Routes(b *router.Builder)

	server.Handler
}

// BuildTable builds the route table declared by a.
func BuildTable(a App) (*router.Table, error) {
	b := router.NewBuilder()
	a.Routes(b)

	table, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build route table: %w", err)
	}
	return table, nil
}

// LoadConfig reads the configuration file at path, or config.DefaultPath
// when path is empty.
func LoadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = config.DefaultPath
	}
	return config.Load(path)
}

// Boot builds a's route table and serves it until ctx is done.
func Boot(ctx context.Context, a App, cfg *config.Config, logger *zap.Logger) error {
	srv, err := newServer(a, cfg, logger)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

func newServer(a App, cfg *config.Config, logger *zap.Logger) (*server.Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	table, err := BuildTable(a)
	if err != nil {
		return nil, err
	}

	for _, r := range table.Routes() {
		logger.Debug("route registered", zap.Stringer("route", r))
	}

	return server.New(cfg, table, a, logger, metrics.New(cfg.Metrics.Namespace)), nil
}
