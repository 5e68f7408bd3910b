package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lox/pokerdraw/internal/server"
)

// ServeCmd runs the analysis server, exposing the estimator over REST
// and websocket endpoints.
type ServeCmd struct {
	Addr     string `short:"a" help:"host:port to listen on (overrides config)"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
}

func (c *ServeCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	// Apply command line overrides
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	addr := cfg.ServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	logger, cleanup, err := openLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer cleanup()

	service := server.NewAnalysisService(cfg.Estimator.Trials, cfg.Estimator.Workers, logger)
	srv := server.NewServer(addr, version, service, logger)

	logger.Info("Starting pokerdraw server",
		"addr", addr,
		"defaultTrials", cfg.Estimator.Trials,
		"workers", cfg.Estimator.Workers)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Stop(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}
