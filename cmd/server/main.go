// ABOUTME: Main entry point for the Legal Crew HTTP server
// ABOUTME: Loads configuration, wires the pipeline and serves /legal-advice until interrupted
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harper/legal-crew/internal/app"
	"github.com/harper/legal-crew/internal/config"
	"github.com/harper/legal-crew/internal/logging"
	"github.com/harper/legal-crew/internal/server"
)

var version = "dev"

func main() {
	logger := logging.New(os.Stderr, "info")

	if err := config.LoadDotEnv(); err != nil {
		logger.Debug("No .env file found (this is okay for production)", "err", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", "err", err)
	}
	logger.SetLevel(logging.ParseLevel(cfg.LogLevel))

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", "err", err)
	}
	pipeline, err := a.RequirePipeline()
	if err != nil {
		logger.Fatal("Cannot answer questions", "err", err)
	}

	handler := server.New(server.Config{
		Asker:   pipeline,
		Version: version,
		Logger:  logging.Component(logger, "HTTP"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx, cfg.Addr, handler, logger); err != nil {
		logger.Fatal("Server error", "err", err)
	}
}
