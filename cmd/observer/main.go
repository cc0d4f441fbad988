package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kazakovdmitriy/go-eventmanager/internal/config"
	"github.com/kazakovdmitriy/go-eventmanager/internal/logger"
	"github.com/kazakovdmitriy/go-eventmanager/internal/server"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		return err
	}

	log, err := logger.Initialize(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logger initialization error: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting event observer",
		zap.String("address", cfg.ServerAddr),
		zap.String("sampler", cfg.SamplerName),
		zap.Duration("poll_interval", cfg.PollInterval),
	)

	app, err := server.NewApp(context.Background(), cfg, log)
	if err != nil {
		return fmt.Errorf("app initialization error: %w", err)
	}

	return app.Run()
}
