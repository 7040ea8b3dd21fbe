package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tp-server/config"
	"tp-server/di"
	"tp-server/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("[MAIN] Invalid configuration", "error", err)
	}

	logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		Console:    true,
		FilePath:   cfg.LogFile,
		MaxSizeMB:  100,
		MaxBackups: 5,
		MaxAgeDays: 28,
		Compress:   true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		logger.Fatal("[MAIN] Failed to build container", "error", err)
	}

	if _, err := container.CatalogService.Seed(); err != nil {
		logger.Fatal("[MAIN] Failed to seed temple catalog", "error", err)
	}

	logger.Info("[MAIN] Starting weather refresher", "interval", cfg.WeatherRefreshInterval.String())
	container.WeatherRefresherService.StartPeriodicJob(ctx, cfg.WeatherRefreshInterval)

	if err := container.HttpServer.Start(ctx); err != nil {
		logger.Fatal("[MAIN] Server stopped", "error", err)
	}
}
