package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hnaspl/woltk-calendar/app"
	"github.com/hnaspl/woltk-calendar/app/observability"
	"github.com/hnaspl/woltk-calendar/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	obs, err := observability.Init(ctx, observability.Config{
		ServiceName:    "woltk-calendar",
		Environment:    cfg.Observability.Environment,
		Version:        "1.0.0",
		MetricsAddress: cfg.Observability.MetricsAddress,
		LogLevel:       logLevel(cfg.Observability.LogLevel),
	})
	if err != nil {
		log.Fatalf("Failed to initialize observability: %v", err)
	}
	logger := obs.Logger

	application := &app.App{}
	if err := application.Initialize(ctx, cfg, obs); err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	logger.Info("Starting raid calendar backend")
	if err := application.Run(ctx); err != nil {
		logger.Error("Backend stopped with error", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	application.Close(shutdownCtx)
	if err := obs.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down observability", "error", err)
	}
	logger.Info("Backend stopped")
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
