package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/skycast-dev/skycast/internal/app"
	"github.com/skycast-dev/skycast/internal/config"
	"github.com/skycast-dev/skycast/internal/metrics"
	"github.com/skycast-dev/skycast/pkg/logger"
)

const serviceName = "skycast"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Panicf("failed to load configuration: %v", err)
	}

	l, err := logger.NewLogger(cfg.LogsPath, serviceName)
	if err != nil {
		log.Panicf("failed to create logger: %v", err)
	}

	m := metrics.NewMetrics(serviceName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.New(*cfg, l, m)
	if err := application.Start(ctx); err != nil {
		log.Panicf("application failed to run: %v", err)
	}
}
