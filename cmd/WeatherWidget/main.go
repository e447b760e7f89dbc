package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Nazarious-ucu/weather-widget/internal/app"
	"github.com/Nazarious-ucu/weather-widget/internal/config"
	"github.com/Nazarious-ucu/weather-widget/internal/services/metrics"
	"github.com/Nazarious-ucu/weather-widget/pkg/logger"
)

const serviceName = "weather_widget"

// @title Weather Widget API
// @version 1.0
// @description Current weather lookups backing the weather widget
// @BasePath /api/
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

	application := app.New(*cfg, l, metrics.NewMetrics(serviceName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Start(ctx); err != nil {
		l.Error().Err(err).Msg("application failed to run")
		stop()
		log.Panicf("Application failed to run: %v", err)
	}
}
