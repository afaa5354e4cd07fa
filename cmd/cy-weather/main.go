package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httpapi "github.com/i474232898/cy-weather-api/internal/api/http"
	"github.com/i474232898/cy-weather-api/internal/config"
	"github.com/i474232898/cy-weather-api/internal/logging"
	"github.com/i474232898/cy-weather-api/internal/scheduler"
	"github.com/i474232898/cy-weather-api/internal/weather"
	"github.com/i474232898/cy-weather-api/internal/weather/providers"
)

//go:generate swag init -g main.go -d ./,../../internal/api/http,../../internal/weather,../../internal/scheduler -o ../../internal/api/docs --outputTypes go

// @title CY Weather API
// @version 0.1.0
// @description API for CY Weather application
// @BasePath /api
// @tag.name Health
// @tag.description Health check endpoints
// @tag.name Weather
// @tag.description Endpoints pour récupérer les données météo actuelles et les prévisions
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.ApplicationName, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Shared HTTP client for outbound calls; each upstream gets its own circuit breaker.
	httpCfg := providers.HTTPClientConfig{
		Client: providers.NewHTTPClient(cfg.HTTPTimeout, logger.Named("resty")),
		Breaker: providers.BreakerConfig{
			MaxConsecutiveFailures: uint32(cfg.BreakerMaxFailures),
			OpenTimeout:            cfg.BreakerOpenTimeout,
		},
		Logger: logger.Named("upstream"),
	}

	resolver := providers.NewGeocodingResolver(cfg.GeocodingURL, httpCfg)
	fetcher := providers.NewOpenMeteoProvider(cfg.WeatherURL, httpCfg)
	service := weather.NewService(resolver, fetcher, logger.Named("weather"))

	prober := scheduler.New(resolver, cfg.ProbeCity, cfg.ProbeInterval, cfg.HTTPTimeout, logger.Named("probe"))
	if err := prober.Start(); err != nil {
		logger.Fatal("failed to start upstream probe", zap.Error(err))
	}
	defer prober.Stop()

	app := httpapi.NewApp(httpapi.AppOptions{
		Name:           cfg.ApplicationName,
		CORSOrigins:    cfg.CORSOrigins,
		EnableMetrics:  cfg.EnableMetrics,
		RequestTimeout: cfg.HTTPTimeout * 2,
		Logger:         logger.Named("http"),
	}, service, prober)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("server starting", zap.String("port", cfg.Port), zap.Bool("metrics", cfg.EnableMetrics))
	if err := httpapi.Serve(ctx, app, ":"+cfg.Port, 10*time.Second); err != nil {
		// Fatal skips deferred calls; stop the probe first.
		prober.Stop()
		logger.Fatal("server stopped", zap.Error(err))
	}
	logger.Info("server stopped")
}
