package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConfig struct {
	ApplicationName string `validate:"required"`
	Port            string `validate:"required,numeric"`

	// Upstream endpoints.
	GeocodingURL string `validate:"required,url"`
	WeatherURL   string `validate:"required,url"`

	// HTTPTimeout bounds each outbound call and each inbound weather request.
	HTTPTimeout time.Duration `validate:"gt=0"`

	// Circuit breaker around each upstream.
	BreakerMaxFailures int           `validate:"min=1"`
	BreakerOpenTimeout time.Duration `validate:"gt=0"`

	// Upstream probe behind /api/health/ready.
	ProbeCity     string        `validate:"required"`
	ProbeInterval time.Duration `validate:"min=1m"`

	EnableMetrics bool
	CORSOrigins   string `validate:"required"`

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json console"`
}

var validate = validator.New()

// Load reads configuration from an optional .env file and the environment, with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	return load(viper.New())
}

func load(v *viper.Viper) (*AppConfig, error) {
	v.SetDefault("APPLICATION_NAME", "cy-weather-api")
	v.SetDefault("PORT", "8080")
	v.SetDefault("GEOCODING_URL", "https://geocoding-api.open-meteo.com/v1/search")
	v.SetDefault("WEATHER_URL", "https://api.open-meteo.com/v1/forecast")
	v.SetDefault("HTTP_TIMEOUT", "10s")
	v.SetDefault("BREAKER_MAX_FAILURES", 5)
	v.SetDefault("BREAKER_OPEN_TIMEOUT", "30s")
	v.SetDefault("PROBE_CITY", "Paris")
	v.SetDefault("PROBE_INTERVAL", "5m")
	v.SetDefault("ENABLE_METRICS", false)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.AutomaticEnv()

	cfg := &AppConfig{
		ApplicationName:    v.GetString("APPLICATION_NAME"),
		Port:               v.GetString("PORT"),
		GeocodingURL:       v.GetString("GEOCODING_URL"),
		WeatherURL:         v.GetString("WEATHER_URL"),
		BreakerMaxFailures: v.GetInt("BREAKER_MAX_FAILURES"),
		ProbeCity:          v.GetString("PROBE_CITY"),
		EnableMetrics:      v.GetBool("ENABLE_METRICS"),
		CORSOrigins:        v.GetString("CORS_ORIGINS"),
		LogLevel:           strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:          strings.ToLower(v.GetString("LOG_FORMAT")),
	}

	var err error
	if cfg.HTTPTimeout, err = duration(v, "HTTP_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.BreakerOpenTimeout, err = duration(v, "BREAKER_OPEN_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.ProbeInterval, err = duration(v, "PROBE_INTERVAL"); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func duration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
