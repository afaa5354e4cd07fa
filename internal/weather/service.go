package weather

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	opGeocode  = "geocode"
	opCurrent  = "fetch current weather"
	opForecast = "fetch forecast"
)

var validate = validator.New()

// Service resolves a place, fetches its weather and normalizes the result.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	resolver Resolver
	fetcher  Fetcher
	logger   *zap.Logger
}

// NewService creates a new Service.
func NewService(resolver Resolver, fetcher Fetcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		resolver: resolver,
		fetcher:  fetcher,
		logger:   logger,
	}
}

// GetCurrentWeather returns current conditions for a city.
func (s *Service) GetCurrentWeather(ctx context.Context, city, countryCode string) (*WeatherResponse, error) {
	coords, err := s.coordinates(ctx, city, countryCode)
	if err != nil {
		return nil, err
	}

	payload, err := s.fetcher.FetchCurrent(ctx, coords)
	if err != nil {
		return nil, s.translate(opCurrent, coords.ResolvedCity, countryCode, err)
	}

	resp, err := NormalizeCurrent(payload, coords.ResolvedCity, coords.ResolvedCountry)
	if err != nil {
		s.logger.Error("current weather payload rejected",
			zap.String("city", coords.ResolvedCity),
			zap.Error(err))
		return nil, err
	}
	return resp, nil
}

// GetForecast returns the daily forecast for a city.
func (s *Service) GetForecast(ctx context.Context, city, countryCode string) (*ForecastResponse, error) {
	coords, err := s.coordinates(ctx, city, countryCode)
	if err != nil {
		return nil, err
	}

	payload, err := s.fetcher.FetchForecast(ctx, coords)
	if err != nil {
		return nil, s.translate(opForecast, coords.ResolvedCity, countryCode, err)
	}

	resp, err := NormalizeForecast(payload, coords.ResolvedCity, coords.ResolvedCountry)
	if err != nil {
		s.logger.Error("forecast payload rejected",
			zap.String("city", coords.ResolvedCity),
			zap.Error(err))
		return nil, err
	}

	s.logger.Debug("forecast built",
		zap.String("city", resp.City),
		zap.Int("days", len(resp.Forecast)))
	return resp, nil
}

func (s *Service) coordinates(ctx context.Context, city, countryCode string) (Coordinates, error) {
	q := PlaceQuery{
		City:        strings.TrimSpace(city),
		CountryCode: strings.ToUpper(strings.TrimSpace(countryCode)),
	}
	if err := validate.Struct(q); err != nil {
		return Coordinates{}, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}

	coords, err := s.resolver.Resolve(ctx, q.City, q.CountryCode)
	if err != nil {
		return Coordinates{}, s.translate(opGeocode, q.City, q.CountryCode, err)
	}

	s.logger.Debug("city resolved",
		zap.String("query", q.City),
		zap.String("city", coords.ResolvedCity),
		zap.String("country", coords.ResolvedCountry),
		zap.Float64("lat", coords.Latitude),
		zap.Float64("lon", coords.Longitude))
	return coords, nil
}

// translate maps collaborator errors onto NotFoundError, DataShapeError and
// UpstreamTransportError. Domain errors pass through; a 404 from geocoding
// means the city is unknown; everything else is a transport failure.
func (s *Service) translate(op, city, countryCode string, err error) error {
	var (
		notFound *NotFoundError
		shape    *DataShapeError
		status   *StatusError
	)

	switch {
	case errors.As(err, &notFound):
		s.logger.Info("city not found", zap.String("city", city), zap.String("country_code", countryCode))
		return err
	case errors.As(err, &shape):
		s.logger.Error("upstream payload rejected", zap.String("op", op), zap.Error(err))
		return err
	case op == opGeocode && errors.As(err, &status) && status.StatusCode == http.StatusNotFound:
		s.logger.Info("city not found", zap.String("city", city), zap.String("country_code", countryCode))
		return &NotFoundError{City: city, CountryCode: countryCode}
	}

	s.logger.Error("upstream call failed", zap.String("op", op), zap.String("city", city), zap.Error(err))
	return &UpstreamTransportError{Op: op, Err: err}
}
