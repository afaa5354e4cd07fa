package weather

import (
	"context"
)

// Resolver turns a free-text place into coordinates (e.g. Open-Meteo geocoding).
// It returns *NotFoundError when nothing matches and passes transport and
// status errors through unmodified.
type Resolver interface {
	Resolve(ctx context.Context, city, countryCode string) (Coordinates, error)
}

// Fetcher queries the weather data endpoint for resolved coordinates.
// Payloads are schema-checked; a malformed body yields *DataShapeError.
type Fetcher interface {
	FetchCurrent(ctx context.Context, coords Coordinates) (RawWeatherPayload, error)
	FetchForecast(ctx context.Context, coords Coordinates) (RawWeatherPayload, error)
}
