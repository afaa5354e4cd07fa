package providers

import (
	"context"

	"github.com/i474232898/cy-weather-api/internal/weather"
)

// DefaultGeocodingURL is the Open-Meteo geocoding search endpoint.
const DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

// GeocodingResolver implements weather.Resolver against Open-Meteo geocoding.
type GeocodingResolver struct {
	upstream *upstream
}

func NewGeocodingResolver(baseURL string, cfg HTTPClientConfig) *GeocodingResolver {
	if baseURL == "" {
		baseURL = DefaultGeocodingURL
	}
	return &GeocodingResolver{
		upstream: newUpstream("geocoding", baseURL, cfg),
	}
}

type geocodingResponse struct {
	// Open-Meteo omits "results" entirely when nothing matches.
	Results []struct {
		Latitude    *float64 `json:"latitude"`
		Longitude   *float64 `json:"longitude"`
		Name        string   `json:"name"`
		CountryCode string   `json:"country_code"`
	} `json:"results"`
}

// Resolve returns the first geocoding match for city, optionally restricted to countryCode.
func (r *GeocodingResolver) Resolve(ctx context.Context, city, countryCode string) (weather.Coordinates, error) {
	params := map[string]string{
		"name":     city,
		"count":    "1",
		"language": "fr",
		"format":   "json",
	}
	if countryCode != "" {
		params["country_code"] = countryCode
	}

	body, err := r.upstream.get(ctx, params)
	if err != nil {
		return weather.Coordinates{}, err
	}

	var payload geocodingResponse
	if err := decode("geocoding", body, &payload); err != nil {
		return weather.Coordinates{}, err
	}
	if len(payload.Results) == 0 {
		return weather.Coordinates{}, &weather.NotFoundError{City: city, CountryCode: countryCode}
	}

	first := payload.Results[0]
	if first.Latitude == nil {
		return weather.Coordinates{}, &weather.DataShapeError{Field: "results[0].latitude", Reason: "missing"}
	}
	if first.Longitude == nil {
		return weather.Coordinates{}, &weather.DataShapeError{Field: "results[0].longitude", Reason: "missing"}
	}

	name := first.Name
	if name == "" {
		name = city
	}

	return weather.Coordinates{
		Latitude:        *first.Latitude,
		Longitude:       *first.Longitude,
		ResolvedCity:    name,
		ResolvedCountry: first.CountryCode,
	}, nil
}
