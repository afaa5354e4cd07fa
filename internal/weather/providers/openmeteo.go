package providers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/i474232898/cy-weather-api/internal/weather"
)

// DefaultForecastURL is the Open-Meteo forecast endpoint.
const DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"

// ForecastDays is the size of the daily forecast window.
const ForecastDays = 7

var (
	currentFields = []string{
		"temperature_2m",
		"relative_humidity_2m",
		"apparent_temperature",
		"pressure_msl",
		"wind_speed_10m",
		"weather_code",
	}
	dailyFields = []string{
		"weather_code",
		"temperature_2m_max",
		"temperature_2m_min",
		"apparent_temperature_max",
		"apparent_temperature_min",
		"precipitation_probability_max",
		"wind_speed_10m_max",
	}
)

// OpenMeteoProvider implements weather.Fetcher for the Open-Meteo forecast API.
type OpenMeteoProvider struct {
	upstream *upstream
}

func NewOpenMeteoProvider(baseURL string, cfg HTTPClientConfig) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = DefaultForecastURL
	}
	return &OpenMeteoProvider{
		upstream: newUpstream("openmeteo", baseURL, cfg),
	}
}

// FetchCurrent requests the current-conditions fields for coords.
func (p *OpenMeteoProvider) FetchCurrent(ctx context.Context, coords weather.Coordinates) (weather.RawWeatherPayload, error) {
	params := coordinateParams(coords)
	params["current"] = strings.Join(currentFields, ",")

	body, err := p.upstream.get(ctx, params)
	if err != nil {
		return weather.RawWeatherPayload{}, err
	}

	var payload currentResponse
	if err := decode("current", body, &payload); err != nil {
		return weather.RawWeatherPayload{}, err
	}
	return payload.toPayload()
}

// FetchForecast requests the daily aggregates over the forecast window for coords.
func (p *OpenMeteoProvider) FetchForecast(ctx context.Context, coords weather.Coordinates) (weather.RawWeatherPayload, error) {
	params := coordinateParams(coords)
	params["daily"] = strings.Join(dailyFields, ",")
	params["forecast_days"] = strconv.Itoa(ForecastDays)

	body, err := p.upstream.get(ctx, params)
	if err != nil {
		return weather.RawWeatherPayload{}, err
	}

	var payload dailyResponse
	if err := decode("daily", body, &payload); err != nil {
		return weather.RawWeatherPayload{}, err
	}
	return payload.toPayload()
}

func coordinateParams(coords weather.Coordinates) map[string]string {
	return map[string]string{
		"latitude":  strconv.FormatFloat(coords.Latitude, 'f', -1, 64),
		"longitude": strconv.FormatFloat(coords.Longitude, 'f', -1, 64),
		"timezone":  "auto",
	}
}

type currentResponse struct {
	UTCOffsetSeconds *int `json:"utc_offset_seconds"`
	Current          *struct {
		Time                *string  `json:"time"`
		Temperature         *float64 `json:"temperature_2m"`
		RelativeHumidity    *float64 `json:"relative_humidity_2m"`
		ApparentTemperature *float64 `json:"apparent_temperature"`
		PressureMSL         *float64 `json:"pressure_msl"`
		WindSpeed           *float64 `json:"wind_speed_10m"`
		WeatherCode         *int     `json:"weather_code"`
	} `json:"current"`
}

func (r currentResponse) toPayload() (weather.RawWeatherPayload, error) {
	if r.UTCOffsetSeconds == nil {
		return weather.RawWeatherPayload{}, missing("utc_offset_seconds")
	}
	c := r.Current
	if c == nil {
		return weather.RawWeatherPayload{}, missing("current")
	}

	switch {
	case c.Time == nil:
		return weather.RawWeatherPayload{}, missing("current.time")
	case c.Temperature == nil:
		return weather.RawWeatherPayload{}, missing("current.temperature_2m")
	case c.RelativeHumidity == nil:
		return weather.RawWeatherPayload{}, missing("current.relative_humidity_2m")
	case c.ApparentTemperature == nil:
		return weather.RawWeatherPayload{}, missing("current.apparent_temperature")
	case c.PressureMSL == nil:
		return weather.RawWeatherPayload{}, missing("current.pressure_msl")
	case c.WindSpeed == nil:
		return weather.RawWeatherPayload{}, missing("current.wind_speed_10m")
	case c.WeatherCode == nil:
		return weather.RawWeatherPayload{}, missing("current.weather_code")
	}

	return weather.RawWeatherPayload{
		UTCOffsetSeconds: *r.UTCOffsetSeconds,
		Current: &weather.CurrentBlock{
			Time:                *c.Time,
			Temperature:         *c.Temperature,
			RelativeHumidity:    *c.RelativeHumidity,
			ApparentTemperature: *c.ApparentTemperature,
			PressureMSL:         *c.PressureMSL,
			WindSpeed:           *c.WindSpeed,
			WeatherCode:         *c.WeatherCode,
		},
	}, nil
}

type dailyResponse struct {
	UTCOffsetSeconds *int `json:"utc_offset_seconds"`
	Daily            *struct {
		Time                        []*string  `json:"time"`
		WeatherCode                 []*int     `json:"weather_code"`
		TemperatureMax              []*float64 `json:"temperature_2m_max"`
		TemperatureMin              []*float64 `json:"temperature_2m_min"`
		ApparentTemperatureMax      []*float64 `json:"apparent_temperature_max"`
		ApparentTemperatureMin      []*float64 `json:"apparent_temperature_min"`
		PrecipitationProbabilityMax []*float64 `json:"precipitation_probability_max"`
		WindSpeedMax                []*float64 `json:"wind_speed_10m_max"`
	} `json:"daily"`
}

// toPayload checks every array is present and null-free. Length alignment is
// left to the normalizer.
func (r dailyResponse) toPayload() (weather.RawWeatherPayload, error) {
	if r.UTCOffsetSeconds == nil {
		return weather.RawWeatherPayload{}, missing("utc_offset_seconds")
	}
	d := r.Daily
	if d == nil {
		return weather.RawWeatherPayload{}, missing("daily")
	}

	block := &weather.DailyBlock{}
	var err error
	if block.Time, err = requireAll("daily.time", d.Time); err != nil {
		return weather.RawWeatherPayload{}, err
	}
	if block.WeatherCode, err = requireAll("daily.weather_code", d.WeatherCode); err != nil {
		return weather.RawWeatherPayload{}, err
	}
	if block.TemperatureMax, err = requireAll("daily.temperature_2m_max", d.TemperatureMax); err != nil {
		return weather.RawWeatherPayload{}, err
	}
	if block.TemperatureMin, err = requireAll("daily.temperature_2m_min", d.TemperatureMin); err != nil {
		return weather.RawWeatherPayload{}, err
	}
	if block.ApparentTemperatureMax, err = requireAll("daily.apparent_temperature_max", d.ApparentTemperatureMax); err != nil {
		return weather.RawWeatherPayload{}, err
	}
	if block.ApparentTemperatureMin, err = requireAll("daily.apparent_temperature_min", d.ApparentTemperatureMin); err != nil {
		return weather.RawWeatherPayload{}, err
	}
	if block.PrecipitationProbabilityMax, err = requireAll("daily.precipitation_probability_max", d.PrecipitationProbabilityMax); err != nil {
		return weather.RawWeatherPayload{}, err
	}
	if block.WindSpeedMax, err = requireAll("daily.wind_speed_10m_max", d.WindSpeedMax); err != nil {
		return weather.RawWeatherPayload{}, err
	}

	return weather.RawWeatherPayload{
		UTCOffsetSeconds: *r.UTCOffsetSeconds,
		Daily:            block,
	}, nil
}

// requireAll dereferences a decoded array, rejecting an absent array or any null element.
func requireAll[T any](field string, in []*T) ([]T, error) {
	if in == nil {
		return nil, missing(field)
	}
	out := make([]T, len(in))
	for i, v := range in {
		if v == nil {
			return nil, &weather.DataShapeError{Field: fmt.Sprintf("%s[%d]", field, i), Reason: "null value"}
		}
		out[i] = *v
	}
	return out, nil
}

func missing(field string) error {
	return &weather.DataShapeError{Field: field, Reason: "missing"}
}
