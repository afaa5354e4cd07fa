package weather

import (
	"time"
)

// PlaceQuery identifies the place a caller asks about.
// City must be non-empty; CountryCode is an optional ISO 3166-1 alpha-2 code.
type PlaceQuery struct {
	City        string `json:"city" validate:"required"`
	CountryCode string `json:"country_code,omitempty" validate:"omitempty,len=2,alpha"`
}

// Coordinates is a geocoded place, produced by a Resolver and consumed by a Fetcher.
type Coordinates struct {
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	ResolvedCity    string  `json:"resolved_city"`
	ResolvedCountry string  `json:"resolved_country"`
}

// CurrentBlock holds the "current" section of an upstream payload.
type CurrentBlock struct {
	Time                string
	Temperature         float64
	RelativeHumidity    float64
	ApparentTemperature float64
	PressureMSL         float64
	WindSpeed           float64
	WeatherCode         int
}

// DailyBlock holds the parallel arrays of the "daily" section.
// All slices share an index; Time[i] is the ISO date of entry i.
type DailyBlock struct {
	Time                        []string
	WeatherCode                 []int
	TemperatureMax              []float64
	TemperatureMin              []float64
	ApparentTemperatureMax      []float64
	ApparentTemperatureMin      []float64
	PrecipitationProbabilityMax []float64
	WindSpeedMax                []float64
}

// RawWeatherPayload is the schema-checked upstream payload for one request.
// Exactly one of Current or Daily is set, depending on the requested mode.
type RawWeatherPayload struct {
	UTCOffsetSeconds int
	Current          *CurrentBlock
	Daily            *DailyBlock
}

// CurrentWeatherData is the normalized view of current conditions.
type CurrentWeatherData struct {
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    float64 `json:"humidity"`
	Pressure    float64 `json:"pressure"`
	WindSpeed   float64 `json:"wind_speed"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// DailyForecastData is one day of a forecast.
type DailyForecastData struct {
	Date                     string  `json:"date"`
	TempMin                  float64 `json:"temp_min"`
	TempMax                  float64 `json:"temp_max"`
	TempDay                  float64 `json:"temp_day"`
	TempNight                float64 `json:"temp_night"`
	Humidity                 float64 `json:"humidity"`
	WindSpeed                float64 `json:"wind_speed"`
	Description              string  `json:"description"`
	Icon                     string  `json:"icon"`
	PrecipitationProbability float64 `json:"precipitation_probability"`
}

// WeatherResponse is returned by GetCurrentWeather.
type WeatherResponse struct {
	City      string             `json:"city"`
	Country   string             `json:"country"`
	Timestamp time.Time          `json:"timestamp"`
	Weather   CurrentWeatherData `json:"weather"`
}

// ForecastResponse is returned by GetForecast.
// Forecast entries are in the provider's chronological order.
type ForecastResponse struct {
	City     string              `json:"city"`
	Country  string              `json:"country"`
	Forecast []DailyForecastData `json:"forecast"`
}
