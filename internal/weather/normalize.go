package weather

import (
	"fmt"
	"math"
	"time"
)

// Open-Meteo reports local times without seconds; older payloads carry them.
var timeLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05"}

const dateLayout = "2006-01-02"

// NormalizeCurrent turns the "current" section of a payload into a WeatherResponse.
func NormalizeCurrent(payload RawWeatherPayload, city, country string) (*WeatherResponse, error) {
	cur := payload.Current
	if cur == nil {
		return nil, &DataShapeError{Field: "current", Reason: "missing section"}
	}

	ts, err := parseLocalTime(cur.Time, payload.UTCOffsetSeconds)
	if err != nil {
		return nil, &DataShapeError{Field: "current.time", Err: err}
	}

	fields := []struct {
		name string
		v    float64
	}{
		{"current.temperature_2m", cur.Temperature},
		{"current.apparent_temperature", cur.ApparentTemperature},
		{"current.relative_humidity_2m", cur.RelativeHumidity},
		{"current.pressure_msl", cur.PressureMSL},
		{"current.wind_speed_10m", cur.WindSpeed},
	}
	for _, f := range fields {
		if err := checkFinite(f.name, f.v); err != nil {
			return nil, err
		}
	}

	return &WeatherResponse{
		City:      city,
		Country:   country,
		Timestamp: ts,
		Weather: CurrentWeatherData{
			Temperature: cur.Temperature,
			FeelsLike:   cur.ApparentTemperature,
			Humidity:    cur.RelativeHumidity,
			Pressure:    cur.PressureMSL,
			WindSpeed:   cur.WindSpeed,
			Description: Describe(cur.WeatherCode),
			Icon:        IconFor(cur.WeatherCode),
		},
	}, nil
}

// NormalizeForecast turns the "daily" parallel arrays into a ForecastResponse,
// one entry per index, in input order. Arrays of unequal length are rejected.
//
// temp_day and temp_night come from the apparent temperature max/min, not from
// a real day/night split.
func NormalizeForecast(payload RawWeatherPayload, city, country string) (*ForecastResponse, error) {
	d := payload.Daily
	if d == nil {
		return nil, &DataShapeError{Field: "daily", Reason: "missing section"}
	}

	n := len(d.Time)
	lengths := []struct {
		name string
		len  int
	}{
		{"daily.weather_code", len(d.WeatherCode)},
		{"daily.temperature_2m_max", len(d.TemperatureMax)},
		{"daily.temperature_2m_min", len(d.TemperatureMin)},
		{"daily.apparent_temperature_max", len(d.ApparentTemperatureMax)},
		{"daily.apparent_temperature_min", len(d.ApparentTemperatureMin)},
		{"daily.precipitation_probability_max", len(d.PrecipitationProbabilityMax)},
		{"daily.wind_speed_10m_max", len(d.WindSpeedMax)},
	}
	for _, l := range lengths {
		if l.len != n {
			return nil, &DataShapeError{
				Field:  l.name,
				Reason: fmt.Sprintf("length %d does not match daily.time length %d", l.len, n),
			}
		}
	}

	forecast := make([]DailyForecastData, 0, n)
	for i := 0; i < n; i++ {
		if _, err := time.Parse(dateLayout, d.Time[i]); err != nil {
			return nil, &DataShapeError{Field: fmt.Sprintf("daily.time[%d]", i), Reason: "not an ISO date", Err: err}
		}
		day := DailyForecastData{
			Date:                     d.Time[i],
			TempMin:                  d.TemperatureMin[i],
			TempMax:                  d.TemperatureMax[i],
			TempDay:                  d.ApparentTemperatureMax[i],
			TempNight:                d.ApparentTemperatureMin[i],
			WindSpeed:                d.WindSpeedMax[i],
			PrecipitationProbability: d.PrecipitationProbabilityMax[i],
			Description:              Describe(d.WeatherCode[i]),
			Icon:                     IconFor(d.WeatherCode[i]),
		}
		if err := checkFiniteDay(i, day); err != nil {
			return nil, err
		}
		forecast = append(forecast, day)
	}

	return &ForecastResponse{
		City:     city,
		Country:  country,
		Forecast: forecast,
	}, nil
}

func parseLocalTime(s string, offsetSeconds int) (time.Time, error) {
	loc := time.UTC
	if offsetSeconds != 0 {
		loc = time.FixedZone("", offsetSeconds)
	}
	var lastErr error
	for _, layout := range timeLayouts {
		ts, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func checkFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &DataShapeError{Field: field, Reason: "non-finite value"}
	}
	return nil
}

func checkFiniteDay(i int, day DailyForecastData) error {
	values := []struct {
		name string
		v    float64
	}{
		{"temperature_2m_min", day.TempMin},
		{"temperature_2m_max", day.TempMax},
		{"apparent_temperature_max", day.TempDay},
		{"apparent_temperature_min", day.TempNight},
		{"wind_speed_10m_max", day.WindSpeed},
		{"precipitation_probability_max", day.PrecipitationProbability},
	}
	for _, f := range values {
		if err := checkFinite(fmt.Sprintf("daily.%s[%d]", f.name, i), f.v); err != nil {
			return err
		}
	}
	return nil
}
