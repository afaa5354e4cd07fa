package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/i474232898/cy-weather-api/internal/weather"
)

const (
	parisGeocoding = `{"results":[{"id":2988507,"name":"Paris","latitude":48.8566,"longitude":2.3522,"country_code":"FR"}]}`

	parisCurrent = `{
		"latitude": 48.86, "longitude": 2.35, "utc_offset_seconds": 3600,
		"current": {
			"time": "2026-01-13T10:00", "temperature_2m": 10.5, "relative_humidity_2m": 80,
			"apparent_temperature": 9.8, "pressure_msl": 1015.2, "wind_speed_10m": 3.4, "weather_code": 0
		}
	}`

	parisDaily = `{
		"utc_offset_seconds": 3600,
		"daily": {
			"time": ["2026-01-13","2026-01-14","2026-01-15","2026-01-16","2026-01-17","2026-01-18","2026-01-19"],
			"weather_code": [0, 1, 2, 3, 45, 61, 95],
			"temperature_2m_max": [10, 11, 12, 13, 9, 8, 7],
			"temperature_2m_min": [2, 3, 4, 5, 1, 0, -1],
			"apparent_temperature_max": [9, 10, 11, 12, 8, 7, 6],
			"apparent_temperature_min": [1, 2, 3, 4, 0, -1, -2],
			"precipitation_probability_max": [0, 10, 20, 30, 40, 60, 80],
			"wind_speed_10m_max": [3, 4, 5, 6, 7, 8, 9]
		}
	}`
)

// stub serves a fixed status and body and records every query it receives.
type stub struct {
	server  *httptest.Server
	hits    atomic.Int32
	queries chan map[string]string
}

func newStub(t *testing.T, status int, body string) *stub {
	t.Helper()
	s := &stub{queries: make(chan map[string]string, 16)}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		q := map[string]string{}
		for k := range r.URL.Query() {
			q[k] = r.URL.Query().Get(k)
		}
		select {
		case s.queries <- q:
		default:
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(s.server.Close)
	return s
}

func (s *stub) lastQuery(t *testing.T) map[string]string {
	t.Helper()
	select {
	case q := <-s.queries:
		return q
	default:
		t.Fatal("no request recorded")
		return nil
	}
}

func testConfig(t *testing.T, maxFailures uint32) HTTPClientConfig {
	logger := zaptest.NewLogger(t)
	return HTTPClientConfig{
		Client:  NewHTTPClient(2*time.Second, logger),
		Breaker: BreakerConfig{MaxConsecutiveFailures: maxFailures, OpenTimeout: time.Minute},
		Logger:  logger,
	}
}

func TestGeocodingResolver_Resolve(t *testing.T) {
	geo := newStub(t, http.StatusOK, parisGeocoding)
	resolver := NewGeocodingResolver(geo.server.URL, testConfig(t, 0))

	coords, err := resolver.Resolve(context.Background(), "Paris", "FR")
	require.NoError(t, err)

	assert.Equal(t, weather.Coordinates{
		Latitude:        48.8566,
		Longitude:       2.3522,
		ResolvedCity:    "Paris",
		ResolvedCountry: "FR",
	}, coords)

	q := geo.lastQuery(t)
	assert.Equal(t, "Paris", q["name"])
	assert.Equal(t, "1", q["count"])
	assert.Equal(t, "FR", q["country_code"])
}

func TestGeocodingResolver_OmitsEmptyCountry(t *testing.T) {
	geo := newStub(t, http.StatusOK, parisGeocoding)
	resolver := NewGeocodingResolver(geo.server.URL, testConfig(t, 0))

	_, err := resolver.Resolve(context.Background(), "Paris", "")
	require.NoError(t, err)

	_, present := geo.lastQuery(t)["country_code"]
	assert.False(t, present)
}

func TestGeocodingResolver_NotFound(t *testing.T) {
	for name, body := range map[string]string{
		"empty results":  `{"results":[]}`,
		"absent results": `{"generationtime_ms":0.5}`,
	} {
		t.Run(name, func(t *testing.T) {
			geo := newStub(t, http.StatusOK, body)
			resolver := NewGeocodingResolver(geo.server.URL, testConfig(t, 0))

			_, err := resolver.Resolve(context.Background(), "NopeTown", "")

			var notFound *weather.NotFoundError
			require.True(t, errors.As(err, &notFound), "got %v", err)
			assert.Equal(t, "NopeTown", notFound.City)
		})
	}
}

func TestGeocodingResolver_BadShapes(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing latitude", `{"results":[{"name":"Paris","longitude":2.35}]}`, "results[0].latitude"},
		{"missing longitude", `{"results":[{"name":"Paris","latitude":48.85}]}`, "results[0].longitude"},
		{"not json", `<html>oops</html>`, "geocoding"},
		{"string latitude", `{"results":[{"name":"Paris","latitude":"north","longitude":2.35}]}`, "geocoding"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geo := newStub(t, http.StatusOK, tt.body)
			resolver := NewGeocodingResolver(geo.server.URL, testConfig(t, 0))

			_, err := resolver.Resolve(context.Background(), "Paris", "")

			var shape *weather.DataShapeError
			require.True(t, errors.As(err, &shape), "got %v", err)
			assert.Equal(t, tt.field, shape.Field)
		})
	}
}

func TestGeocodingResolver_FallsBackToQueryName(t *testing.T) {
	geo := newStub(t, http.StatusOK, `{"results":[{"latitude":1.5,"longitude":2.5}]}`)
	resolver := NewGeocodingResolver(geo.server.URL, testConfig(t, 0))

	coords, err := resolver.Resolve(context.Background(), "Somewhere", "")
	require.NoError(t, err)
	assert.Equal(t, "Somewhere", coords.ResolvedCity)
	assert.Empty(t, coords.ResolvedCountry)
}

func TestGeocodingResolver_StatusError(t *testing.T) {
	geo := newStub(t, http.StatusInternalServerError, `{"error":true}`)
	resolver := NewGeocodingResolver(geo.server.URL, testConfig(t, 0))

	_, err := resolver.Resolve(context.Background(), "Paris", "")

	var status *weather.StatusError
	require.True(t, errors.As(err, &status), "got %v", err)
	assert.Equal(t, http.StatusInternalServerError, status.StatusCode)
}

func TestOpenMeteoProvider_FetchCurrent(t *testing.T) {
	wx := newStub(t, http.StatusOK, parisCurrent)
	provider := NewOpenMeteoProvider(wx.server.URL, testConfig(t, 0))

	payload, err := provider.FetchCurrent(context.Background(), weather.Coordinates{Latitude: 48.8566, Longitude: 2.3522})
	require.NoError(t, err)

	assert.Equal(t, 3600, payload.UTCOffsetSeconds)
	require.NotNil(t, payload.Current)
	assert.Equal(t, "2026-01-13T10:00", payload.Current.Time)
	assert.Equal(t, 10.5, payload.Current.Temperature)
	assert.Equal(t, 0, payload.Current.WeatherCode)
	assert.Nil(t, payload.Daily)

	q := wx.lastQuery(t)
	assert.Equal(t, "48.8566", q["latitude"])
	assert.Equal(t, "2.3522", q["longitude"])
	assert.Equal(t, "auto", q["timezone"])
	assert.Equal(t, strings.Join(currentFields, ","), q["current"])
	assert.Empty(t, q["daily"])
}

func TestOpenMeteoProvider_FetchForecast(t *testing.T) {
	wx := newStub(t, http.StatusOK, parisDaily)
	provider := NewOpenMeteoProvider(wx.server.URL, testConfig(t, 0))

	payload, err := provider.FetchForecast(context.Background(), weather.Coordinates{Latitude: 48.8566, Longitude: 2.3522})
	require.NoError(t, err)

	require.NotNil(t, payload.Daily)
	assert.Len(t, payload.Daily.Time, ForecastDays)
	assert.Equal(t, 95, payload.Daily.WeatherCode[6])

	q := wx.lastQuery(t)
	assert.Equal(t, strings.Join(dailyFields, ","), q["daily"])
	assert.Equal(t, "7", q["forecast_days"])
	assert.Equal(t, "auto", q["timezone"])
}

func TestOpenMeteoProvider_BadShapes(t *testing.T) {
	t.Run("missing current field", func(t *testing.T) {
		wx := newStub(t, http.StatusOK, `{"utc_offset_seconds":3600,"current":{"time":"2026-01-13T10:00","temperature_2m":1}}`)
		provider := NewOpenMeteoProvider(wx.server.URL, testConfig(t, 0))

		_, err := provider.FetchCurrent(context.Background(), weather.Coordinates{})

		var shape *weather.DataShapeError
		require.True(t, errors.As(err, &shape), "got %v", err)
		assert.Equal(t, "current.relative_humidity_2m", shape.Field)
	})

	t.Run("missing daily section", func(t *testing.T) {
		wx := newStub(t, http.StatusOK, `{"utc_offset_seconds":0}`)
		provider := NewOpenMeteoProvider(wx.server.URL, testConfig(t, 0))

		_, err := provider.FetchForecast(context.Background(), weather.Coordinates{})

		var shape *weather.DataShapeError
		require.True(t, errors.As(err, &shape), "got %v", err)
		assert.Equal(t, "daily", shape.Field)
	})

	t.Run("missing utc offset on current", func(t *testing.T) {
		body := strings.Replace(parisCurrent, `"utc_offset_seconds": 3600,`, "", 1)
		wx := newStub(t, http.StatusOK, body)
		provider := NewOpenMeteoProvider(wx.server.URL, testConfig(t, 0))

		_, err := provider.FetchCurrent(context.Background(), weather.Coordinates{})

		var shape *weather.DataShapeError
		require.True(t, errors.As(err, &shape), "got %v", err)
		assert.Equal(t, "utc_offset_seconds", shape.Field)
	})

	t.Run("null utc offset on daily", func(t *testing.T) {
		body := strings.Replace(parisDaily, `"utc_offset_seconds": 3600,`, `"utc_offset_seconds": null,`, 1)
		wx := newStub(t, http.StatusOK, body)
		provider := NewOpenMeteoProvider(wx.server.URL, testConfig(t, 0))

		_, err := provider.FetchForecast(context.Background(), weather.Coordinates{})

		var shape *weather.DataShapeError
		require.True(t, errors.As(err, &shape), "got %v", err)
		assert.Equal(t, "utc_offset_seconds", shape.Field)
	})

	t.Run("null daily element", func(t *testing.T) {
		body := strings.Replace(parisDaily, `"wind_speed_10m_max": [3, 4, 5`, `"wind_speed_10m_max": [3, null, 5`, 1)
		wx := newStub(t, http.StatusOK, body)
		provider := NewOpenMeteoProvider(wx.server.URL, testConfig(t, 0))

		_, err := provider.FetchForecast(context.Background(), weather.Coordinates{})

		var shape *weather.DataShapeError
		require.True(t, errors.As(err, &shape), "got %v", err)
		assert.Equal(t, "daily.wind_speed_10m_max[1]", shape.Field)
		assert.Equal(t, "null value", shape.Reason)
	})
}

func TestUpstream_BreakerOpensOnServerErrors(t *testing.T) {
	wx := newStub(t, http.StatusServiceUnavailable, `{}`)
	provider := NewOpenMeteoProvider(wx.server.URL, testConfig(t, 2))

	for i := 0; i < 2; i++ {
		_, err := provider.FetchCurrent(context.Background(), weather.Coordinates{})
		var status *weather.StatusError
		require.True(t, errors.As(err, &status), "call %d: got %v", i, err)
	}

	_, err := provider.FetchCurrent(context.Background(), weather.Coordinates{})
	assert.ErrorIs(t, err, errCircuitOpen)
	assert.Equal(t, int32(2), wx.hits.Load(), "open circuit must not reach the upstream")
}

func TestUpstream_ClientErrorsDoNotTripBreaker(t *testing.T) {
	geo := newStub(t, http.StatusBadRequest, `{"error":true,"reason":"bad"}`)
	resolver := NewGeocodingResolver(geo.server.URL, testConfig(t, 2))

	for i := 0; i < 5; i++ {
		_, err := resolver.Resolve(context.Background(), "Paris", "")
		var status *weather.StatusError
		require.True(t, errors.As(err, &status), "call %d: got %v", i, err)
		assert.Equal(t, http.StatusBadRequest, status.StatusCode)
	}
	assert.Equal(t, int32(5), geo.hits.Load())
}

func TestUpstream_NoClient(t *testing.T) {
	provider := NewOpenMeteoProvider("http://127.0.0.1:1", HTTPClientConfig{})

	_, err := provider.FetchCurrent(context.Background(), weather.Coordinates{})
	assert.ErrorIs(t, err, errNoHTTPClient)
}

// ---- End-to-end through the service ----

func newStack(t *testing.T, geo, wx *stub) *weather.Service {
	cfg := testConfig(t, 0)
	return weather.NewService(
		NewGeocodingResolver(geo.server.URL, cfg),
		NewOpenMeteoProvider(wx.server.URL, cfg),
		zaptest.NewLogger(t),
	)
}

func TestService_CurrentWeatherForParis(t *testing.T) {
	geo := newStub(t, http.StatusOK, parisGeocoding)
	wx := newStub(t, http.StatusOK, parisCurrent)
	svc := newStack(t, geo, wx)

	out, err := svc.GetCurrentWeather(context.Background(), "Paris", "FR")
	require.NoError(t, err)

	assert.Equal(t, "Paris", out.City)
	assert.Equal(t, "FR", out.Country)
	assert.Equal(t, "Ciel dégagé", out.Weather.Description)
	assert.Equal(t, "01d", out.Weather.Icon)
	assert.True(t, out.Timestamp.Equal(time.Date(2026, 1, 13, 9, 0, 0, 0, time.UTC)))
}

func TestService_WeatherServerErrorIsNotRetried(t *testing.T) {
	geo := newStub(t, http.StatusOK, parisGeocoding)
	wx := newStub(t, http.StatusInternalServerError, `{"error":true}`)
	svc := newStack(t, geo, wx)

	_, err := svc.GetCurrentWeather(context.Background(), "Paris", "FR")

	var transport *weather.UpstreamTransportError
	require.True(t, errors.As(err, &transport), "got %v", err)
	assert.Equal(t, int32(1), wx.hits.Load())
}

func TestService_UnknownCity(t *testing.T) {
	geo := newStub(t, http.StatusOK, `{"results":[]}`)
	wx := newStub(t, http.StatusOK, parisCurrent)
	svc := newStack(t, geo, wx)

	_, err := svc.GetForecast(context.Background(), "NopeTown", "")

	var notFound *weather.NotFoundError
	require.True(t, errors.As(err, &notFound), "got %v", err)
	assert.Zero(t, wx.hits.Load())
}

func TestService_ForecastWithBadDate(t *testing.T) {
	geo := newStub(t, http.StatusOK, parisGeocoding)
	wx := newStub(t, http.StatusOK, strings.Replace(parisDaily, `"2026-01-19"`, `"tomorrow"`, 1))
	svc := newStack(t, geo, wx)

	out, err := svc.GetForecast(context.Background(), "Paris", "FR")
	assert.Nil(t, out)

	var shape *weather.DataShapeError
	require.True(t, errors.As(err, &shape), "got %v", err)
	assert.Equal(t, "daily.time[6]", shape.Field)
}

func TestService_SevenDayForecast(t *testing.T) {
	geo := newStub(t, http.StatusOK, parisGeocoding)
	wx := newStub(t, http.StatusOK, parisDaily)
	svc := newStack(t, geo, wx)

	out, err := svc.GetForecast(context.Background(), "Paris", "FR")
	require.NoError(t, err)

	require.Len(t, out.Forecast, 7)
	assert.Equal(t, "2026-01-13", out.Forecast[0].Date)
	assert.Equal(t, "Orage", out.Forecast[6].Description)
	assert.Equal(t, "11d", out.Forecast[6].Icon)
}
