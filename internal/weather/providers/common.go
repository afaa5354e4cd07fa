package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/i474232898/cy-weather-api/internal/metrics"
	"github.com/i474232898/cy-weather-api/internal/weather"
)

const userAgent = "cy-weather-api/0.1"

// BreakerConfig controls when an upstream circuit opens.
type BreakerConfig struct {
	// MaxConsecutiveFailures opens the circuit once reached (0 = 5).
	MaxConsecutiveFailures uint32
	// OpenTimeout is how long the circuit stays open before a trial call (0 = 30s).
	OpenTimeout time.Duration
}

// HTTPClientConfig bundles the shared HTTP client and resilience settings.
type HTTPClientConfig struct {
	Client  *resty.Client
	Breaker BreakerConfig
	Logger  *zap.Logger
}

var (
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

// NewHTTPClient builds the resty client shared by all upstreams. Retries stay
// disabled: failures surface to the caller on the first attempt.
func NewHTTPClient(timeout time.Duration, logger *zap.Logger) *resty.Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json").
		SetRetryCount(0).
		SetLogger(logger.Sugar())
}

// upstream issues GET requests to one endpoint behind its own circuit breaker.
type upstream struct {
	name    string
	baseURL string
	client  *resty.Client
	circuit *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// reply is what a call through the breaker yields. 4xx answers are replies,
// not breaker failures, so a run of unknown cities cannot open the circuit.
type reply struct {
	status int
	body   []byte
}

func newUpstream(name, baseURL string, cfg HTTPClientConfig) *upstream {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxFailures := cfg.Breaker.MaxConsecutiveFailures
	if maxFailures == 0 {
		maxFailures = 5
	}
	openTimeout := cfg.Breaker.OpenTimeout
	if openTimeout <= 0 {
		openTimeout = 30 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("upstream", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &upstream{
		name:    name,
		baseURL: baseURL,
		client:  cfg.Client,
		circuit: cb,
		logger:  logger,
	}
}

// get performs one GET with the given query and returns the 2xx body.
// Transport errors are returned unmodified and non-2xx answers become
// *weather.StatusError. There is no retry.
func (u *upstream) get(ctx context.Context, params map[string]string) ([]byte, error) {
	if u.client == nil {
		return nil, errNoHTTPClient
	}

	start := time.Now()
	result, err := u.circuit.Execute(func() (interface{}, error) {
		resp, err := u.client.R().
			SetContext(ctx).
			SetQueryParams(params).
			Get(u.baseURL)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode() >= http.StatusInternalServerError || resp.StatusCode() == http.StatusTooManyRequests {
			return nil, &weather.StatusError{StatusCode: resp.StatusCode(), URL: u.baseURL}
		}
		return reply{status: resp.StatusCode(), body: resp.Body()}, nil
	})
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.ObserveUpstream(u.name, metrics.OutcomeRejected, elapsed)
			return nil, fmt.Errorf("%s: %w: %v", u.name, errCircuitOpen, err)
		}
		var statusErr *weather.StatusError
		if errors.As(err, &statusErr) {
			metrics.ObserveUpstream(u.name, metrics.OutcomeStatus, elapsed)
		} else {
			metrics.ObserveUpstream(u.name, metrics.OutcomeError, elapsed)
		}
		u.logger.Debug("upstream call failed",
			zap.String("upstream", u.name),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return nil, err
	}

	r, ok := result.(reply)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	if r.status < 200 || r.status >= 300 {
		metrics.ObserveUpstream(u.name, metrics.OutcomeStatus, elapsed)
		return nil, &weather.StatusError{StatusCode: r.status, URL: u.baseURL}
	}

	metrics.ObserveUpstream(u.name, metrics.OutcomeOK, elapsed)
	u.logger.Debug("upstream call succeeded",
		zap.String("upstream", u.name),
		zap.Int("status", r.status),
		zap.Duration("elapsed", elapsed))
	return r.body, nil
}

// decode unmarshals a body into target, reporting failures as *weather.DataShapeError.
func decode(source string, body []byte, target any) error {
	if err := json.Unmarshal(body, target); err != nil {
		return &weather.DataShapeError{Field: source, Reason: "undecodable body", Err: err}
	}
	return nil
}
