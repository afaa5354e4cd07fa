package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

const namespace = "cy_weather"

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"method", "path"})

	httpRequestsInProgress = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "inprogress",
		Help:      "HTTP requests currently being served",
	}, []string{"method"})

	upstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "upstream",
		Name:      "requests_total",
		Help:      "Outbound calls to geocoding and weather endpoints",
	}, []string{"endpoint", "outcome"})

	upstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "upstream",
		Name:      "request_duration_seconds",
		Help:      "Latency of outbound calls in seconds",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"endpoint"})

	upstreamReady = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "upstream",
		Name:      "ready",
		Help:      "1 when the last upstream probe succeeded, 0 otherwise",
	})
)

// Upstream call outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeStatus   = "status_error"
	OutcomeError    = "transport_error"
	OutcomeRejected = "circuit_open"
)

// ObserveUpstream records one outbound call.
func ObserveUpstream(endpoint, outcome string, elapsed time.Duration) {
	upstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	upstreamRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// SetUpstreamReady publishes the result of the latest upstream probe.
func SetUpstreamReady(ok bool) {
	if ok {
		upstreamReady.Set(1)
		return
	}
	upstreamReady.Set(0)
}

// Middleware records request metrics. The /metrics route itself is skipped.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}

		method := c.Method()
		start := time.Now()
		httpRequestsInProgress.WithLabelValues(method).Inc()
		defer httpRequestsInProgress.WithLabelValues(method).Dec()

		err := c.Next()

		// Unmatched routes are grouped to keep label cardinality bounded.
		path := c.Route().Path
		if path == "" || path == "/" {
			path = "unmatched"
		}
		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler returns a Fiber handler serving the Prometheus exposition format.
func Handler() fiber.Handler {
	handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	}
}
