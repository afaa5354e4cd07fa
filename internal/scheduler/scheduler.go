package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/i474232898/cy-weather-api/internal/metrics"
	"github.com/i474232898/cy-weather-api/internal/weather"
)

// Status is the outcome of the latest upstream probe.
type Status struct {
	Ready     bool      `json:"ready"`
	CheckedAt time.Time `json:"checked_at,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Prober periodically geocodes a known city to report whether the geocoding
// upstream is reachable. Results are not kept beyond the latest status.
type Prober struct {
	scheduler *gocron.Scheduler
	resolver  weather.Resolver
	city      string
	interval  time.Duration
	timeout   time.Duration
	logger    *zap.Logger

	mu     sync.RWMutex
	status Status
}

// New creates a new Prober.
func New(resolver weather.Resolver, city string, interval, timeout time.Duration, logger *zap.Logger) *Prober {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prober{
		scheduler: gocron.NewScheduler(time.UTC),
		resolver:  resolver,
		city:      city,
		interval:  interval,
		timeout:   timeout,
		logger:    logger,
	}
}

// Start schedules the probe (first run immediately) and starts the underlying scheduler.
func (p *Prober) Start() error {
	interval := p.interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	_, err := p.scheduler.Every(interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()
		p.Check(ctx)
	})
	if err != nil {
		return err
	}

	p.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future probes.
func (p *Prober) Stop() {
	if p.scheduler != nil {
		p.scheduler.Stop()
	}
}

// Check runs one probe and records its outcome.
func (p *Prober) Check(ctx context.Context) Status {
	st := Status{Ready: true, CheckedAt: time.Now().UTC()}

	if _, err := p.resolver.Resolve(ctx, p.city, ""); err != nil {
		st.Ready = false
		st.Error = err.Error()
		p.logger.Warn("upstream probe failed", zap.String("city", p.city), zap.Error(err))
	} else {
		p.logger.Debug("upstream probe succeeded", zap.String("city", p.city))
	}

	p.mu.Lock()
	p.status = st
	p.mu.Unlock()

	metrics.SetUpstreamReady(st.Ready)
	return st
}

// Status returns the latest probe outcome. Before the first probe it reports not ready.
func (p *Prober) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}
