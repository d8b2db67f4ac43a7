package metrics

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// GaugeReader samples host-level utilisation.
type GaugeReader interface {
	Read(ctx context.Context) (SystemGauges, error)
}

// Registry holds the process-wide request, query and cache counters.
// It is safe for concurrent use.
type Registry struct {
	mu         sync.Mutex
	calls      int64
	avgLatency float64
	errorRate  float64

	queries     atomic.Int64
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64

	startTime time.Time
	gauges    GaugeReader
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*Registry)

func WithGaugeReader(g GaugeReader) Option {
	return func(r *Registry) {
		r.gauges = g
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

func NewRegistry(logger *slog.Logger, opts ...Option) *Registry {
	r := &Registry{
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.startTime = r.now()
	return r
}

// RecordCall folds one request into the running latency and error-rate means.
func (r *Registry) RecordCall(d time.Duration, statusCode int) {
	var failed float64
	if statusCode >= 400 {
		failed = 1
	}

	r.mu.Lock()
	r.calls++
	n := float64(r.calls)
	r.avgLatency = (r.avgLatency*(n-1) + d.Seconds()) / n
	r.errorRate = (r.errorRate*(n-1) + failed) / n
	r.mu.Unlock()
}

func (r *Registry) RecordQuery() {
	r.queries.Add(1)
}

func (r *Registry) RecordCacheHit() {
	r.cacheHits.Add(1)
}

func (r *Registry) RecordCacheMiss() {
	r.cacheMisses.Add(1)
}

func (r *Registry) CacheHitRatio() float64 {
	return hitRatio(r.cacheHits.Load(), r.cacheMisses.Load())
}

// Counters returns the in-memory counters without touching the host.
func (r *Registry) Counters() Snapshot {
	r.mu.Lock()
	calls, avg, errRate := r.calls, r.avgLatency, r.errorRate
	r.mu.Unlock()

	now := r.now()
	return Snapshot{
		Calls:           calls,
		AvgResponseTime: avg,
		ErrorRate:       errRate,
		Queries:         r.queries.Load(),
		CacheHits:       r.cacheHits.Load(),
		CacheMisses:     r.cacheMisses.Load(),
		StartTime:       r.startTime,
		Uptime:          now.Sub(r.startTime),
		Timestamp:       now,
	}
}

// Snapshot returns the counters together with live host gauges. Gauges that
// cannot be read are reported as zero with System.Available set to false.
func (r *Registry) Snapshot(ctx context.Context) Snapshot {
	s := r.Counters()
	if r.gauges == nil {
		return s
	}

	gauges, err := r.gauges.Read(ctx)
	if err != nil {
		r.logger.Warn("failed to read host gauges", slog.String("error", err.Error()))
		gauges.Available = false
	}
	s.System = gauges
	return s
}
