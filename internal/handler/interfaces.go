package handler

import (
	"context"
	"time"

	"smarthaul/internal/database"
	"smarthaul/internal/metrics"
	"smarthaul/internal/ratelimit"
)

//go:generate go tool mockery

type MetricsSource interface {
	Snapshot(ctx context.Context) metrics.Snapshot
}

// Cache is the facade as the handler uses it: Get and Set back the metrics
// memoisation, Ping the health check.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) bool
	Ping(ctx context.Context) bool
	Clear(ctx context.Context) bool
	Kind() string
}

type RateLimitReporter interface {
	Status() ratelimit.Status
}

type Database interface {
	Ping(ctx context.Context) error
	Stats() database.PoolStats
}
