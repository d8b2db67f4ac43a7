package cache

import (
	"context"
	"time"
)

const (
	pingKey   = "health_check"
	pingValue = "ok"
	pingTTL   = 10 * time.Second
)

type HitRecorder interface {
	RecordCacheHit()
	RecordCacheMiss()
}

// Facade is the cache handlers talk to. It applies the default TTL and counts
// every lookup as a hit or a miss.
type Facade struct {
	backend    Backend
	recorder   HitRecorder
	defaultTTL time.Duration
}

func NewFacade(backend Backend, recorder HitRecorder, defaultTTL time.Duration) *Facade {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Facade{
		backend:    backend,
		recorder:   recorder,
		defaultTTL: defaultTTL,
	}
}

func (f *Facade) Get(ctx context.Context, key string) (string, bool) {
	val, ok := f.backend.Get(ctx, key)
	if ok {
		f.recorder.RecordCacheHit()
	} else {
		f.recorder.RecordCacheMiss()
	}
	return val, ok
}

// Set stores value for ttl, or for the default TTL when ttl is zero.
func (f *Facade) Set(ctx context.Context, key, value string, ttl time.Duration) bool {
	if ttl == 0 {
		ttl = f.defaultTTL
	}
	return f.backend.Set(ctx, key, value, ttl)
}

// Ping round-trips a sentinel entry through the backend. It bypasses the
// hit and miss counters so health polling does not skew the hit ratio.
func (f *Facade) Ping(ctx context.Context) bool {
	if !f.backend.Set(ctx, pingKey, pingValue, pingTTL) {
		return false
	}
	val, ok := f.backend.Get(ctx, pingKey)
	return ok && val == pingValue
}

func (f *Facade) Delete(ctx context.Context, key string) bool {
	return f.backend.Delete(ctx, key)
}

func (f *Facade) Clear(ctx context.Context) bool {
	return f.backend.Clear(ctx)
}

func (f *Facade) Kind() string {
	return f.backend.Kind()
}

func (f *Facade) Close() error {
	return f.backend.Close()
}
