package cache

import (
	"context"
	"log/slog"
	"time"

	"smarthaul/internal/config"
)

const DefaultTTL = 300 * time.Second

const (
	KindRemote = "redis"
	KindLocal  = "in-memory"
)

// Backend is a string key-value store with per-entry expiry. Implementations
// swallow their own failures: absence and false are the only error signals.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) bool
	Delete(ctx context.Context, key string) bool
	Clear(ctx context.Context) bool
	Kind() string
	Close() error
}

// New picks the backend once: Redis when it is enabled and answers a ping
// within the connect timeout, the in-process cache otherwise. The choice is
// never revisited.
func New(ctx context.Context, cfg *config.CacheConfig, recorder HitRecorder, logger *slog.Logger) (*Facade, error) {
	if cfg.RemoteEnabled {
		remote, err := DialRemote(ctx, cfg, logger)
		if err == nil {
			logger.Info("cache backend selected", slog.String("backend", KindRemote))
			return NewFacade(remote, recorder, cfg.DefaultTTL), nil
		}
		logger.Warn("remote cache unavailable, falling back to in-memory cache",
			slog.String("error", err.Error()))
	}

	local, err := NewLocal(cfg.LocalMaxSizePow2)
	if err != nil {
		return nil, err
	}
	logger.Info("cache backend selected", slog.String("backend", KindLocal))
	return NewFacade(local, recorder, cfg.DefaultTTL), nil
}
