package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"smarthaul/internal/config"
)

const clearBatchSize = 500

// Remote stores entries in Redis under a key prefix and relies on Redis
// expiry. Per-call failures are logged (sampled) and reported as a miss or
// false.
type Remote struct {
	client   *redis.Client
	prefix   string
	logger   *slog.Logger
	errorLog *rate.Sometimes
}

// DialRemote connects to the configured Redis and verifies it with a ping.
func DialRemote(ctx context.Context, cfg *config.CacheConfig, logger *slog.Logger) (*Remote, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	if cfg.ConnectTimeout > 0 {
		opts.DialTimeout = cfg.ConnectTimeout
	}

	client := redis.NewClient(opts)

	pingCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return NewRemoteFromClient(client, cfg.KeyPrefix, logger), nil
}

func NewRemoteFromClient(client *redis.Client, prefix string, logger *slog.Logger) *Remote {
	return &Remote{
		client:   client,
		prefix:   prefix,
		logger:   logger,
		errorLog: &rate.Sometimes{First: 3, Interval: 10 * time.Second},
	}
}

func (r *Remote) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, r.prefix+key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logError("get", key, err)
		}
		return "", false
	}
	return val, true
}

func (r *Remote) Set(ctx context.Context, key, value string, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	if err := r.client.Set(ctx, r.prefix+key, value, ttl).Err(); err != nil {
		r.logError("set", key, err)
		return false
	}
	return true
}

// Delete reports true whether or not the key existed.
func (r *Remote) Delete(ctx context.Context, key string) bool {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		r.logError("delete", key, err)
		return false
	}
	return true
}

// Clear removes every key under the prefix. Keys written concurrently with
// the scan may survive.
func (r *Remote) Clear(ctx context.Context) bool {
	iter := r.client.Scan(ctx, 0, r.prefix+"*", clearBatchSize).Iterator()

	batch := make([]string, 0, clearBatchSize)
	flush := func() bool {
		if len(batch) == 0 {
			return true
		}
		if err := r.client.Del(ctx, batch...).Err(); err != nil {
			r.logError("clear", r.prefix+"*", err)
			return false
		}
		batch = batch[:0]
		return true
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) >= clearBatchSize && !flush() {
			return false
		}
	}
	if err := iter.Err(); err != nil {
		r.logError("clear", r.prefix+"*", err)
		return false
	}
	return flush()
}

func (r *Remote) Kind() string {
	return KindRemote
}

func (r *Remote) Close() error {
	return r.client.Close()
}

func (r *Remote) logError(op, key string, err error) {
	r.errorLog.Do(func() {
		r.logger.Error("remote cache operation failed",
			slog.String("op", op),
			slog.String("key", key),
			slog.String("error", err.Error()))
	})
}
