package cache

import (
	"context"
	"time"
)

type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) bool
}

// Wrap memoises op under "name:arg". Failed calls are not cached and their
// error is returned as is; a failed Set only costs a recomputation later.
func Wrap(store Store, name string, ttl time.Duration, op func(context.Context, string) (string, error)) func(context.Context, string) (string, error) {
	return func(ctx context.Context, arg string) (string, error) {
		key := name + ":" + arg
		if val, ok := store.Get(ctx, key); ok {
			return val, nil
		}

		val, err := op(ctx, arg)
		if err != nil {
			return val, err
		}
		store.Set(ctx, key, val, ttl)
		return val, nil
	}
}
