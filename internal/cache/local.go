package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// Local is the in-process fallback. Capacity is a byte budget over keys and
// values; ristretto evicts by admission policy once it is exhausted.
type Local struct {
	cache *ristretto.Cache
	now   func() time.Time
}

var ErrInvalidCapacity = errors.New("local cache size exponent out of range")

// NewLocal sizes the cache to 2^maxSizePow2 bytes; the exponent must be in [0, 62].
func NewLocal(maxSizePow2 int) (*Local, error) {
	if maxSizePow2 < 0 || maxSizePow2 > 62 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, maxSizePow2)
	}
	maxCost := max(1, int64(1)<<maxSizePow2)
	numCounters := max(1, maxCost/100) // ~100 bytes per entry estimate

	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: numCounters,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create local cache: %w", err)
	}
	return &Local{cache: c, now: time.Now}, nil
}

// Get reports an entry only while now is before its expiry. An expired entry
// is removed by the lookup that finds it.
func (l *Local) Get(_ context.Context, key string) (string, bool) {
	val, found := l.cache.Get(key)
	if !found {
		return "", false
	}
	e, ok := val.(entry)
	if !ok {
		return "", false
	}
	if !l.now().Before(e.expiresAt) {
		l.cache.Del(key)
		return "", false
	}
	return e.value, true
}

func (l *Local) Set(_ context.Context, key, value string, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	cost := int64(len(key) + len(value))
	ok := l.cache.SetWithTTL(key, entry{value: value, expiresAt: l.now().Add(ttl)}, cost, ttl)
	// Make the write visible to the next Get.
	l.cache.Wait()
	return ok
}

func (l *Local) Delete(_ context.Context, key string) bool {
	l.cache.Del(key)
	return true
}

func (l *Local) Clear(context.Context) bool {
	l.cache.Clear()
	return true
}

func (l *Local) Kind() string {
	return KindLocal
}

func (l *Local) Close() error {
	l.cache.Close()
	return nil
}
