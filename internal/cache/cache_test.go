package cache_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthaul/internal/cache"
	"smarthaul/internal/config"
	"smarthaul/internal/metrics"
)

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func newLocalFacade(t *testing.T) (*cache.Facade, *metrics.Registry) {
	t.Helper()

	local, err := cache.NewLocal(20) // 2^20 = 1MB
	require.NoError(t, err)

	reg := metrics.NewRegistry(newLogger())
	f := cache.NewFacade(local, reg, cache.DefaultTTL)
	t.Cleanup(func() { _ = f.Close() })
	return f, reg
}

func TestNewLocal_ZeroSize(t *testing.T) {
	l, err := cache.NewLocal(0) // 2^0 = 1 byte (min)
	require.NoError(t, err)
	require.NotNil(t, l)
	defer l.Close()
}

func TestNewLocal_RejectsOutOfRangeSize(t *testing.T) {
	for _, pow2 := range []int{-1, 63, 64} {
		_, err := cache.NewLocal(pow2)
		assert.ErrorIs(t, err, cache.ErrInvalidCapacity, "pow2=%d", pow2)
	}
}

func TestFacade_PingSkipsHitAccounting(t *testing.T) {
	f, reg := newLocalFacade(t)
	ctx := context.Background()

	for range 5 {
		require.True(t, f.Ping(ctx))
	}

	s := reg.Counters()
	assert.Zero(t, s.CacheHits)
	assert.Zero(t, s.CacheMisses)
	assert.Zero(t, reg.CacheHitRatio())
}

func TestFacade_RoundTrip(t *testing.T) {
	f, reg := newLocalFacade(t)
	ctx := context.Background()

	require.True(t, f.Set(ctx, "shipment:42", `{"status":"in_transit"}`, time.Minute))

	val, ok := f.Get(ctx, "shipment:42")
	assert.True(t, ok)
	assert.Equal(t, `{"status":"in_transit"}`, val)

	s := reg.Counters()
	assert.Equal(t, int64(1), s.CacheHits)
	assert.Zero(t, s.CacheMisses)
}

func TestFacade_MissingKeyCountsMiss(t *testing.T) {
	f, reg := newLocalFacade(t)

	val, ok := f.Get(context.Background(), "nonexistent")
	assert.False(t, ok)
	assert.Empty(t, val)
	assert.Equal(t, int64(1), reg.Counters().CacheMisses)
}

func TestFacade_DefaultTTL(t *testing.T) {
	f, _ := newLocalFacade(t)
	ctx := context.Background()

	require.True(t, f.Set(ctx, "driver:9", "on-shift", 0))

	val, ok := f.Get(ctx, "driver:9")
	assert.True(t, ok)
	assert.Equal(t, "on-shift", val)
}

func TestFacade_UpdateExisting(t *testing.T) {
	f, _ := newLocalFacade(t)
	ctx := context.Background()

	f.Set(ctx, "route:1", "first", time.Minute)
	f.Set(ctx, "route:1", "second", time.Minute)

	val, ok := f.Get(ctx, "route:1")
	assert.True(t, ok)
	assert.Equal(t, "second", val)
}

func TestFacade_Expiry(t *testing.T) {
	f, reg := newLocalFacade(t)
	ctx := context.Background()

	require.True(t, f.Set(ctx, "eta:5", "14:30", time.Second))
	time.Sleep(1100 * time.Millisecond)

	_, ok := f.Get(ctx, "eta:5")
	assert.False(t, ok)
	assert.Equal(t, int64(1), reg.Counters().CacheMisses)
}

func TestFacade_DeleteIsIdempotent(t *testing.T) {
	f, _ := newLocalFacade(t)
	ctx := context.Background()

	f.Set(ctx, "vehicle:3", "idle", time.Minute)
	assert.True(t, f.Delete(ctx, "vehicle:3"))
	assert.True(t, f.Delete(ctx, "vehicle:3"))
	assert.True(t, f.Delete(ctx, "never-set"))

	_, ok := f.Get(ctx, "vehicle:3")
	assert.False(t, ok)
}

func TestFacade_Clear(t *testing.T) {
	f, _ := newLocalFacade(t)
	ctx := context.Background()

	entries := map[string]string{
		"code1": "depot-1",
		"code2": "depot-2",
		"code3": "depot-3",
	}
	for k, v := range entries {
		f.Set(ctx, k, v, time.Minute)
	}

	assert.True(t, f.Clear(ctx))

	for k := range entries {
		_, ok := f.Get(ctx, k)
		assert.False(t, ok, "key %q should be gone", k)
	}
	assert.Equal(t, cache.KindLocal, f.Kind())
}

func TestNew_FallsBackToLocal(t *testing.T) {
	cfg := &config.CacheConfig{
		RemoteEnabled:    true,
		RedisURL:         "redis://127.0.0.1:1/0",
		DefaultTTL:       cache.DefaultTTL,
		ConnectTimeout:   200 * time.Millisecond,
		LocalMaxSizePow2: 20,
	}

	f, err := cache.New(context.Background(), cfg, metrics.NewRegistry(newLogger()), newLogger())
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, cache.KindLocal, f.Kind())

	ctx := context.Background()
	require.True(t, f.Set(ctx, "k", "v", time.Minute))
	val, ok := f.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", val)
}

func TestNew_InvalidRedisURLFallsBack(t *testing.T) {
	cfg := &config.CacheConfig{
		RemoteEnabled:    true,
		RedisURL:         "not-a-url",
		LocalMaxSizePow2: 10,
	}

	f, err := cache.New(context.Background(), cfg, metrics.NewRegistry(newLogger()), newLogger())
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, cache.KindLocal, f.Kind())
}

func TestNew_RemoteDisabled(t *testing.T) {
	cfg := &config.CacheConfig{RemoteEnabled: false, LocalMaxSizePow2: 10}

	f, err := cache.New(context.Background(), cfg, metrics.NewRegistry(newLogger()), newLogger())
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, cache.KindLocal, f.Kind())
}

func TestRemote_UnreachableStoreIsSwallowed(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	remote := cache.NewRemoteFromClient(client, "test:", newLogger())
	defer remote.Close()

	reg := metrics.NewRegistry(newLogger())
	f := cache.NewFacade(remote, reg, cache.DefaultTTL)
	ctx := context.Background()

	assert.False(t, f.Set(ctx, "k", "v", time.Minute))
	_, ok := f.Get(ctx, "k")
	assert.False(t, ok)
	assert.False(t, f.Delete(ctx, "k"))
	assert.False(t, f.Clear(ctx))
	assert.False(t, f.Ping(ctx))

	assert.Equal(t, int64(1), reg.Counters().CacheMisses)
	assert.Equal(t, cache.KindRemote, f.Kind())
}

func TestWrap_MemoisesSuccess(t *testing.T) {
	f, reg := newLocalFacade(t)
	ctx := context.Background()

	calls := 0
	lookup := cache.Wrap(f, "geocode", time.Minute, func(_ context.Context, addr string) (string, error) {
		calls++
		return "52.52,13.40:" + addr, nil
	})

	first, err := lookup(ctx, "Alexanderplatz")
	require.NoError(t, err)
	second, err := lookup(ctx, "Alexanderplatz")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	val, ok := f.Get(ctx, "geocode:Alexanderplatz")
	assert.True(t, ok)
	assert.Equal(t, first, val)

	s := reg.Counters()
	assert.Equal(t, int64(2), s.CacheHits)
	assert.Equal(t, int64(1), s.CacheMisses)
}

func TestWrap_DoesNotCacheErrors(t *testing.T) {
	f, _ := newLocalFacade(t)
	ctx := context.Background()

	errUpstream := errors.New("upstream down")
	calls := 0
	lookup := cache.Wrap(f, "quote", time.Minute, func(context.Context, string) (string, error) {
		calls++
		return "", errUpstream
	})

	_, err := lookup(ctx, "berlin-munich")
	require.ErrorIs(t, err, errUpstream)
	_, err = lookup(ctx, "berlin-munich")
	require.ErrorIs(t, err, errUpstream)

	assert.Equal(t, 2, calls)
	_, ok := f.Get(ctx, "quote:berlin-munich")
	assert.False(t, ok)
}
