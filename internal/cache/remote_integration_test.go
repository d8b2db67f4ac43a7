//go:build integration

package cache_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"smarthaul/internal/cache"
	"smarthaul/internal/config"
	"smarthaul/internal/metrics"
)

func startRedis(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	return endpoint
}

func TestNew_SelectsRemote(t *testing.T) {
	endpoint := startRedis(t)
	ctx := context.Background()

	cfg := &config.CacheConfig{
		RemoteEnabled:    true,
		RedisURL:         fmt.Sprintf("redis://%s/0", endpoint),
		KeyPrefix:        "smarthaul:",
		DefaultTTL:       cache.DefaultTTL,
		ConnectTimeout:   2 * time.Second,
		LocalMaxSizePow2: 10,
	}
	reg := metrics.NewRegistry(newLogger())

	f, err := cache.New(ctx, cfg, reg, newLogger())
	require.NoError(t, err)
	defer f.Close()
	require.Equal(t, cache.KindRemote, f.Kind())

	require.True(t, f.Set(ctx, "shipment:1", "delivered", time.Minute))
	val, ok := f.Get(ctx, "shipment:1")
	assert.True(t, ok)
	assert.Equal(t, "delivered", val)

	raw := redis.NewClient(&redis.Options{Addr: endpoint})
	defer raw.Close()
	stored, err := raw.Get(ctx, "smarthaul:shipment:1").Result()
	require.NoError(t, err)
	assert.Equal(t, "delivered", stored)

	assert.True(t, f.Delete(ctx, "shipment:1"))
	assert.True(t, f.Delete(ctx, "shipment:1"))
	_, ok = f.Get(ctx, "shipment:1")
	assert.False(t, ok)
}

func TestRemote_Expiry(t *testing.T) {
	endpoint := startRedis(t)
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	reg := metrics.NewRegistry(newLogger())
	f := cache.NewFacade(cache.NewRemoteFromClient(client, "smarthaul:", newLogger()), reg, cache.DefaultTTL)
	defer f.Close()

	require.True(t, f.Set(ctx, "eta:1", "09:15", time.Second))
	time.Sleep(1100 * time.Millisecond)

	_, ok := f.Get(ctx, "eta:1")
	assert.False(t, ok)
	assert.Equal(t, int64(1), reg.Counters().CacheMisses)
}

func TestRemote_ClearOnlyTouchesPrefix(t *testing.T) {
	endpoint := startRedis(t)
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	remote := cache.NewRemoteFromClient(client, "smarthaul:", newLogger())
	defer remote.Close()

	for i := range 1200 {
		require.True(t, remote.Set(ctx, fmt.Sprintf("k%d", i), "v", time.Minute))
	}
	require.NoError(t, client.Set(ctx, "other:keep", "v", time.Minute).Err())

	assert.True(t, remote.Clear(ctx))

	keys, err := client.Keys(ctx, "smarthaul:*").Result()
	require.NoError(t, err)
	assert.Empty(t, keys)

	kept, err := client.Get(ctx, "other:keep").Result()
	require.NoError(t, err)
	assert.Equal(t, "v", kept)
}
