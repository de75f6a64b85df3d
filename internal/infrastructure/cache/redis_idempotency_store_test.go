package cache

import (
	"context"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopmall/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// redisForTest connects to SHOP_TEST_REDIS_ADDR (host:port) or skips
func redisForTest(t *testing.T) config.RedisConfig {
	t.Helper()
	addr := os.Getenv("SHOP_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SHOP_TEST_REDIS_ADDR not set")
	}
	host, portStr, ok := strings.Cut(addr, ":")
	require.True(t, ok, "SHOP_TEST_REDIS_ADDR must be host:port")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return config.RedisConfig{Enabled: true, Host: host, Port: port}
}

func TestRedisIdempotencyStore(t *testing.T) {
	client, err := NewRedisClient(redisForTest(t))
	require.NoError(t, err)
	defer client.Close()

	store := NewRedisIdempotencyStore(client, "shop:test:"+uuid.NewString()+":")
	ctx := context.Background()

	isNew, err := store.MarkProcessed(ctx, "trade-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = store.MarkProcessed(ctx, "trade-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, isNew)

	processed, err := store.IsProcessed(ctx, "trade-1")
	require.NoError(t, err)
	assert.True(t, processed)

	processed, err = store.IsProcessed(ctx, "trade-2")
	require.NoError(t, err)
	assert.False(t, processed)

	assert.NoError(t, store.Close())
	assert.NoError(t, client.Ping(ctx).Err(), "closing the store must not close the shared client")
}
