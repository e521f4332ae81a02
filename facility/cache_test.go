package facility

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/medi-route/triage-api/schema"
)

func TestCacheKey(t *testing.T) {
	key := CacheKey(3, schema.Location{Latitude: 37.5, Longitude: 127.025}, "서울병원")
	assert.Equal(t, "3-37.5-127.025-서울병원", key)
}

func TestMemoryCacheExpires(t *testing.T) {
	now := time.Now()
	c := NewMemoryCache(time.Minute)
	c.now = func() time.Time { return now }

	c.Set(context.Background(), "a", 1.25)
	km, ok := c.Get(context.Background(), "a")
	assert.True(t, ok)
	assert.Equal(t, 1.25, km)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get(context.Background(), "a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache(0)
	_, ok := c.Get(context.Background(), "missing")
	assert.False(t, ok)
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("Skip redis cache tests due to missing redis address")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	ctx := context.Background()
	c := NewRedisCache(client, time.Minute)
	key := CacheKey(3, schema.Location{Latitude: 37.5, Longitude: 127}, "redis-test")
	defer client.Del(ctx, redisKeyPrefix+key)

	_, ok := c.Get(ctx, key)
	assert.False(t, ok)

	c.Set(ctx, key, 4.321)
	km, ok := c.Get(ctx, key)
	assert.True(t, ok)
	assert.Equal(t, 4.321, km)
}
