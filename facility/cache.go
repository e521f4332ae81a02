package facility

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/medi-route/triage-api/schema"
)

const (
	defaultCacheTTL = 10 * time.Minute
	redisKeyPrefix  = "distance:"
)

// Cache stores driving distances of candidates from an origin.
type Cache interface {
	Get(ctx context.Context, key string) (float64, bool)
	Set(ctx context.Context, key string, km float64)
}

// CacheKey identifies a candidate seen from an origin within a search radius.
func CacheKey(radiusKm float64, origin schema.Location, name string) string {
	return fmt.Sprintf("%s-%s-%s-%s",
		strconv.FormatFloat(radiusKm, 'f', -1, 64),
		strconv.FormatFloat(origin.Latitude, 'f', -1, 64),
		strconv.FormatFloat(origin.Longitude, 'f', -1, 64),
		name)
}

type entry struct {
	km        float64
	expiresAt time.Time
}

// MemoryCache is a per-process cache with a fixed time to live.
type MemoryCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]entry
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	return &MemoryCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (float64, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return 0, false
	}

	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return 0, false
	}

	return e.km, true
}

func (c *MemoryCache) Set(_ context.Context, key string, km float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{km: km, expiresAt: c.now().Add(c.ttl)}
}

// Len returns the number of entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// RedisCache shares distances between service instances.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) (float64, bool) {
	km, err := c.client.Get(ctx, redisKeyPrefix+key).Float64()
	if err != nil {
		if err != redis.Nil {
			log.WithFields(log.Fields{
				"prefix": logPrefix,
				"key":    key,
			}).WithError(err).Warn("read distance cache")
		}
		return 0, false
	}

	return km, true
}

func (c *RedisCache) Set(ctx context.Context, key string, km float64) {
	if err := c.client.Set(ctx, redisKeyPrefix+key, km, c.ttl).Err(); err != nil {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"key":    key,
		}).WithError(err).Warn("write distance cache")
	}
}
