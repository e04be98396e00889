package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "orgnet:certverify:"

// RedisCache shares verification answers across instances.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, contentHash string) (bool, bool, error) {
	val, err := c.client.Get(ctx, keyPrefix+contentHash).Result()
	if err == redis.Nil {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("verification cache get: %w", err)
	}
	return val == "1", true, nil
}

func (c *RedisCache) Set(ctx context.Context, contentHash string, valid bool) error {
	val := "0"
	if valid {
		val = "1"
	}
	if err := c.client.Set(ctx, keyPrefix+contentHash, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("verification cache set: %w", err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context, contentHash string) error {
	if err := c.client.Del(ctx, keyPrefix+contentHash).Err(); err != nil {
		return fmt.Errorf("verification cache invalidate: %w", err)
	}
	return nil
}

var _ VerificationCache = (*RedisCache)(nil)
var _ VerificationCache = (*InMemoryCache)(nil)
