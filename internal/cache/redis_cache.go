package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"

	"gastropos/internal/domain"
)

const insightKeyPrefix = "gastropos:insight:"

type RedisInsightCache struct {
	client *redis.Client
}

// NewRedisInsightCache shares client with the store backend when both use
// Redis; Close is left to the owner of client.
func NewRedisInsightCache(client *redis.Client) *RedisInsightCache {
	return &RedisInsightCache{client: client}
}

func (c *RedisInsightCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisInsightCache) Get(ctx context.Context, key string) (*domain.Insight, bool, error) {
	val, err := c.client.Get(ctx, insightKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var insight domain.Insight
	if err := json.Unmarshal(val, &insight); err != nil {
		return nil, false, err
	}
	return &insight, true, nil
}

func (c *RedisInsightCache) Set(ctx context.Context, key string, value *domain.Insight, ttl time.Duration) error {
	if value == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, insightKeyPrefix+key, payload, ttl).Err()
}
