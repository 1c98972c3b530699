package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisCommands is the slice of the go-redis client the counter needs.
type redisCommands interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	ExpireNX(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisCounter shares the hourly window across replicas. The key's TTL is
// the window. ExpireNX runs on every increment, not just the first: if a
// crash between INCR and the expiry call ever leaves the key without a TTL,
// the next increment repairs it instead of locking the window forever.
type RedisCounter struct {
	client redisCommands
}

func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

func (c *RedisCounter) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if err := c.client.ExpireNX(ctx, key, ttl).Err(); err != nil {
		return count, err
	}
	return count, nil
}

func (c *RedisCounter) Current(ctx context.Context, key string) (int64, error) {
	count, err := c.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}
