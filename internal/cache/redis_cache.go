package cache

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"
)

type RedisListingCache struct {
	client *redis.Client
}

func NewRedisListingCache(addr string, password string, db int) *RedisListingCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisListingCache{client: client}
}

func (c *RedisListingCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisListingCache) Close() error {
	return c.client.Close()
}

func (c *RedisListingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (c *RedisListingCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if len(payload) == 0 {
		return nil
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}

func (c *RedisListingCache) Generation(ctx context.Context, scope string) (int64, error) {
	gen, err := c.client.Get(ctx, "gen:"+scope).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return gen, nil
}

func (c *RedisListingCache) Bump(ctx context.Context, scope string) error {
	return c.client.Incr(ctx, "gen:"+scope).Err()
}
