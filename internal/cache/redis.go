// Package cache wraps the Redis client used for cross-instance locks and
// idempotency keys.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

type RedisClient struct {
	rdb *redis.Client
}

// releaseScript deletes the lock only if it still holds our value, so a
// lock that expired and was re-acquired elsewhere is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`)

func NewRedisClient(cfg *Config) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return &RedisClient{rdb: rdb}, nil
}

// AcquireLock takes the key with SET NX. It returns false when someone else
// holds it.
func (c *RedisClient) AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return c.rdb.SetNX(ctx, key, value, ttl).Result()
}

func (c *RedisClient) ReleaseLock(ctx context.Context, key, value string) error {
	return releaseScript.Run(ctx, c.rdb, []string{key}, value).Err()
}

func (c *RedisClient) Close() error {
	return c.rdb.Close()
}
