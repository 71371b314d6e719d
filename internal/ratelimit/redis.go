package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:"

// RedisStore shares the fixed window across processes. Key expiry doubles as
// the window reset, so there is nothing to prune.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Incr(ctx context.Context, key string, windowLen time.Duration) (Result, error) {
	k := redisKeyPrefix + key

	count, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		return Result{}, err
	}
	if count == 1 {
		if err := s.client.PExpire(ctx, k, windowLen).Err(); err != nil {
			return Result{}, err
		}
	}

	ttl, err := s.client.PTTL(ctx, k).Result()
	if err != nil {
		return Result{}, err
	}
	if ttl < 0 {
		// Counter survived without an expiry (e.g. a crash between INCR and
		// PEXPIRE); restart the window rather than lock the client out.
		ttl = windowLen
		if err := s.client.PExpire(ctx, k, windowLen).Err(); err != nil {
			return Result{}, err
		}
	}
	return Result{Count: int(count), ResetAt: time.Now().Add(ttl)}, nil
}
