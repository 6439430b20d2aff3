// Package cache implements the Redis cache-aside sitting in front of
// ApiKey-hash lookups, so the authentication interceptor doesn't
// round-trip to Postgres on every request.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mlog"
)

// Repository provides the narrow cache surface the authentication
// interceptor depends on.
type Repository interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	Del(ctx context.Context, key string) error
}

// RedisRepository is the production Repository backed by go-redis.
type RedisRepository struct {
	Client *redis.Client
	Logger mlog.Logger
}

func (r *RedisRepository) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.Client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.Logger.Warnf("cache set failed for key %q: %v", key, err)
		return err
	}

	return nil
}

func (r *RedisRepository) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}

	if err != nil {
		r.Logger.Warnf("cache get failed for key %q: %v", key, err)
		return "", false, err
	}

	return val, true, nil
}

func (r *RedisRepository) Del(ctx context.Context, key string) error {
	if err := r.Client.Del(ctx, key).Err(); err != nil {
		r.Logger.Warnf("cache del failed for key %q: %v", key, err)
		return err
	}

	return nil
}
