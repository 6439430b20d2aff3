// Package mredis manages the Redis connection used as a cache-aside in
// front of ApiKey-hash lookups.
package mredis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mlog"
)

// Connection is a hub for the Redis client.
type Connection struct {
	ConnectionStringSource string
	Client                 *redis.Client
	Connected              bool
	Logger                 mlog.Logger
}

// Connect keeps a singleton connection with redis.
func (rc *Connection) Connect(ctx context.Context) error {
	if rc.Logger == nil {
		rc.Logger = mlog.NoOp{}
	}

	rc.Logger.Info("connecting to redis")

	opts, err := redis.ParseURL(rc.ConnectionStringSource)
	if err != nil {
		return fmt.Errorf("parsing redis url: %w", err)
	}

	rdb := redis.NewClient(opts)

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rc.Logger.Errorf("redis ping failed: %v", err)
		return fmt.Errorf("pinging redis: %w", err)
	}

	rc.Logger.Info("connected to redis")

	rc.Connected = true
	rc.Client = rdb

	return nil
}

// GetClient returns the redis client, connecting lazily if necessary.
func (rc *Connection) GetClient(ctx context.Context) (*redis.Client, error) {
	if rc.Client == nil {
		if err := rc.Connect(ctx); err != nil {
			return nil, err
		}
	}

	return rc.Client, nil
}
