package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisCache backs the memoization layer with Redis, so several
// dashboard instances can share one set of upstream fetches.
type RedisCache struct {
	client *redis.Client
	log    *logrus.Entry
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &RedisCache{
		client: client,
		log:    logrus.WithField("component", "cache"),
	}, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.log.WithError(err).WithField("key", key).Debug("redis get failed")
		}
		return nil, false
	}
	return data, true
}

func (r *RedisCache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if err := r.client.Set(ctx, key, val, ttl).Err(); err != nil {
		r.log.WithError(err).WithField("key", key).Debug("redis set failed")
	}
}

func (r *RedisCache) Close() error { return r.client.Close() }
