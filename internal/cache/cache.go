package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Cache is a best-effort TTL memoization store. A miss is never an
// error: expired, absent and unreadable entries all just miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration)
	Close() error
}

// Lookup returns the cached value under key, or computes, stores and
// returns a fresh one. Keys encode the operation and its arguments, so
// identical calls within the TTL reuse the previous result.
func Lookup[T any](ctx context.Context, c Cache, key string, ttl time.Duration, compute func() (T, error)) (T, error) {
	if data, ok := c.Get(ctx, key); ok {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			return v, nil
		}
	}
	v, err := compute()
	if err != nil {
		return v, err
	}
	if data, err := json.Marshal(v); err == nil {
		c.Set(ctx, key, data, ttl)
	}
	return v, nil
}
