package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitStore implements fixed-window request counting in Redis, keyed by
// client address. Keeping counters in Redis rather than a process-global map
// lets the service scale horizontally and keeps tests free of shared state.
type RateLimitStore struct {
	client *redis.Client
}

// NewRateLimitStore creates a new RateLimitStore.
func NewRateLimitStore(client *redis.Client) *RateLimitStore {
	return &RateLimitStore{client: client}
}

// Incr increments the counter for the key's current window and returns the
// new count plus the time remaining until the window resets.
func (s *RateLimitStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	bucket := fmt.Sprintf("ratelimit:%s:%d", key, time.Now().UnixNano()/int64(window))

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, bucket)
	pipe.Expire(ctx, bucket, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, err
	}

	ttl, err := s.client.TTL(ctx, bucket).Result()
	if err != nil {
		ttl = window
	}

	return incr.Val(), ttl, nil
}
