package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConsumedSet remembers used reset tokens until they would have expired anyway.
type ConsumedSet struct {
	client redis.Cmdable
	now    func() time.Time
}

func NewConsumedSet(client redis.Cmdable, now func() time.Time) *ConsumedSet {
	if now == nil {
		now = time.Now
	}
	return &ConsumedSet{client: client, now: now}
}

// Consume marks key as used and reports whether this call was the first.
func (s *ConsumedSet) Consume(ctx context.Context, key string, until time.Time) (bool, error) {
	const op = "ratelimit.ConsumedSet.Consume"

	ttl := until.Sub(s.now())
	if ttl < time.Second {
		ttl = time.Second
	}
	ok, err := s.client.SetNX(ctx, "reset:used:"+key, "used", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return ok, nil
}

// Release forgets key, making the token usable again.
func (s *ConsumedSet) Release(ctx context.Context, key string) error {
	const op = "ratelimit.ConsumedSet.Release"

	if err := s.client.Del(ctx, "reset:used:"+key).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
