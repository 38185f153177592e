package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// nothing listens on port 1, so every command fails fast
func deadClient(t *testing.T) *redis.Client {
	c := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	})
	t.Cleanup(func() { c.Close() })
	return c
}

func TestWindowKey(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	k1 := windowKey("reset:a@example.com:10.0.0.1", at, time.Hour)
	k2 := windowKey("reset:a@example.com:10.0.0.1", at.Add(59*time.Minute), time.Hour)
	k3 := windowKey("reset:a@example.com:10.0.0.1", at.Add(time.Hour), time.Hour)

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.Contains(t, k1, "ratelimit:reset:a@example.com:10.0.0.1:")
}

func TestLimiterFailsOpen(t *testing.T) {
	l := NewLimiter(deadClient(t), nil)
	assert.True(t, l.Allow(context.Background(), "k", 1, time.Minute))
}

func TestLimiterDisabledLimit(t *testing.T) {
	l := NewLimiter(deadClient(t), nil)
	assert.True(t, l.Allow(context.Background(), "k", 0, time.Minute))
}

func TestConsumedSetReportsStoreError(t *testing.T) {
	s := NewConsumedSet(deadClient(t), nil)
	ok, err := s.Consume(context.Background(), "sig", time.Now().Add(time.Minute))
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestLimiterCancelledContextIsNotALimitHit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := NewLimiter(deadClient(t), nil)
	assert.True(t, l.Allow(ctx, "k", 1, time.Minute))
}

func TestConsumedSetReleaseReportsStoreError(t *testing.T) {
	s := NewConsumedSet(deadClient(t), nil)
	assert.Error(t, s.Release(context.Background(), "sig"))
}
