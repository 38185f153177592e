package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Michaelnacaya1234/Accounting-services/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Limiter is a fixed-window counter. Redis failures let the request through.
type Limiter struct {
	client redis.Cmdable
	now    func() time.Time
}

func NewLimiter(client redis.Cmdable, now func() time.Time) *Limiter {
	if client == nil {
		panic("ratelimit: nil redis client")
	}
	if now == nil {
		now = time.Now
	}
	return &Limiter{client: client, now: now}
}

// Allow counts one hit for key and reports whether it is within limit for
// the current window.
func (l *Limiter) Allow(ctx context.Context, key string, limit int, window time.Duration) bool {
	if limit <= 0 {
		return true
	}
	k := windowKey(key, l.now(), window)

	cmds, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, window)
		return nil
	})
	if err != nil {
		// a client that went away is not a Redis outage
		if errors.Is(err, context.Canceled) {
			logger.Log.Debug("rate limit check cancelled", zap.String("key", key))
		} else {
			logger.Log.Error("rate limit check failed, allowing request", zap.String("key", key), zap.Error(err))
		}
		return true
	}
	return cmds[0].(*redis.IntCmd).Val() <= int64(limit)
}

func windowKey(key string, now time.Time, window time.Duration) string {
	if window <= 0 {
		window = time.Minute
	}
	return fmt.Sprintf("ratelimit:%s:%d", key, now.Unix()/int64(window/time.Second))
}
