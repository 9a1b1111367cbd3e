package redis

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

const rateLimitKeyPrefix = "ratelimit:"

// incrWindow starts the window expiry on the first hit only, so the window
// is fixed from the first event rather than sliding with every request.
var incrWindow = goredis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n
`)

var _ ports.RateLimiter = (*RateLimiter)(nil)

type RateLimiter struct {
	client goredis.UniversalClient
}

func NewRateLimiter(client goredis.UniversalClient) *RateLimiter {
	return &RateLimiter{client: client}
}

func (l *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := incrWindow.Run(ctx, l.client, []string{rateLimitKeyPrefix + key}, window.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("rate limit %s: %w", key, err)
	}
	return n <= limit, nil
}
