package middleware

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter counters live under one namespace so they are easy to inspect and
// flush when the Redis instance is shared with other services.
const redisKeyPrefix = "campushire:rl:"

const redisCallTimeout = 250 * time.Millisecond

// hitCountScript bumps the window counter and stamps the expiry on the first
// hit. It returns the running count; the limit comparison stays in Go.
const hitCountScript = `
local hits = redis.call("INCR", KEYS[1])
if hits == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return hits
`

// RedisLimiter shares the fixed window across instances. It fails open: an
// unreachable Redis must not take the API down with it.
type RedisLimiter struct {
	client *redis.Client
	script *redis.Script
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	if client == nil {
		return nil
	}
	return &RedisLimiter{
		client: client,
		script: redis.NewScript(hitCountScript),
	}
}

func limiterKey(key string) string {
	return redisKeyPrefix + key
}

func (l *RedisLimiter) Allow(key string, limit int, window time.Duration) bool {
	if l == nil || l.client == nil {
		return true
	}
	if key == "" || limit <= 0 || window <= 0 {
		return true
	}
	ttl := window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisCallTimeout)
	defer cancel()
	hits, err := l.script.Run(ctx, l.client, []string{limiterKey(key)}, ttl).Int64()
	if err != nil {
		return true
	}
	return hits <= int64(limit)
}
