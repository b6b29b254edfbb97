package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// sliding window over a sorted set scored by arrival time in ms
var slidingWindowScript = redis.NewScript(`
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
redis.call("ZREMRANGEBYSCORE", KEYS[1], 0, now - window)
local count = redis.call("ZCARD", KEYS[1])
if count >= limit then
	local oldest = redis.call("ZRANGE", KEYS[1], 0, 0, "WITHSCORES")
	local retry = window
	if oldest[2] then
		retry = tonumber(oldest[2]) + window - now
	end
	return {0, count, retry}
end
redis.call("ZADD", KEYS[1], now, ARGV[4])
redis.call("PEXPIRE", KEYS[1], window)
return {1, count + 1, 0}
`)

// Redis shares counters across instances
type Redis struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedis creates a Redis limiter; keys are stored under prefix
func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix, now: time.Now}
}

// Allow implements Limiter
func (r *Redis) Allow(ctx context.Context, key string, rule Rule) (Decision, error) {
	if !rule.Valid() {
		return Decision{Allowed: true}, nil
	}
	if r == nil || r.client == nil {
		return Decision{}, fmt.Errorf("redis limiter unavailable")
	}
	now := r.now().UnixMilli()
	member := fmt.Sprintf("%d-%s", now, uuid.NewString())
	redisKey := key
	if r.prefix != "" {
		redisKey = fmt.Sprintf("%s:rl:%s", r.prefix, key)
	}

	result, err := slidingWindowScript.Run(ctx, r.client, []string{redisKey},
		now, rule.Window.Milliseconds(), rule.Max, member).Result()
	if err != nil {
		return Decision{}, err
	}
	values, ok := result.([]interface{})
	if !ok || len(values) < 3 {
		return Decision{}, fmt.Errorf("unexpected rate limit reply: %v", result)
	}
	allowed, ok1 := toInt64(values[0])
	count, ok2 := toInt64(values[1])
	retryMs, ok3 := toInt64(values[2])
	if !ok1 || !ok2 || !ok3 {
		return Decision{}, fmt.Errorf("unexpected rate limit reply: %v", values)
	}
	return Decision{
		Allowed:    allowed == 1,
		Count:      int(count),
		RetryAfter: time.Duration(retryMs) * time.Millisecond,
	}, nil
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case uint64:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
