package ratelimit

import (
	"context"
	"time"

	"github.com/whitebirds/internal/logger"

	"golang.org/x/time/rate"
)

const failoverWarnEvery = time.Minute

// Rule at most Max requests per key within Window
type Rule struct {
	Window time.Duration
	Max    int
}

// Valid reports whether the rule limits anything
func (r Rule) Valid() bool {
	return r.Window > 0 && r.Max > 0
}

// Decision outcome of one Allow call
type Decision struct {
	Allowed    bool
	Count      int
	RetryAfter time.Duration
}

// Limiter counts requests per key
type Limiter interface {
	Allow(ctx context.Context, key string, rule Rule) (Decision, error)
}

// Failover asks primary first and falls back when it errors
type Failover struct {
	primary  Limiter
	fallback Limiter
	warn     *rate.Sometimes
}

// NewFailover wraps primary with an in-process fallback
func NewFailover(primary, fallback Limiter) *Failover {
	return &Failover{primary: primary, fallback: fallback, warn: &rate.Sometimes{First: 1, Interval: failoverWarnEvery}}
}

// Allow implements Limiter
func (f *Failover) Allow(ctx context.Context, key string, rule Rule) (Decision, error) {
	if f.primary != nil {
		decision, err := f.primary.Allow(ctx, key, rule)
		if err == nil {
			return decision, nil
		}
		f.warn.Do(func() {
			logger.Warnw("rate_limit_primary_failed", "key", key, "error", err)
		})
	}
	if f.fallback == nil {
		return Decision{Allowed: true}, nil
	}
	return f.fallback.Allow(ctx, key, rule)
}
