package ratelimit

import (
	"context"
	"sync"
	"time"
)

const memorySweepEvery = 1024

// Memory per-process sliding window, one log of hit times per key
type Memory struct {
	mu    sync.Mutex
	hits  map[string][]time.Time
	calls int
	now   func() time.Time
}

// NewMemory creates an in-process limiter
func NewMemory() *Memory {
	return &Memory{
		hits: make(map[string][]time.Time),
		now:  time.Now,
	}
}

// Allow implements Limiter with the same window semantics as the Redis script
func (m *Memory) Allow(_ context.Context, key string, rule Rule) (Decision, error) {
	if !rule.Valid() {
		return Decision{Allowed: true}, nil
	}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.calls%memorySweepEvery == 0 {
		m.sweep(now, rule.Window)
	}

	hits := pruneHits(m.hits[key], now.Add(-rule.Window))
	if len(hits) >= rule.Max {
		m.hits[key] = hits
		return Decision{
			Allowed:    false,
			Count:      len(hits),
			RetryAfter: hits[0].Add(rule.Window).Sub(now),
		}, nil
	}
	hits = append(hits, now)
	m.hits[key] = hits
	return Decision{Allowed: true, Count: len(hits)}, nil
}

// pruneHits drops hits at or before cutoff; hits are in arrival order
func pruneHits(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	if i == 0 {
		return hits
	}
	return append(hits[:0], hits[i:]...)
}

// sweep drops keys whose newest hit has left the window
func (m *Memory) sweep(now time.Time, window time.Duration) {
	cutoff := now.Add(-window)
	for key, hits := range m.hits {
		if len(hits) == 0 || !hits[len(hits)-1].After(cutoff) {
			delete(m.hits, key)
		}
	}
}
