// Package ratelimit enforces a sliding-window request budget per client
// key. The in-memory limiter is the default; the Redis one is for
// multi-instance deployments.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter answers whether one more request from key fits the window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Memory is a per-process sliding-window limiter.
type Memory struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	hits      map[string][]time.Time
	lastSweep time.Time
}

// NewMemory builds a limiter allowing max requests per window per key.
func NewMemory(max int, window time.Duration) *Memory {
	return &Memory{
		max:    max,
		window: window,
		now:    time.Now,
		hits:   make(map[string][]time.Time),
	}
}

// Allow never returns an error; the signature matches the Redis limiter.
func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	cutoff := now.Add(-m.window)

	// Amortized cleanup, once per window, so idle keys do not pile up.
	if now.Sub(m.lastSweep) >= m.window {
		m.sweep(cutoff)
		m.lastSweep = now
	}

	kept := m.hits[key][:0]
	for _, t := range m.hits[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= m.max {
		m.hits[key] = kept
		return false, nil
	}
	m.hits[key] = append(kept, now)
	return true, nil
}

// sweep drops every timestamp at or before cutoff and removes keys left
// with no hits at all. Callers hold m.mu.
func (m *Memory) sweep(cutoff time.Time) {
	for key, times := range m.hits {
		n := 0
		for _, t := range times {
			if t.After(cutoff) {
				times[n] = t
				n++
			}
		}
		if n == 0 {
			delete(m.hits, key)
			continue
		}
		m.hits[key] = times[:n]
	}
}

// Redis is a sliding-window limiter over a shared sorted set per key.
type Redis struct {
	client *redis.Client
	max    int
	window time.Duration
}

// NewRedis builds a limiter over an existing client.
func NewRedis(client *redis.Client, max int, window time.Duration) *Redis {
	return &Redis{client: client, max: max, window: window}
}

// Allow trims expired entries, counts the rest and records the hit. A
// Redis failure is surfaced to the caller, which decides the policy.
func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	rkey := "ratelimit:" + key
	now := time.Now()
	cutoff := strconv.FormatInt(now.Add(-r.window).UnixNano(), 10)

	pipe := r.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, rkey, "0", cutoff)
	count := pipe.ZCard(ctx, rkey)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit window scan: %w", err)
	}
	if count.Val() >= int64(r.max) {
		return false, nil
	}

	pipe = r.client.TxPipeline()
	pipe.ZAdd(ctx, rkey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: strconv.FormatInt(now.UnixNano(), 10),
	})
	pipe.Expire(ctx, rkey, r.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit record: %w", err)
	}
	return true, nil
}
