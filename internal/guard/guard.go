// Package guard stops a session from running the same write twice at once,
// e.g. a double click on a submit button.
package guard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type Guard struct {
	rdb *redis.Client

	mu    sync.Mutex
	local map[string]time.Time
	now   func() time.Time
}

// New returns a guard backed by rdb, or by process memory when rdb is nil.
func New(rdb *redis.Client) *Guard {
	return &Guard{
		rdb:   rdb,
		local: make(map[string]time.Time),
		now:   time.Now,
	}
}

func lockKey(sessionID, action string) string {
	return fmt.Sprintf("submit_lock:session:%s:%s", sessionID, action)
}

// Acquire takes the lock for action and reports whether it was free. The lock
// expires after ttl even if Release is never called.
func (g *Guard) Acquire(ctx context.Context, sessionID, action string, ttl time.Duration) (bool, error) {
	key := lockKey(sessionID, action)

	if g.rdb != nil {
		wasSet, err := g.rdb.SetNX(ctx, key, "locked", ttl).Result()
		if err != nil {
			return false, fmt.Errorf("failed to check submit lock in redis: %w", err)
		}
		return wasSet, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.now()
	if until, held := g.local[key]; held && now.Before(until) {
		return false, nil
	}
	g.local[key] = now.Add(ttl)
	return true, nil
}

func (g *Guard) Release(ctx context.Context, sessionID, action string) error {
	key := lockKey(sessionID, action)
	if g.rdb != nil {
		return g.rdb.Del(ctx, key).Err()
	}
	g.mu.Lock()
	delete(g.local, key)
	g.mu.Unlock()
	return nil
}

// TTL reports how long the lock for action is still held.
func (g *Guard) TTL(ctx context.Context, sessionID, action string) (time.Duration, error) {
	key := lockKey(sessionID, action)
	if g.rdb != nil {
		return g.rdb.TTL(ctx, key).Result()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	until, held := g.local[key]
	if !held {
		return 0, nil
	}
	if left := until.Sub(g.now()); left > 0 {
		return left, nil
	}
	return 0, nil
}
