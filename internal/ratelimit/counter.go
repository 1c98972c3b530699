// Package ratelimit meters AI provider calls per installation over a fixed
// hourly window. It counts attempts, not successes, so failed upstream calls
// still burn quota.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Counter is a windowed attempt counter. Implementations reset the count
// when the window elapses.
type Counter interface {
	// Incr bumps the counter for key, starting a fresh window if none is
	// active, and returns the new count.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)

	// Current returns the count for the active window, zero if expired.
	Current(ctx context.Context, key string) (int64, error)
}

// MemoryCounter is the single-process default backend.
type MemoryCounter struct {
	mu      sync.Mutex
	windows map[string]*window

	// now is swappable in tests
	now func() time.Time
}

type window struct {
	count   int64
	started time.Time
	ttl     time.Duration
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// SetClock overrides the time source. Test hook.
func (c *MemoryCounter) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *MemoryCounter) Incr(_ context.Context, key string, ttl time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.windows[key]
	if !ok || c.now().Sub(w.started) >= w.ttl {
		w = &window{started: c.now(), ttl: ttl}
		c.windows[key] = w
	}
	w.count++
	return w.count, nil
}

func (c *MemoryCounter) Current(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.windows[key]
	if !ok || c.now().Sub(w.started) >= w.ttl {
		return 0, nil
	}
	return w.count, nil
}
