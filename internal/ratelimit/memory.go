package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is the single-process fallback used when no redis address is
// configured (and in tests). The mutex makes the increment atomic within the
// process.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*window
	limit   int
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryLimiter(limit int, ttl time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		entries: make(map[string]*window),
		limit:   limit,
		ttl:     ttl,
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.entries[key]
	if !ok || now.After(w.resetAt) {
		l.entries[key] = &window{count: 1, resetAt: now.Add(l.ttl)}
		return l.limit >= 1, nil
	}
	w.count++
	return w.count <= l.limit, nil
}
