package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMemoryLimiterCapsWithinWindow(t *testing.T) {
	l := NewMemoryLimiter(3, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "alice@example.edu")
		if err != nil {
			t.Fatalf("allow returned error: %v", err)
		}
		if !ok {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	ok, err := l.Allow(ctx, "alice@example.edu")
	if err != nil {
		t.Fatalf("allow returned error: %v", err)
	}
	if ok {
		t.Fatalf("fourth attempt within the window should be rejected")
	}

	// A different key has its own window.
	if ok, _ := l.Allow(ctx, "bob@example.edu"); !ok {
		t.Fatalf("unrelated key should not be limited")
	}
}

func TestMemoryLimiterResetsAfterWindow(t *testing.T) {
	l := NewMemoryLimiter(3, time.Hour)
	current := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return current }
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		l.Allow(ctx, "key")
	}
	if ok, _ := l.Allow(ctx, "key"); ok {
		t.Fatalf("expected limiter to be saturated")
	}

	current = current.Add(time.Hour + time.Minute)
	ok, err := l.Allow(ctx, "key")
	if err != nil {
		t.Fatalf("allow returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected a fresh window after the hour elapsed")
	}
}

func TestMemoryLimiterConcurrentIncrements(t *testing.T) {
	l := NewMemoryLimiter(3, time.Hour)
	ctx := context.Background()

	const attempts = 50
	var wg sync.WaitGroup
	wg.Add(attempts)
	allowed := make(chan bool, attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			ok, _ := l.Allow(ctx, "shared")
			allowed <- ok
		}()
	}
	wg.Wait()
	close(allowed)

	var n int
	for ok := range allowed {
		if ok {
			n++
		}
	}
	if n != 3 {
		t.Fatalf("expected exactly 3 allowed attempts, got %d", n)
	}
}
