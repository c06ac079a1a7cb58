package ratelimit

import "context"

// Limiter caps how often a keyed action may run inside a rolling window.
// Implementations must count atomically: two concurrent calls may not both
// observe the same pre-increment value.
type Limiter interface {
	// Allow records one attempt for key and reports whether it is within
	// the limit.
	Allow(ctx context.Context, key string) (bool, error)
}
