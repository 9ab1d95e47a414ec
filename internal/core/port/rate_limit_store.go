package port

import (
	"context"
	"time"
)

// RateLimitStore tracks request attempts inside a sliding window, keyed per
// route and client.
type RateLimitStore interface {
	// CountWindow drops attempts older than the window and reports how many
	// remain plus the oldest remaining timestamp (zero when the window is
	// empty).
	CountWindow(ctx context.Context, key string, window time.Duration, now time.Time) (int, time.Time, error)
	RecordAttempt(ctx context.Context, key string, at time.Time) error
}
