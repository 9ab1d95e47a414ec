package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/RahulSaini3125/jwt-auth-rest-api/internal/core/port"
)

// RateLimitRepository keeps one sorted set of attempt timestamps per
// route/client key. Scores and members are both the attempt's UnixNano, so
// pruning and ordering need no extra bookkeeping.
type RateLimitRepository struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRateLimitRepository constructs the store. The TTL caps how long an idle
// key survives and should exceed the largest window it serves.
func NewRateLimitRepository(client *redis.Client, keyPrefix string, ttl time.Duration) *RateLimitRepository {
	return &RateLimitRepository{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

// CountWindow prunes expired attempts and reads the surviving window in a
// single pipeline round trip.
func (r *RateLimitRepository) CountWindow(ctx context.Context, key string, window time.Duration, now time.Time) (int, time.Time, error) {
	if window <= 0 {
		return 0, time.Time{}, errors.New("window must be positive")
	}

	fullKey := r.key(key)
	cutoff := strconv.FormatInt(now.Add(-window).UnixNano(), 10)

	pipe := r.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, fullKey, "-inf", "("+cutoff)
	countCmd := pipe.ZCard(ctx, fullKey)
	oldestCmd := pipe.ZRangeWithScores(ctx, fullKey, 0, 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, fmt.Errorf("redis pipeline: %w", err)
	}

	count := int(countCmd.Val())

	var oldest time.Time
	if entries := oldestCmd.Val(); len(entries) > 0 {
		oldest = time.Unix(0, int64(entries[0].Score))
	}

	return count, oldest, nil
}

// RecordAttempt appends the attempt and refreshes the key's TTL.
func (r *RateLimitRepository) RecordAttempt(ctx context.Context, key string, at time.Time) error {
	fullKey := r.key(key)
	nanos := at.UnixNano()

	pipe := r.client.Pipeline()
	pipe.ZAdd(ctx, fullKey, redis.Z{Score: float64(nanos), Member: strconv.FormatInt(nanos, 10)})
	if r.ttl > 0 {
		pipe.Expire(ctx, fullKey, r.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis pipeline: %w", err)
	}

	return nil
}

func (r *RateLimitRepository) key(key string) string {
	if r.keyPrefix == "" {
		return key
	}
	return r.keyPrefix + ":" + key
}

var _ port.RateLimitStore = (*RateLimitRepository)(nil)
