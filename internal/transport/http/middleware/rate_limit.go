package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appLogger "github.com/RahulSaini3125/jwt-auth-rest-api/internal/infra/logger"
)

const (
	throttleProblemType  = "https://auth.example.com/errors/too-many-requests"
	throttleProblemTitle = "Too Many Requests"
)

// AttemptStore is the sliding-window persistence the limiter needs.
type AttemptStore interface {
	CountWindow(ctx context.Context, key string, window time.Duration, now time.Time) (int, time.Time, error)
	RecordAttempt(ctx context.Context, key string, at time.Time) error
}

// RateLimiter enforces per-route attempt limits keyed by client IP. A store
// failure lets the request through; throttling never takes the service down
// with it.
type RateLimiter struct {
	store  AttemptStore
	logger *zap.Logger
	now    func() time.Time
}

// ProblemDetails is the RFC 9457 payload rendered on a throttled request.
type ProblemDetails struct {
	Type       string `json:"type"`
	Title      string `json:"title"`
	Status     int    `json:"status"`
	Detail     string `json:"detail"`
	Instance   string `json:"instance"`
	RetryAfter int    `json:"retry_after"`
	TraceID    string `json:"trace_id,omitempty"`
}

func NewRateLimiter(store AttemptStore, logger *zap.Logger) *RateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RateLimiter{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock injects a custom clock, primarily for tests.
func (rl *RateLimiter) WithClock(now func() time.Time) *RateLimiter {
	if now != nil {
		rl.now = now
	}
	return rl
}

// LimitByIP caps attempts per client IP on a single route. The route name
// scopes the storage key so endpoints never share budgets.
func (rl *RateLimiter) LimitByIP(route string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.store == nil || limit <= 0 || window <= 0 {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		now := rl.now()
		key := route + ":" + ip

		count, oldest, err := rl.store.CountWindow(ctx, key, window, now)
		if err != nil {
			rl.logger.Warn("rate limit check failed",
				zap.String("route", route),
				zap.String("ip", appLogger.MaskIP(ip)),
				zap.Error(err),
			)
			c.Next()
			return
		}

		reset := now.Add(window)
		if !oldest.IsZero() {
			reset = oldest.Add(window)
		}

		if count >= limit {
			rl.reject(c, limit, reset, now)
			return
		}

		if err := rl.store.RecordAttempt(ctx, key, now); err != nil {
			rl.logger.Warn("rate limit record failed",
				zap.String("route", route),
				zap.String("ip", appLogger.MaskIP(ip)),
				zap.Error(err),
			)
		}

		setThrottleHeaders(c, limit, limit-count-1, reset)
		c.Next()
	}
}

func (rl *RateLimiter) reject(c *gin.Context, limit int, reset, now time.Time) {
	retryAfter := int(math.Ceil(reset.Sub(now).Seconds()))
	if retryAfter < 0 {
		retryAfter = 0
	}

	setThrottleHeaders(c, limit, 0, reset)
	c.Writer.Header().Set("Retry-After", strconv.Itoa(retryAfter))

	instance := c.FullPath()
	if instance == "" {
		instance = c.Request.URL.Path
	}

	c.AbortWithStatusJSON(http.StatusTooManyRequests, ProblemDetails{
		Type:       throttleProblemType,
		Title:      throttleProblemTitle,
		Status:     http.StatusTooManyRequests,
		Detail:     fmt.Sprintf("Too many requests. Try again in %d seconds.", retryAfter),
		Instance:   instance,
		RetryAfter: retryAfter,
		TraceID:    GetTraceID(c),
	})
}

func setThrottleHeaders(c *gin.Context, limit, remaining int, reset time.Time) {
	if remaining < 0 {
		remaining = 0
	}
	headers := c.Writer.Header()
	headers.Set("X-RateLimit-Limit", strconv.Itoa(limit))
	headers.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
	headers.Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))
}
