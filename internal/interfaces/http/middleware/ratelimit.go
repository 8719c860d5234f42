package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/erp/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"go.uber.org/zap"
)

// RateLimiter counts requests per key in fixed windows
type RateLimiter struct {
	limiter *limiter.Limiter
	logger  *zap.Logger
}

// NewRateLimiter creates an in-process limiter allowing limit requests per
// window
func NewRateLimiter(limit int, per time.Duration, logger *zap.Logger) *RateLimiter {
	return NewRateLimiterWithStore(memory.NewStore(), limit, per, logger)
}

// NewRateLimiterWithStore creates a limiter over store, which may be shared
// between processes
func NewRateLimiterWithStore(store limiter.Store, limit int, per time.Duration, logger *zap.Logger) *RateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	rate := limiter.Rate{Period: per, Limit: int64(limit)}
	return &RateLimiter{limiter: limiter.New(store, rate), logger: logger}
}

// Take counts one request for key
func (rl *RateLimiter) Take(ctx context.Context, key string) (limiter.Context, error) {
	return rl.limiter.Get(ctx, key)
}

// RateLimit returns a rate limiting middleware. It runs after the tenant
// middleware so limits are per tenant and client IP. A failing store lets the
// request through.
func RateLimit(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := GetTenantID(c) + ":" + c.ClientIP()

		lc, err := rl.Take(c.Request.Context(), key)
		if err != nil {
			rl.logger.Warn("Rate limit store failed", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(lc.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(lc.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(lc.Reset, 10))
		if lc.Reached {
			retry := time.Until(time.Unix(lc.Reset, 0))
			if retry < time.Second {
				retry = time.Second
			}
			c.Header("Retry-After", strconv.Itoa(int(retry.Round(time.Second).Seconds())))
			abortWithError(c, http.StatusTooManyRequests, dto.ErrCodeRateLimited,
				"Too many requests. Please try again later.")
			return
		}

		c.Next()
	}
}
