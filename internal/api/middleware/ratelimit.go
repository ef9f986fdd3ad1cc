package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/vietanh2810/meetup-api/internal/api/handler/v1/response"
)

const rateLimitKeyPrefix = "rate_limit:"

// RateLimiter counts requests per client IP in fixed windows stored in Redis.
type RateLimiter struct {
	client redis.Cmdable
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRateLimiter(client redis.Cmdable, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Limit rejects requests over the limit with 429. Requests pass through when
// Redis cannot be reached.
func (l *RateLimiter) Limit() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		windowStart := l.now().Truncate(l.window).Unix()
		key := fmt.Sprintf("%s%s:%d", rateLimitKeyPrefix, ctx.ClientIP(), windowStart)

		c := ctx.Request.Context()
		pipe := l.client.TxPipeline()
		incr := pipe.Incr(c, key)
		pipe.Expire(c, key, l.window)
		if _, err := pipe.Exec(c); err != nil {
			zap.L().Warn("rate limiter unavailable", zap.Error(err))
			ctx.Next()

			return
		}

		count := incr.Val()
		remaining := int64(l.limit) - count
		if remaining < 0 {
			remaining = 0
		}
		ctx.Header("X-RateLimit-Limit", strconv.Itoa(l.limit))
		ctx.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(l.limit) {
			response.RenderErr(ctx, response.ErrTooManyRequests())

			return
		}

		ctx.Next()
	}
}
