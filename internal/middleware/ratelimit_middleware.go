package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models/dto"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/logger"
)

// RateLimiter throttles endpoints with a fixed window counter per client IP
// kept in Redis.
type RateLimiter struct {
	client *redis.Client
}

// NewRateLimiter creates a new RateLimiter
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// Limit allows at most max requests per window for each client IP. The
// counter key carries the endpoint name so limits don't bleed across
// endpoints. When Redis is unreachable the request passes; availability
// wins over throttling.
func (rl *RateLimiter) Limit(name string, max int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", name, c.ClientIP())

		count, err := rl.client.Incr(c.Request.Context(), key).Result()
		if err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("Rate limit check failed, allowing request")
			c.Next()
			return
		}
		if count == 1 {
			if err := rl.client.Expire(c.Request.Context(), key, window).Err(); err != nil {
				logger.Warn().Err(err).Str("key", key).Msg("Failed to set rate limit window")
			}
		}

		if count > int64(max) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewErrorResponse(dto.CodeRateLimited, "요청이 너무 많습니다. 잠시 후 다시 시도해 주세요."))
			return
		}
		c.Next()
	}
}
