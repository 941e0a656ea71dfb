package middleware

import (
	"fmt"
	"math"
	"net/http"

	"car-rental/pkg/logger"
	"car-rental/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

// RateLimit allows limiter's budget of requests per client IP. When the
// shared store is unreachable requests pass and the failure is logged.
func RateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Error(err, "rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprint(limiter.Limit()))
		c.Header("X-RateLimit-Remaining", fmt.Sprint(res.Remaining))

		if !res.Allowed {
			retryAfter := int(math.Ceil(res.RetryAfter.Seconds()))
			c.Header("Retry-After", fmt.Sprint(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate_limited",
				"message":     "Too many requests, please try again later",
				"retry_after": retryAfter,
			})
			return
		}

		c.Next()
	}
}
