package middleware

import (
	"net/http"
	"strconv"

	"fleetwatch-backend/pkg/ratelimit"
	"fleetwatch-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware throttles requests per client. Authenticated requests
// are keyed by user ID, everything else by client IP. If the limiter backend
// is unavailable the request is let through rather than blocked.
func RateLimitMiddleware(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining, reset, err := limiter.Allow(c.Request.Context(), clientID(c))
		if err != nil {
			c.Header("X-RateLimit-Error", "rate limiter unavailable")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(limiter.Limit(), 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.Itoa(int(reset.Seconds())))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(reset.Seconds())))
			utils.ErrorResponse(c, http.StatusTooManyRequests, "Rate limit exceeded", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

func clientID(c *gin.Context) string {
	if id, ok := c.Get(ContextUserIDKey); ok {
		if userID, ok := id.(int64); ok {
			return "user:" + strconv.FormatInt(userID, 10)
		}
	}
	return "ip:" + c.ClientIP()
}
