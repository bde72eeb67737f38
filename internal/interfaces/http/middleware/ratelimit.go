package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tenantdesk/internal/infrastructure/metrics"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/ratelimit"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
	"github.com/orris-inc/tenantdesk/internal/shared/utils"
)

// RateLimit enforces limiter per client IP. If the limiter backend fails the
// request is let through.
func RateLimit(limiter ratelimit.RateLimiter, m *metrics.Metrics, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), "ip:"+c.ClientIP())
		if err != nil {
			log.Warnw("rate limiter unavailable", "error", err)
			c.Next()
			return
		}
		if !allowed {
			m.RateLimited()
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
