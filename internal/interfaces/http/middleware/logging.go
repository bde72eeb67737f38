package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tenantdesk/internal/shared/constants"
	"github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

// quietPaths are probed constantly and only logged when they fail.
var quietPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// Logger writes one access log line per request. Failed credential checks
// are flagged with security_event so they can be alerted on.
func Logger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		if quietPaths[c.Request.URL.Path] && status < 500 {
			return
		}

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		fields := []any{
			"method", c.Request.Method,
			"route", route,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"bytes", c.Writer.Size(),
		}
		if requestID := c.GetString(constants.ContextKeyRequestID); requestID != "" {
			fields = append(fields, "request_id", requestID)
		}
		if userID, ok := c.Get(constants.ContextKeyUserID); ok {
			fields = append(fields, "user_id", userID)
		}

		if last := c.Errors.Last(); last != nil {
			fields = append(fields, "error", last.Err.Error())
			if errors.IsSecurityEvent(last.Err) {
				fields = append(fields, "security_event", true)
			}
		}

		switch {
		case status >= 500:
			log.Errorw("request failed", fields...)
		case status >= 400:
			log.Warnw("request rejected", fields...)
		default:
			log.Debugw("request served", fields...)
		}
	}
}
