package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tenantdesk/internal/infrastructure/metrics"
)

// Metrics records request counts and latency per route template, so
// /departments/1 and /departments/2 share a series.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
