package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tenantdesk/internal/infrastructure/database"
	"github.com/orris-inc/tenantdesk/internal/shared/version"
)

type healthChecker interface {
	Check(ctx context.Context) database.HealthStatus
}

type HealthHandler struct {
	checker healthChecker
}

func NewHealthHandler(checker healthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

type healthResponse struct {
	database.HealthStatus
	Version string `json:"version"`
}

// Health reports 503 only when the database is unreachable. A degraded
// redis still answers 200.
func (h *HealthHandler) Health(c *gin.Context) {
	status := h.checker.Check(c.Request.Context())
	code := http.StatusOK
	if status.Status == database.StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, healthResponse{HealthStatus: status, Version: version.Version})
}
