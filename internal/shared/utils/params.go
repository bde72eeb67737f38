package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tenantdesk/internal/shared/errors"
)

// ParseUintParam reads a positive numeric path parameter.
func ParseUintParam(c *gin.Context, name, entity string) (uint, error) {
	raw := c.Param(name)
	if raw == "" {
		return 0, errors.NewValidationError(entity + " ID is required")
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, errors.NewValidationError("invalid " + entity + " ID")
	}
	return uint(n), nil
}

// QueryBool reads a boolean query parameter, returning def when absent or malformed.
func QueryBool(c *gin.Context, name string, def bool) bool {
	raw, ok := c.GetQuery(name)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return b
}

// QueryUint reads an optional positive numeric query parameter.
func QueryUint(c *gin.Context, name string) *uint {
	n, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil || n == 0 {
		return nil
	}
	v := uint(n)
	return &v
}
