package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/shared/constants"
)

// principal returns the caller resolved by the auth middleware, or nil on
// public routes. Use cases reject a nil principal as unauthorized.
func principal(c *gin.Context) *access.Principal {
	v, ok := c.Get(constants.ContextKeyPrincipal)
	if !ok {
		return nil
	}
	p, _ := v.(*access.Principal)
	return p
}
