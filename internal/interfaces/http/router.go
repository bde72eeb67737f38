package http

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tenantdesk/internal/interfaces/http/middleware"
	"github.com/orris-inc/tenantdesk/internal/interfaces/http/routes"
)

// APIPrefix is the mount point of every versioned endpoint.
const APIPrefix = "/api/v1"

func (c *Container) setupRoutes() {
	log := c.log.Named("http")

	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Recovery(log))
	c.engine.Use(middleware.Logger(log))
	c.engine.Use(middleware.Metrics(c.metrics))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))

	c.engine.GET("/health", c.hdlrs.healthHandler.Health)
	c.engine.GET("/metrics", gin.WrapH(c.metrics.Handler()))

	api := c.engine.Group(APIPrefix)

	routes.SetupAuthRoutes(api, &routes.AuthRouteConfig{
		AuthHandler:    c.hdlrs.authHandler,
		AuthMiddleware: c.authMiddleware,
		RateLimit:      c.rateLimit,
	})

	routes.SetupTenantRoutes(api, &routes.TenantRouteConfig{
		DepartmentHandler:   c.hdlrs.departmentHandler,
		ResellerHandler:     c.hdlrs.resellerHandler,
		SubscriptionHandler: c.hdlrs.subscriptionHandler,
		UserHandler:         c.hdlrs.userHandler,
		AuthMiddleware:      c.authMiddleware,
	})

	routes.SetupBillingRoutes(api, &routes.BillingRouteConfig{
		PackageHandler:      c.hdlrs.packageHandler,
		SubscriptionHandler: c.hdlrs.subscriptionHandler,
		TransactionHandler:  c.hdlrs.transactionHandler,
		AuthMiddleware:      c.authMiddleware,
	})
}
