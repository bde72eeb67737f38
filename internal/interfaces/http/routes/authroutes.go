package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tenantdesk/internal/interfaces/http/handlers"
	"github.com/orris-inc/tenantdesk/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	// RateLimit guards the credential endpoints; nil disables it.
	RateLimit gin.HandlerFunc
}

// SetupAuthRoutes configures authentication routes.
func SetupAuthRoutes(api *gin.RouterGroup, cfg *AuthRouteConfig) {
	limit := passthrough(cfg.RateLimit)

	auth := api.Group("/auth")
	{
		auth.POST("/register", limit, cfg.AuthHandler.Register)
		auth.POST("/login", limit, cfg.AuthHandler.Login)
		auth.POST("/refresh", limit, cfg.AuthHandler.Refresh)

		auth.GET("/oauth/:provider", cfg.AuthHandler.BeginOAuth)
		auth.GET("/oauth/:provider/callback", limit, cfg.AuthHandler.OAuthCallback)

		auth.POST("/logout", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.Logout)
		auth.GET("/me", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.GetProfile)
		auth.PUT("/me", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.UpdateProfile)
	}
}

func passthrough(h gin.HandlerFunc) gin.HandlerFunc {
	if h != nil {
		return h
	}
	return func(c *gin.Context) { c.Next() }
}
