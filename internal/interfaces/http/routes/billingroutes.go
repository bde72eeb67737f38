package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tenantdesk/internal/interfaces/http/handlers"
	"github.com/orris-inc/tenantdesk/internal/interfaces/http/middleware"
)

// BillingRouteConfig holds dependencies for package, subscription, access
// and transaction routes.
type BillingRouteConfig struct {
	PackageHandler      *handlers.PackageHandler
	SubscriptionHandler *handlers.SubscriptionHandler
	TransactionHandler  *handlers.TransactionHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

func SetupBillingRoutes(api *gin.RouterGroup, cfg *BillingRouteConfig) {
	requireAuth := cfg.AuthMiddleware.RequireAuth()

	packages := api.Group("/packages", requireAuth)
	{
		packages.GET("", cfg.PackageHandler.ListPackages)
		packages.POST("", cfg.PackageHandler.CreatePackage)
		packages.GET("/:id", cfg.PackageHandler.GetPackage)
		packages.PUT("/:id", cfg.PackageHandler.UpdatePackage)
		packages.DELETE("/:id", cfg.PackageHandler.DeletePackage)
	}

	subscriptions := api.Group("/subscriptions", requireAuth)
	{
		subscriptions.GET("", cfg.SubscriptionHandler.ListSubscriptions)
		subscriptions.POST("", cfg.SubscriptionHandler.CreateSubscription)
		subscriptions.GET("/:id", cfg.SubscriptionHandler.GetSubscription)
		subscriptions.POST("/:id/cancel", cfg.SubscriptionHandler.CancelSubscription)

		subscriptions.GET("/:id/access", cfg.SubscriptionHandler.ListAccess)
		subscriptions.POST("/:id/access", cfg.SubscriptionHandler.GrantAccess)
		subscriptions.DELETE("/:id/access/:user_id", cfg.SubscriptionHandler.RevokeAccess)
	}

	api.GET("/me/access", requireAuth, cfg.SubscriptionHandler.MyAccess)

	transactions := api.Group("/transactions", requireAuth)
	{
		transactions.GET("", cfg.TransactionHandler.ListTransactions)
		transactions.GET("/export", cfg.TransactionHandler.ExportTransactions)
	}
}
