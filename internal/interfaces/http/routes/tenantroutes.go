package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tenantdesk/internal/interfaces/http/handlers"
	"github.com/orris-inc/tenantdesk/internal/interfaces/http/middleware"
)

// TenantRouteConfig holds dependencies for department, reseller and user routes.
// Authorization happens in the use cases; the routes only require a caller.
type TenantRouteConfig struct {
	DepartmentHandler   *handlers.DepartmentHandler
	ResellerHandler     *handlers.ResellerHandler
	SubscriptionHandler *handlers.SubscriptionHandler
	UserHandler         *handlers.UserHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

func SetupTenantRoutes(api *gin.RouterGroup, cfg *TenantRouteConfig) {
	departments := api.Group("/departments", cfg.AuthMiddleware.RequireAuth())
	{
		departments.GET("", cfg.DepartmentHandler.ListDepartments)
		departments.POST("", cfg.DepartmentHandler.CreateDepartment)
		departments.GET("/:id", cfg.DepartmentHandler.GetDepartment)
		departments.PUT("/:id", cfg.DepartmentHandler.UpdateDepartment)

		departments.POST("/:id/admins", cfg.DepartmentHandler.AddDepartmentAdmin)
		departments.DELETE("/:id/admins/:user_id", cfg.DepartmentHandler.RemoveDepartmentAdmin)

		departments.GET("/:id/users", cfg.DepartmentHandler.ListDepartmentUsers)
		departments.POST("/:id/users", cfg.DepartmentHandler.AddDepartmentUser)
		departments.DELETE("/:id/users/:user_id", cfg.DepartmentHandler.RemoveDepartmentUser)
	}

	resellers := api.Group("/resellers", cfg.AuthMiddleware.RequireAuth())
	{
		resellers.GET("", cfg.ResellerHandler.ListResellers)
		resellers.POST("", cfg.ResellerHandler.CreateReseller)
		resellers.GET("/:id", cfg.ResellerHandler.GetReseller)
		resellers.PUT("/:id", cfg.ResellerHandler.UpdateReseller)

		resellers.POST("/:id/admins", cfg.ResellerHandler.AddResellerAdmin)
		resellers.DELETE("/:id/admins/:user_id", cfg.ResellerHandler.RemoveResellerAdmin)

		resellers.GET("/:id/customers", cfg.ResellerHandler.ListCustomers)
		resellers.POST("/:id/customers", cfg.ResellerHandler.AddCustomer)
		resellers.DELETE("/:id/customers/:department_id", cfg.ResellerHandler.RemoveCustomer)

		resellers.POST("/:id/subscriptions", cfg.SubscriptionHandler.CreateResellerSubscription)
	}

	api.GET("/users", cfg.AuthMiddleware.RequireAuth(), cfg.UserHandler.ListUsers)
}
