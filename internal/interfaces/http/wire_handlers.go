package http

import (
	"github.com/orris-inc/tenantdesk/internal/interfaces/http/handlers"
)

// allHandlers holds all HTTP handler instances.
type allHandlers struct {
	authHandler         *handlers.AuthHandler
	userHandler         *handlers.UserHandler
	departmentHandler   *handlers.DepartmentHandler
	resellerHandler     *handlers.ResellerHandler
	packageHandler      *handlers.PackageHandler
	subscriptionHandler *handlers.SubscriptionHandler
	transactionHandler  *handlers.TransactionHandler
	healthHandler       *handlers.HealthHandler
}

func (c *Container) newHandlers() *allHandlers {
	u := c.ucs
	log := c.log

	return &allHandlers{
		authHandler: handlers.NewAuthHandler(
			u.registerUC, u.loginUC, u.refreshUC, u.logoutUC,
			u.getProfileUC, u.updateProfileUC, u.beginOAuthUC, u.oauthCallbackUC,
			log,
		),
		userHandler: handlers.NewUserHandler(u.listUsersUC, log),
		departmentHandler: handlers.NewDepartmentHandler(
			u.createDepartmentUC, u.getDepartmentUC, u.listDepartmentsUC, u.updateDepartmentUC,
			u.listDepartmentUsersUC,
			u.addDepartmentAdminUC, u.addDepartmentUserUC,
			u.removeDepartmentAdminUC, u.removeDepartmentUserUC,
			log,
		),
		resellerHandler: handlers.NewResellerHandler(
			u.createResellerUC, u.getResellerUC, u.listResellersUC, u.updateResellerUC,
			u.addResellerAdminUC, u.removeResellerAdminUC,
			u.addResellerCustomerUC, u.listResellerCustomersUC, u.removeResellerCustomerUC,
			log,
		),
		packageHandler: handlers.NewPackageHandler(
			u.createPackageUC, u.updatePackageUC, u.deletePackageUC, u.getPackageUC, u.listPackagesUC,
			log,
		),
		subscriptionHandler: handlers.NewSubscriptionHandler(
			u.createSubscriptionUC, u.getSubscriptionUC, u.listSubscriptionsUC, u.cancelSubscriptionUC,
			u.grantAccessUC, u.revokeAccessUC, u.listAccessUC, u.myAccessUC,
			log,
		),
		transactionHandler: handlers.NewTransactionHandler(u.listTransactionsUC, u.exportTransactionsUC, log),
		healthHandler:      handlers.NewHealthHandler(c.svcs.health),
	}
}
