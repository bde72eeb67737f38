package http

import (
	authUsecases "github.com/orris-inc/tenantdesk/internal/application/auth/usecases"
	departmentUsecases "github.com/orris-inc/tenantdesk/internal/application/department/usecases"
	resellerUsecases "github.com/orris-inc/tenantdesk/internal/application/reseller/usecases"
	packageUsecases "github.com/orris-inc/tenantdesk/internal/application/servicepackage/usecases"
	subscriptionUsecases "github.com/orris-inc/tenantdesk/internal/application/subscription/usecases"
	userUsecases "github.com/orris-inc/tenantdesk/internal/application/user/usecases"
)

// allUseCases holds every use case exposed through the HTTP handlers and the
// background jobs.
type allUseCases struct {
	// Auth
	registerUC      *authUsecases.RegisterUseCase
	loginUC         *authUsecases.LoginUseCase
	refreshUC       *authUsecases.RefreshUseCase
	logoutUC        *authUsecases.LogoutUseCase
	getProfileUC    *authUsecases.GetProfileUseCase
	updateProfileUC *authUsecases.UpdateProfileUseCase
	beginOAuthUC    *authUsecases.BeginOAuthUseCase
	oauthCallbackUC *authUsecases.OAuthCallbackUseCase

	// Users
	ensureUserUC *userUsecases.EnsureUserUseCase
	listUsersUC  *userUsecases.ListUsersUseCase

	// Departments
	createDepartmentUC      *departmentUsecases.CreateDepartmentUseCase
	getDepartmentUC         *departmentUsecases.GetDepartmentUseCase
	listDepartmentsUC       *departmentUsecases.ListDepartmentsUseCase
	updateDepartmentUC      *departmentUsecases.UpdateDepartmentUseCase
	listDepartmentUsersUC   *departmentUsecases.ListDepartmentUsersUseCase
	addDepartmentAdminUC    *departmentUsecases.AddDepartmentAdminUseCase
	addDepartmentUserUC     *departmentUsecases.AddDepartmentUserUseCase
	removeDepartmentAdminUC *departmentUsecases.RemoveDepartmentAdminUseCase
	removeDepartmentUserUC  *departmentUsecases.RemoveDepartmentUserUseCase

	// Resellers
	createResellerUC         *resellerUsecases.CreateResellerUseCase
	getResellerUC            *resellerUsecases.GetResellerUseCase
	listResellersUC          *resellerUsecases.ListResellersUseCase
	updateResellerUC         *resellerUsecases.UpdateResellerUseCase
	addResellerAdminUC       *resellerUsecases.AddResellerAdminUseCase
	removeResellerAdminUC    *resellerUsecases.RemoveResellerAdminUseCase
	addResellerCustomerUC    *resellerUsecases.AddResellerCustomerUseCase
	listResellerCustomersUC  *resellerUsecases.ListResellerCustomersUseCase
	removeResellerCustomerUC *resellerUsecases.RemoveResellerCustomerUseCase

	// Service packages
	createPackageUC *packageUsecases.CreatePackageUseCase
	updatePackageUC *packageUsecases.UpdatePackageUseCase
	deletePackageUC *packageUsecases.DeletePackageUseCase
	getPackageUC    *packageUsecases.GetPackageUseCase
	listPackagesUC  *packageUsecases.ListPackagesUseCase

	// Subscriptions, access and transactions
	createSubscriptionUC  *subscriptionUsecases.CreateSubscriptionUseCase
	getSubscriptionUC     *subscriptionUsecases.GetSubscriptionUseCase
	listSubscriptionsUC   *subscriptionUsecases.ListSubscriptionsUseCase
	cancelSubscriptionUC  *subscriptionUsecases.CancelSubscriptionUseCase
	expireSubscriptionsUC *subscriptionUsecases.ExpireSubscriptionsUseCase
	grantAccessUC         *subscriptionUsecases.GrantAccessUseCase
	revokeAccessUC        *subscriptionUsecases.RevokeAccessUseCase
	listAccessUC          *subscriptionUsecases.ListAccessUseCase
	myAccessUC            *subscriptionUsecases.MyAccessUseCase
	listTransactionsUC    *subscriptionUsecases.ListTransactionsUseCase
	exportTransactionsUC  *subscriptionUsecases.ExportTransactionsUseCase
}

func (c *Container) newUseCases() *allUseCases {
	r := c.repos
	s := c.svcs
	log := c.log
	m := c.metrics

	ensureUser := userUsecases.NewEnsureUserUseCase(r.userRepo, s.hasher, s.notifier, log)

	return &allUseCases{
		registerUC:      authUsecases.NewRegisterUseCase(r.userRepo, s.hasher, s.jwtSvc, log),
		loginUC:         authUsecases.NewLoginUseCase(r.userRepo, s.hasher, s.jwtSvc, m, log),
		refreshUC:       authUsecases.NewRefreshUseCase(r.userRepo, s.jwtSvc, s.blocklist, log),
		logoutUC:        authUsecases.NewLogoutUseCase(s.jwtSvc, s.blocklist, log),
		getProfileUC:    authUsecases.NewGetProfileUseCase(r.userRepo, s.guard, log),
		updateProfileUC: authUsecases.NewUpdateProfileUseCase(r.userRepo, s.guard, log),
		beginOAuthUC:    authUsecases.NewBeginOAuthUseCase(s.providers, s.states, log),
		oauthCallbackUC: authUsecases.NewOAuthCallbackUseCase(s.providers, s.states, r.userRepo, s.jwtSvc, m, log),

		ensureUserUC: ensureUser,
		listUsersUC:  userUsecases.NewListUsersUseCase(r.userRepo, s.guard, log),

		createDepartmentUC:      departmentUsecases.NewCreateDepartmentUseCase(r.departmentRepo, r.assignmentRepo, s.txManager, s.guard, log),
		getDepartmentUC:         departmentUsecases.NewGetDepartmentUseCase(r.departmentRepo, r.assignmentRepo, r.customerRepo, r.userRepo, s.guard, log),
		listDepartmentsUC:       departmentUsecases.NewListDepartmentsUseCase(r.departmentRepo, s.guard, log),
		updateDepartmentUC:      departmentUsecases.NewUpdateDepartmentUseCase(r.departmentRepo, s.guard, log),
		listDepartmentUsersUC:   departmentUsecases.NewListDepartmentUsersUseCase(r.departmentRepo, r.assignmentRepo, r.userRepo, s.guard, log),
		addDepartmentAdminUC:    departmentUsecases.NewAddDepartmentAdminUseCase(r.departmentRepo, r.assignmentRepo, ensureUser, s.txManager, s.guard, log),
		addDepartmentUserUC:     departmentUsecases.NewAddDepartmentUserUseCase(r.departmentRepo, r.assignmentRepo, ensureUser, s.txManager, s.guard, log),
		removeDepartmentAdminUC: departmentUsecases.NewRemoveDepartmentAdminUseCase(r.assignmentRepo, s.guard, log),
		removeDepartmentUserUC:  departmentUsecases.NewRemoveDepartmentUserUseCase(r.assignmentRepo, s.guard, log),

		createResellerUC:         resellerUsecases.NewCreateResellerUseCase(r.resellerRepo, s.guard, log),
		getResellerUC:            resellerUsecases.NewGetResellerUseCase(r.resellerRepo, r.resellerAdminRepo, r.customerRepo, r.departmentRepo, r.userRepo, s.guard, log),
		listResellersUC:          resellerUsecases.NewListResellersUseCase(r.resellerRepo, s.guard, log),
		updateResellerUC:         resellerUsecases.NewUpdateResellerUseCase(r.resellerRepo, s.guard, log),
		addResellerAdminUC:       resellerUsecases.NewAddResellerAdminUseCase(r.resellerRepo, r.resellerAdminRepo, r.userRepo, ensureUser, s.txManager, s.guard, log),
		removeResellerAdminUC:    resellerUsecases.NewRemoveResellerAdminUseCase(r.resellerAdminRepo, r.userRepo, s.txManager, s.guard, log),
		addResellerCustomerUC:    resellerUsecases.NewAddResellerCustomerUseCase(r.resellerRepo, r.customerRepo, r.departmentRepo, s.txManager, s.guard, log),
		listResellerCustomersUC:  resellerUsecases.NewListResellerCustomersUseCase(r.resellerRepo, r.customerRepo, r.departmentRepo, s.guard, log),
		removeResellerCustomerUC: resellerUsecases.NewRemoveResellerCustomerUseCase(r.customerRepo, s.guard, log),

		createPackageUC: packageUsecases.NewCreatePackageUseCase(r.packageRepo, s.renderer, s.guard, log),
		updatePackageUC: packageUsecases.NewUpdatePackageUseCase(r.packageRepo, s.renderer, s.guard, log),
		deletePackageUC: packageUsecases.NewDeletePackageUseCase(r.packageRepo, r.subscriptionRepo, s.txManager, s.guard, log),
		getPackageUC:    packageUsecases.NewGetPackageUseCase(r.packageRepo, s.renderer, s.guard, log),
		listPackagesUC:  packageUsecases.NewListPackagesUseCase(r.packageRepo, s.renderer, s.guard, log),

		createSubscriptionUC: subscriptionUsecases.NewCreateSubscriptionUseCase(
			r.departmentRepo, r.customerRepo, r.packageRepo, r.subscriptionRepo, r.transactionRepo,
			s.txManager, s.guard, m, log,
		),
		getSubscriptionUC:     subscriptionUsecases.NewGetSubscriptionUseCase(r.subscriptionRepo, s.guard, log),
		listSubscriptionsUC:   subscriptionUsecases.NewListSubscriptionsUseCase(r.subscriptionRepo, s.guard, log),
		cancelSubscriptionUC:  subscriptionUsecases.NewCancelSubscriptionUseCase(r.subscriptionRepo, s.guard, log),
		expireSubscriptionsUC: subscriptionUsecases.NewExpireSubscriptionsUseCase(r.subscriptionRepo, m, log.Named("expiry")),
		grantAccessUC: subscriptionUsecases.NewGrantAccessUseCase(
			r.subscriptionRepo, r.accessRepo, r.assignmentRepo, r.userRepo,
			s.txManager, s.guard, m, log,
		),
		revokeAccessUC:       subscriptionUsecases.NewRevokeAccessUseCase(r.subscriptionRepo, r.accessRepo, s.guard, m, log),
		listAccessUC:         subscriptionUsecases.NewListAccessUseCase(r.subscriptionRepo, r.accessRepo, r.userRepo, s.guard, log),
		myAccessUC:           subscriptionUsecases.NewMyAccessUseCase(r.accessRepo, r.packageRepo, s.guard, log),
		listTransactionsUC:   subscriptionUsecases.NewListTransactionsUseCase(r.transactionRepo, s.guard, log),
		exportTransactionsUC: subscriptionUsecases.NewExportTransactionsUseCase(r.transactionRepo, s.guard, log),
	}
}
