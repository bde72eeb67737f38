package http

import (
	"gorm.io/gorm"

	"github.com/orris-inc/tenantdesk/internal/domain/department"
	"github.com/orris-inc/tenantdesk/internal/domain/reseller"
	"github.com/orris-inc/tenantdesk/internal/domain/servicepackage"
	"github.com/orris-inc/tenantdesk/internal/domain/subscription"
	"github.com/orris-inc/tenantdesk/internal/domain/user"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/repository"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	userRepo          user.Repository
	departmentRepo    department.Repository
	assignmentRepo    department.AssignmentRepository
	resellerRepo      reseller.Repository
	resellerAdminRepo reseller.AdminRepository
	customerRepo      reseller.CustomerRepository
	packageRepo       servicepackage.Repository
	subscriptionRepo  subscription.Repository
	accessRepo        subscription.AccessRepository
	transactionRepo   subscription.TransactionRepository
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		userRepo:          repository.NewUserRepository(db, log),
		departmentRepo:    repository.NewDepartmentRepository(db, log),
		assignmentRepo:    repository.NewDepartmentAssignmentRepository(db, log),
		resellerRepo:      repository.NewResellerRepository(db, log),
		resellerAdminRepo: repository.NewResellerAdminRepository(db, log),
		customerRepo:      repository.NewResellerCustomerRepository(db, log),
		packageRepo:       repository.NewServicePackageRepository(db, log),
		subscriptionRepo:  repository.NewSubscriptionRepository(db, log),
		accessRepo:        repository.NewServiceAccessRepository(db, log),
		transactionRepo:   repository.NewTransactionRepository(db, log),
	}
}
