// Package apptest wires the real repositories and policy enforcer against an
// in-memory SQLite database for use case tests.
package apptest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/orris-inc/tenantdesk/internal/application/authorization"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/domain/department"
	"github.com/orris-inc/tenantdesk/internal/domain/reseller"
	"github.com/orris-inc/tenantdesk/internal/domain/servicepackage"
	"github.com/orris-inc/tenantdesk/internal/domain/shared"
	"github.com/orris-inc/tenantdesk/internal/domain/user"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/permission"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/repository"
	"github.com/orris-inc/tenantdesk/internal/shared/db"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type Env struct {
	DB  *gorm.DB
	Log logger.Interface
	Tx  *db.TransactionManager

	Users          *repository.UserRepository
	Departments    *repository.DepartmentRepository
	Assignments    *repository.DepartmentAssignmentRepository
	Resellers      *repository.ResellerRepository
	ResellerAdmins *repository.ResellerAdminRepository
	Customers      *repository.ResellerCustomerRepository
	Packages       *repository.ServicePackageRepository
	Subscriptions  *repository.SubscriptionRepository
	Access         *repository.ServiceAccessRepository
	Transactions   *repository.TransactionRepository

	Resolver *authorization.Resolver
	Guard    *authorization.Guard
}

func New(t testing.TB) *Env {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, gdb.AutoMigrate(models.All()...))

	log := logger.NewNop()
	enforcer, err := permission.NewMemoryEnforcer(log)
	require.NoError(t, err)
	require.NoError(t, permission.InitDefaultPermissions(enforcer, log))

	e := &Env{
		DB:             gdb,
		Log:            log,
		Tx:             db.NewTransactionManager(gdb),
		Users:          repository.NewUserRepository(gdb, log),
		Departments:    repository.NewDepartmentRepository(gdb, log),
		Assignments:    repository.NewDepartmentAssignmentRepository(gdb, log),
		Resellers:      repository.NewResellerRepository(gdb, log),
		ResellerAdmins: repository.NewResellerAdminRepository(gdb, log),
		Customers:      repository.NewResellerCustomerRepository(gdb, log),
		Packages:       repository.NewServicePackageRepository(gdb, log),
		Subscriptions:  repository.NewSubscriptionRepository(gdb, log),
		Access:         repository.NewServiceAccessRepository(gdb, log),
		Transactions:   repository.NewTransactionRepository(gdb, log),
		Guard:          authorization.NewGuard(access.NewAuthorizer(enforcer)),
	}
	e.Resolver = authorization.NewResolver(e.Users, e.Assignments, e.ResellerAdmins, e.Customers, log)
	return e
}

// User stores a user without a password.
func (e *Env) User(t testing.TB, email string) *user.User {
	t.Helper()
	u, err := user.NewUser(email, "Test "+email)
	require.NoError(t, err)
	require.NoError(t, e.Users.Create(context.Background(), u))
	return u
}

func (e *Env) Root(t testing.TB, email string) *user.User {
	t.Helper()
	u, err := user.NewUser(email, "Root "+email)
	require.NoError(t, err)
	u.GrantRootAdmin()
	require.NoError(t, e.Users.Create(context.Background(), u))
	return u
}

func (e *Env) Department(t testing.TB, name string) *department.Department {
	t.Helper()
	d, err := department.NewDepartment(name, "", department.CustomerTypeDirect)
	require.NoError(t, err)
	require.NoError(t, e.Departments.Create(context.Background(), d))
	return d
}

func (e *Env) Assign(t testing.TB, role department.Role, userID, departmentID uint) {
	t.Helper()
	a, err := department.NewAssignment(role, userID, departmentID)
	require.NoError(t, err)
	require.NoError(t, e.Assignments.Add(context.Background(), a))
}

func (e *Env) Reseller(t testing.TB, name string) *reseller.Reseller {
	t.Helper()
	r, err := reseller.NewReseller(name, "", 10_00)
	require.NoError(t, err)
	require.NoError(t, e.Resellers.Create(context.Background(), r))
	return r
}

func (e *Env) ResellerAdmin(t testing.TB, userID, resellerID uint) {
	t.Helper()
	a, err := reseller.NewAdmin(userID, resellerID)
	require.NoError(t, err)
	require.NoError(t, e.ResellerAdmins.Add(context.Background(), a))
}

func (e *Env) Customer(t testing.TB, resellerID, departmentID uint) {
	t.Helper()
	c, err := reseller.NewCustomer(resellerID, departmentID)
	require.NoError(t, err)
	require.NoError(t, e.Customers.Add(context.Background(), c))
}

func (e *Env) Package(t testing.TB, name string, price shared.Hundredths, cycle servicepackage.BillingCycle) *servicepackage.ServicePackage {
	t.Helper()
	p, err := servicepackage.NewServicePackage(name, "", price, cycle, servicepackage.Features{"seats": 10})
	require.NoError(t, err)
	require.NoError(t, e.Packages.Create(context.Background(), p))
	return p
}

// Principal resolves the capability set of userID as the middleware would.
func (e *Env) Principal(t testing.TB, userID uint) *access.Principal {
	t.Helper()
	p, err := e.Resolver.Resolve(context.Background(), userID)
	require.NoError(t, err)
	return p
}
