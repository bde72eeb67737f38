package usecases

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/orris-inc/tenantdesk/internal/application/apptest"
	"github.com/orris-inc/tenantdesk/internal/domain/department"
	"github.com/orris-inc/tenantdesk/internal/domain/reseller"
	"github.com/orris-inc/tenantdesk/internal/domain/servicepackage"
	"github.com/orris-inc/tenantdesk/internal/domain/subscription"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/metrics"
	"github.com/orris-inc/tenantdesk/internal/shared/biztime"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
)

type fixture struct {
	env     *apptest.Env
	metrics *metrics.Metrics

	create       *CreateSubscriptionUseCase
	get          *GetSubscriptionUseCase
	list         *ListSubscriptionsUseCase
	cancel       *CancelSubscriptionUseCase
	expire       *ExpireSubscriptionsUseCase
	grant        *GrantAccessUseCase
	revoke       *RevokeAccessUseCase
	listAccess   *ListAccessUseCase
	myAccess     *MyAccessUseCase
	transactions *ListTransactionsUseCase
	export       *ExportTransactionsUseCase
}

func newFixture(t *testing.T) *fixture {
	env := apptest.New(t)
	m := metrics.New()
	return &fixture{
		env:          env,
		metrics:      m,
		create:       NewCreateSubscriptionUseCase(env.Departments, env.Customers, env.Packages, env.Subscriptions, env.Transactions, env.Tx, env.Guard, m, env.Log),
		get:          NewGetSubscriptionUseCase(env.Subscriptions, env.Guard, env.Log),
		list:         NewListSubscriptionsUseCase(env.Subscriptions, env.Guard, env.Log),
		cancel:       NewCancelSubscriptionUseCase(env.Subscriptions, env.Guard, env.Log),
		expire:       NewExpireSubscriptionsUseCase(env.Subscriptions, m, env.Log),
		grant:        NewGrantAccessUseCase(env.Subscriptions, env.Access, env.Assignments, env.Users, env.Tx, env.Guard, m, env.Log),
		revoke:       NewRevokeAccessUseCase(env.Subscriptions, env.Access, env.Guard, m, env.Log),
		listAccess:   NewListAccessUseCase(env.Subscriptions, env.Access, env.Users, env.Guard, env.Log),
		myAccess:     NewMyAccessUseCase(env.Access, env.Packages, env.Guard, env.Log),
		transactions: NewListTransactionsUseCase(env.Transactions, env.Guard, env.Log),
		export:       NewExportTransactionsUseCase(env.Transactions, env.Guard, env.Log),
	}
}

func freezeClock(t *testing.T, day string) {
	t.Helper()
	d, err := biztime.ParseDate(day)
	require.NoError(t, err)
	restore := biztime.SetNowFunc(func() time.Time { return d.Add(10 * time.Hour) })
	t.Cleanup(restore)
}

func errType(err error) apperrors.ErrorType {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		return appErr.Type
	}
	return ""
}

func TestCreateSubscription_MonthlyEndDate(t *testing.T) {
	freezeClock(t, "2024-01-01")
	f := newFixture(t)
	ctx := context.Background()
	root := f.env.Root(t, "root@example.com")
	dept := f.env.Department(t, "Acme")
	pkg := f.env.Package(t, "Basic", 19_99, servicepackage.BillingCycleMonthly)

	res, err := f.create.Execute(ctx, CreateSubscriptionCommand{
		Principal:    f.env.Principal(t, root.ID()),
		DepartmentID: dept.ID(),
		PackageID:    pkg.ID(),
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", res.Subscription.StartDate)
	assert.Equal(t, "2024-01-31", res.Subscription.EndDate)
	assert.Equal(t, "active", res.Subscription.Status)
	assert.Equal(t, "direct", res.Subscription.Source)
	assert.Nil(t, res.Subscription.ResellerID)

	assert.Equal(t, "19.99", res.Transaction.Amount.String())
	assert.Equal(t, subscription.DefaultPaymentMethod, res.Transaction.PaymentMethod)
	assert.Equal(t, "completed", res.Transaction.Status)
	assert.Regexp(t, `^txn_[0-9A-Za-z]{20}$`, res.Transaction.TransactionID)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SubscriptionsCreatedTotal.WithLabelValues("direct")))
}

func TestCreateSubscription_BillingCycles(t *testing.T) {
	freezeClock(t, "2024-03-10")
	f := newFixture(t)
	ctx := context.Background()
	rootP := f.env.Principal(t, f.env.Root(t, "root@example.com").ID())
	dept := f.env.Department(t, "Acme")

	tests := []struct {
		cycle servicepackage.BillingCycle
		end   string
	}{
		{servicepackage.BillingCycleMonthly, "2024-04-09"},
		{servicepackage.BillingCycleQuarterly, "2024-06-08"},
		{servicepackage.BillingCycleYearly, "2025-03-10"},
	}
	for _, tt := range tests {
		t.Run(string(tt.cycle), func(t *testing.T) {
			pkg := f.env.Package(t, "P-"+string(tt.cycle), 1_00, tt.cycle)
			res, err := f.create.Execute(ctx, CreateSubscriptionCommand{Principal: rootP, DepartmentID: dept.ID(), PackageID: pkg.ID(), PaymentMethod: "invoice"})
			require.NoError(t, err)
			assert.Equal(t, tt.end, res.Subscription.EndDate)
			assert.Equal(t, "invoice", res.Transaction.PaymentMethod)
		})
	}
}

func TestCreateSubscription_Authorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	root := f.env.Root(t, "root@example.com")
	deptAdmin := f.env.User(t, "admin@example.com")
	member := f.env.User(t, "member@example.com")
	resellerAdmin := f.env.User(t, "ra@example.com")

	own := f.env.Department(t, "Own")
	customer := f.env.Department(t, "Customer")
	stranger := f.env.Department(t, "Stranger")
	f.env.Assign(t, department.RoleAdmin, deptAdmin.ID(), own.ID())
	f.env.Assign(t, department.RoleMember, member.ID(), own.ID())

	r := f.env.Reseller(t, "R")
	f.env.ResellerAdmin(t, resellerAdmin.ID(), r.ID())
	f.env.Customer(t, r.ID(), customer.ID())
	lapsed := f.env.Department(t, "Lapsed")
	lapsedLink, err := reseller.NewCustomer(r.ID(), lapsed.ID())
	require.NoError(t, err)
	lapsedLink.IsActive = false
	require.NoError(t, f.env.Customers.Add(ctx, lapsedLink))
	pkg := f.env.Package(t, "Basic", 10_00, servicepackage.BillingCycleMonthly)

	rID := r.ID()
	tests := []struct {
		name       string
		userID     uint
		deptID     uint
		resellerID *uint
		source     string
		expected   apperrors.ErrorType
	}{
		{"root buys directly", root.ID(), stranger.ID(), nil, "direct", ""},
		{"department admin buys directly", deptAdmin.ID(), own.ID(), nil, "direct", ""},
		{"reseller admin buys for a customer", resellerAdmin.ID(), customer.ID(), nil, "reseller", ""},
		{"reseller path named explicitly", resellerAdmin.ID(), customer.ID(), &rID, "reseller", ""},
		{"reseller admin cannot buy for a non-customer", resellerAdmin.ID(), stranger.ID(), nil, "", apperrors.ErrorTypeForbidden},
		{"explicit reseller path needs a customer link", resellerAdmin.ID(), stranger.ID(), &rID, "", apperrors.ErrorTypeNotFound},
		{"inactive customer link does not authorize", resellerAdmin.ID(), lapsed.ID(), nil, "", apperrors.ErrorTypeForbidden},
		{"explicit reseller path needs an active link", resellerAdmin.ID(), lapsed.ID(), &rID, "", apperrors.ErrorTypeNotFound},
		{"member cannot buy", member.ID(), own.ID(), nil, "", apperrors.ErrorTypeForbidden},
		{"department admin cannot buy for others", deptAdmin.ID(), customer.ID(), nil, "", apperrors.ErrorTypeForbidden},
		{"unknown department is forbidden for non-root", deptAdmin.ID(), 999, nil, "", apperrors.ErrorTypeForbidden},
		{"unknown department is not found for root", root.ID(), 999, nil, "", apperrors.ErrorTypeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.create.Execute(ctx, CreateSubscriptionCommand{
				Principal:    f.env.Principal(t, tt.userID),
				DepartmentID: tt.deptID,
				PackageID:    pkg.ID(),
				ResellerID:   tt.resellerID,
			})
			if tt.expected != "" {
				assert.Equal(t, tt.expected, errType(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.source, res.Subscription.Source)
			if tt.source == "reseller" {
				require.NotNil(t, res.Subscription.ResellerID)
				assert.Equal(t, r.ID(), *res.Subscription.ResellerID)
			}
		})
	}
}

func TestCreateSubscription_PackageChecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rootP := f.env.Principal(t, f.env.Root(t, "root@example.com").ID())
	dept := f.env.Department(t, "Acme")
	pkg := f.env.Package(t, "Old", 1_00, servicepackage.BillingCycleMonthly)

	inactive := false
	require.NoError(t, pkg.Update(servicepackage.ServicePackageUpdate{IsActive: &inactive}))
	require.NoError(t, f.env.Packages.Update(ctx, pkg))

	_, err := f.create.Execute(ctx, CreateSubscriptionCommand{Principal: rootP, DepartmentID: dept.ID(), PackageID: pkg.ID()})
	assert.Equal(t, apperrors.ErrorTypeBadRequest, errType(err))

	_, err = f.create.Execute(ctx, CreateSubscriptionCommand{Principal: rootP, DepartmentID: dept.ID(), PackageID: 999})
	assert.Equal(t, apperrors.ErrorTypeNotFound, errType(err))

	list, total, err := f.env.Transactions.List(ctx, subscription.TransactionFilter{Scope: subscription.Scope{All: true}})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)
}

// subscribed sets up a department with an admin, a member and an outsider,
// plus one active subscription bought by root.
type subscribed struct {
	admin, member, outsider uint
	dept                    uint
	sub                     uint
}

func setupSubscribed(t *testing.T, f *fixture) subscribed {
	t.Helper()
	ctx := context.Background()
	root := f.env.Root(t, "root@example.com")
	admin := f.env.User(t, "admin@example.com")
	member := f.env.User(t, "member@example.com")
	outsider := f.env.User(t, "outsider@example.com")
	dept := f.env.Department(t, "Acme")
	f.env.Assign(t, department.RoleAdmin, admin.ID(), dept.ID())
	f.env.Assign(t, department.RoleMember, member.ID(), dept.ID())
	pkg := f.env.Package(t, "Basic", 10_00, servicepackage.BillingCycleMonthly)

	res, err := f.create.Execute(ctx, CreateSubscriptionCommand{Principal: f.env.Principal(t, root.ID()), DepartmentID: dept.ID(), PackageID: pkg.ID()})
	require.NoError(t, err)
	return subscribed{admin: admin.ID(), member: member.ID(), outsider: outsider.ID(), dept: dept.ID(), sub: res.Subscription.ID}
}

func TestGrantAccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := setupSubscribed(t, f)
	adminP := f.env.Principal(t, s.admin)

	_, err := f.grant.Execute(ctx, GrantAccessCommand{Principal: adminP, SubscriptionID: s.sub, UserID: s.outsider})
	assert.Equal(t, apperrors.ErrorTypeBadRequest, errType(err), "grantee must be a department user")

	_, err = f.grant.Execute(ctx, GrantAccessCommand{Principal: adminP, SubscriptionID: s.sub, UserID: s.admin})
	assert.Equal(t, apperrors.ErrorTypeBadRequest, errType(err), "admins are not members")

	_, err = f.grant.Execute(ctx, GrantAccessCommand{Principal: f.env.Principal(t, s.member), SubscriptionID: s.sub, UserID: s.member})
	assert.Equal(t, apperrors.ErrorTypeForbidden, errType(err))

	granted, err := f.grant.Execute(ctx, GrantAccessCommand{Principal: adminP, SubscriptionID: s.sub, UserID: s.member})
	require.NoError(t, err)
	assert.Equal(t, "member@example.com", granted.User.Email)

	_, err = f.grant.Execute(ctx, GrantAccessCommand{Principal: adminP, SubscriptionID: s.sub, UserID: s.member})
	assert.Equal(t, apperrors.ErrorTypeConflict, errType(err))

	grants, err := f.listAccess.Execute(ctx, ListAccessQuery{Principal: adminP, SubscriptionID: s.sub})
	require.NoError(t, err)
	require.Len(t, grants, 1, "granting twice keeps one row")

	mine, err := f.myAccess.Execute(ctx, MyAccessQuery{Principal: f.env.Principal(t, s.member)})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Basic", mine[0].PackageName)

	require.NoError(t, f.revoke.Execute(ctx, RevokeAccessCommand{Principal: adminP, SubscriptionID: s.sub, UserID: s.member}))
	err = f.revoke.Execute(ctx, RevokeAccessCommand{Principal: adminP, SubscriptionID: s.sub, UserID: s.member})
	assert.Equal(t, apperrors.ErrorTypeNotFound, errType(err))

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AccessChangesTotal.WithLabelValues("grant")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AccessChangesTotal.WithLabelValues("revoke")))
}

func TestGrantAccess_ExistingGrantOnLapsedSubscription(t *testing.T) {
	freezeClock(t, "2026-01-10")
	f := newFixture(t)
	ctx := context.Background()
	s := setupSubscribed(t, f)
	adminP := f.env.Principal(t, s.admin)
	late := f.env.User(t, "late@example.com")
	f.env.Assign(t, department.RoleMember, late.ID(), s.dept)

	_, err := f.grant.Execute(ctx, GrantAccessCommand{Principal: adminP, SubscriptionID: s.sub, UserID: s.member})
	require.NoError(t, err)

	freezeClock(t, "2026-03-01")

	tests := []struct {
		name     string
		userID   uint
		expected apperrors.ErrorType
	}{
		{"existing grant is reported first", s.member, apperrors.ErrorTypeConflict},
		{"new grant needs an active subscription", late.ID(), apperrors.ErrorTypeBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.grant.Execute(ctx, GrantAccessCommand{Principal: adminP, SubscriptionID: s.sub, UserID: tt.userID})
			assert.Equal(t, tt.expected, errType(err))
		})
	}
}

func TestGetSubscription_HidesOtherTenants(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := setupSubscribed(t, f)

	got, err := f.get.Execute(ctx, GetSubscriptionQuery{Principal: f.env.Principal(t, s.admin), SubscriptionID: s.sub})
	require.NoError(t, err)
	assert.Equal(t, s.dept, got.DepartmentID)

	_, err = f.get.Execute(ctx, GetSubscriptionQuery{Principal: f.env.Principal(t, s.outsider), SubscriptionID: s.sub})
	assert.Equal(t, apperrors.ErrorTypeForbidden, errType(err))

	_, err = f.get.Execute(ctx, GetSubscriptionQuery{Principal: f.env.Principal(t, s.outsider), SubscriptionID: 999})
	assert.Equal(t, apperrors.ErrorTypeForbidden, errType(err), "missing and foreign look the same")

	res, err := f.list.Execute(ctx, ListSubscriptionsQuery{Principal: f.env.Principal(t, s.outsider)})
	require.NoError(t, err)
	assert.Empty(t, res.Subscriptions)

	res, err = f.list.Execute(ctx, ListSubscriptionsQuery{Principal: f.env.Principal(t, s.admin), Status: "active"})
	require.NoError(t, err)
	assert.Len(t, res.Subscriptions, 1)

	_, err = f.list.Execute(ctx, ListSubscriptionsQuery{Principal: f.env.Principal(t, s.admin), Status: "paused"})
	assert.Equal(t, apperrors.ErrorTypeValidation, errType(err))
}

func TestSubscriptionLifecycle(t *testing.T) {
	freezeClock(t, "2024-01-01")
	f := newFixture(t)
	ctx := context.Background()
	s := setupSubscribed(t, f)
	adminP := f.env.Principal(t, s.admin)

	n, err := f.expire.Execute(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	freezeClock(t, "2024-02-01")

	got, err := f.get.Execute(ctx, GetSubscriptionQuery{Principal: adminP, SubscriptionID: s.sub})
	require.NoError(t, err)
	assert.Equal(t, "expired", got.Status, "reads expired before the sweep")

	_, err = f.cancel.Execute(ctx, CancelSubscriptionCommand{Principal: adminP, SubscriptionID: s.sub})
	assert.Equal(t, apperrors.ErrorTypeBadRequest, errType(err))

	n, err = f.expire.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SubscriptionsExpiredTotal))

	stored, err := f.env.Subscriptions.GetByID(ctx, s.sub)
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusExpired, stored.Status())

	_, err = f.grant.Execute(ctx, GrantAccessCommand{Principal: adminP, SubscriptionID: s.sub, UserID: s.member})
	assert.Equal(t, apperrors.ErrorTypeBadRequest, errType(err))
}

// cancellingRepository cancels every subscription right after the sweep has
// read it, so the sweep holds a stale copy.
type cancellingRepository struct {
	subscription.Repository
	t *testing.T
}

func (r *cancellingRepository) FindExpired(ctx context.Context, asOf time.Time, limit int) ([]*subscription.Subscription, error) {
	batch, err := r.Repository.FindExpired(ctx, asOf, limit)
	if err != nil {
		return nil, err
	}
	for _, stale := range batch {
		fresh, err := r.Repository.GetByID(ctx, stale.ID())
		require.NoError(r.t, err)
		require.NoError(r.t, fresh.Cancel())
		require.NoError(r.t, r.Repository.Update(ctx, fresh))
	}
	return batch, nil
}

func TestExpireSubscriptions_DoesNotOverwriteConcurrentCancel(t *testing.T) {
	freezeClock(t, "2024-01-01")
	f := newFixture(t)
	ctx := context.Background()
	s := setupSubscribed(t, f)

	freezeClock(t, "2024-02-01")
	sweep := NewExpireSubscriptionsUseCase(&cancellingRepository{Repository: f.env.Subscriptions, t: t}, f.metrics, f.env.Log)

	n, err := sweep.Execute(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	stored, err := f.env.Subscriptions.GetByID(ctx, s.sub)
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusCancelled, stored.Status())
}

func TestCancelSubscription(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := setupSubscribed(t, f)

	_, err := f.cancel.Execute(ctx, CancelSubscriptionCommand{Principal: f.env.Principal(t, s.member), SubscriptionID: s.sub})
	assert.Equal(t, apperrors.ErrorTypeForbidden, errType(err))

	res, err := f.cancel.Execute(ctx, CancelSubscriptionCommand{Principal: f.env.Principal(t, s.admin), SubscriptionID: s.sub})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", res.Status)

	_, err = f.cancel.Execute(ctx, CancelSubscriptionCommand{Principal: f.env.Principal(t, s.admin), SubscriptionID: s.sub})
	assert.Equal(t, apperrors.ErrorTypeBadRequest, errType(err))
}

func TestTransactions_ScopedAndExported(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	root := f.env.Root(t, "root@example.com")
	ra := f.env.User(t, "ra@example.com")
	deptAdmin := f.env.User(t, "admin@example.com")

	customer := f.env.Department(t, "Customer")
	direct := f.env.Department(t, "Direct")
	f.env.Assign(t, department.RoleAdmin, deptAdmin.ID(), customer.ID())
	r := f.env.Reseller(t, "R")
	f.env.ResellerAdmin(t, ra.ID(), r.ID())
	f.env.Customer(t, r.ID(), customer.ID())
	pkg := f.env.Package(t, "Basic", 25_50, servicepackage.BillingCycleMonthly)

	buy := func(userID, deptID uint) {
		_, err := f.create.Execute(ctx, CreateSubscriptionCommand{Principal: f.env.Principal(t, userID), DepartmentID: deptID, PackageID: pkg.ID()})
		require.NoError(t, err)
	}
	buy(ra.ID(), customer.ID())        // reseller sourced
	buy(deptAdmin.ID(), customer.ID()) // direct, same department
	buy(root.ID(), direct.ID())

	tests := []struct {
		name   string
		userID uint
		total  int64
	}{
		{"root sees all", root.ID(), 3},
		{"reseller admin sees reseller-sourced sales to customers", ra.ID(), 1},
		{"department admin sees own department", deptAdmin.ID(), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.transactions.Execute(ctx, ListTransactionsQuery{Principal: f.env.Principal(t, tt.userID)})
			require.NoError(t, err)
			assert.Equal(t, tt.total, res.Total)
		})
	}

	var buf bytes.Buffer
	n, err := f.export.Execute(ctx, ExportTransactionsQuery{Principal: f.env.Principal(t, ra.ID())}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()
	rows, err := wb.GetRows("Transactions")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Transaction Id", rows[0][0])
	assert.Equal(t, "25.5", rows[1][2])
}
