package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tenantdesk/internal/application/apptest"
	"github.com/orris-inc/tenantdesk/internal/domain/servicepackage"
	"github.com/orris-inc/tenantdesk/internal/domain/shared"
	"github.com/orris-inc/tenantdesk/internal/domain/subscription"
	"github.com/orris-inc/tenantdesk/internal/shared/biztime"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/services/markdown"
)

type mockRenderer struct {
	RenderFunc func(string) (string, error)
}

func (m *mockRenderer) Render(s string) (string, error) { return m.RenderFunc(s) }

func errType(err error) apperrors.ErrorType {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		return appErr.Type
	}
	return ""
}

func TestCreatePackage(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	uc := NewCreatePackageUseCase(env.Packages, markdown.NewRenderer(), env.Guard, env.Log)
	root := env.Principal(t, env.Root(t, "root@example.com").ID())
	member := env.Principal(t, env.User(t, "member@example.com").ID())

	tests := []struct {
		name     string
		cmd      CreatePackageCommand
		expected apperrors.ErrorType
	}{
		{"non-root is forbidden", CreatePackageCommand{Principal: member, Name: "Basic", BillingCycle: "monthly"}, apperrors.ErrorTypeForbidden},
		{"unknown cycle", CreatePackageCommand{Principal: root, Name: "Basic", BillingCycle: "weekly"}, apperrors.ErrorTypeValidation},
		{"negative price", CreatePackageCommand{Principal: root, Name: "Basic", BillingCycle: "monthly", Price: -1}, apperrors.ErrorTypeValidation},
		{"blank name", CreatePackageCommand{Principal: root, Name: "  ", BillingCycle: "monthly"}, apperrors.ErrorTypeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.cmd)
			assert.Equal(t, tt.expected, errType(err))
		})
	}

	t.Run("created with rendered description", func(t *testing.T) {
		resp, err := uc.Execute(ctx, CreatePackageCommand{
			Principal:    root,
			Name:         "Pro",
			Description:  "**fast** <script>alert(1)</script>",
			Price:        shared.Hundredths(49_99),
			BillingCycle: "Quarterly",
			Features:     servicepackage.Features{"seats": 25},
		})
		require.NoError(t, err)
		assert.Equal(t, "quarterly", resp.BillingCycle)
		assert.Equal(t, 90, resp.DurationDays)
		assert.Equal(t, "49.99", resp.Price.String())
		assert.Contains(t, resp.DescriptionHTML, "<strong>fast</strong>")
		assert.NotContains(t, resp.DescriptionHTML, "<script>")
		assert.True(t, resp.IsActive)
	})
}

func TestPackageVisibility(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	renderer := &mockRenderer{RenderFunc: func(string) (string, error) { return "", errors.New("boom") }}
	update := NewUpdatePackageUseCase(env.Packages, renderer, env.Guard, env.Log)
	list := NewListPackagesUseCase(env.Packages, renderer, env.Guard, env.Log)
	get := NewGetPackageUseCase(env.Packages, renderer, env.Guard, env.Log)

	root := env.Principal(t, env.Root(t, "root@example.com").ID())
	member := env.Principal(t, env.User(t, "member@example.com").ID())
	basic := env.Package(t, "Basic", 10_00, servicepackage.BillingCycleMonthly)
	legacy := env.Package(t, "Legacy", 5_00, servicepackage.BillingCycleYearly)

	inactive := false
	_, err := update.Execute(ctx, UpdatePackageCommand{Principal: member, PackageID: legacy.ID(), IsActive: &inactive})
	assert.Equal(t, apperrors.ErrorTypeForbidden, errType(err))
	resp, err := update.Execute(ctx, UpdatePackageCommand{Principal: root, PackageID: legacy.ID(), IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	assert.Empty(t, resp.DescriptionHTML, "render failure leaves html empty")

	res, err := list.Execute(ctx, ListPackagesQuery{Principal: member, ActiveOnly: &inactive})
	require.NoError(t, err)
	require.Len(t, res.Packages, 1, "members cannot lift the active filter")
	assert.Equal(t, basic.ID(), res.Packages[0].ID)

	res, err = list.Execute(ctx, ListPackagesQuery{Principal: root, ActiveOnly: &inactive})
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Total)

	res, err = list.Execute(ctx, ListPackagesQuery{Principal: root})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Total)

	_, err = get.Execute(ctx, GetPackageQuery{Principal: member, PackageID: legacy.ID()})
	assert.Equal(t, apperrors.ErrorTypeNotFound, errType(err))
	got, err := get.Execute(ctx, GetPackageQuery{Principal: root, PackageID: legacy.ID()})
	require.NoError(t, err)
	assert.Equal(t, "Legacy", got.Name)
	assert.EqualValues(t, 10, got.Features["seats"])

	badCycle := "weekly"
	_, err = update.Execute(ctx, UpdatePackageCommand{Principal: root, PackageID: basic.ID(), BillingCycle: &badCycle})
	assert.Equal(t, apperrors.ErrorTypeValidation, errType(err))
}

func TestDeletePackage(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	uc := NewDeletePackageUseCase(env.Packages, env.Subscriptions, env.Tx, env.Guard, env.Log)
	root := env.Principal(t, env.Root(t, "root@example.com").ID())

	unused := env.Package(t, "Unused", 1_00, servicepackage.BillingCycleMonthly)
	used := env.Package(t, "Used", 1_00, servicepackage.BillingCycleMonthly)
	dept := env.Department(t, "Acme")
	today := biztime.Today()
	sub, err := subscription.NewSubscription(dept.ID(), used.ID(), today, used.PeriodEnd(today), subscription.SourceDirect, nil)
	require.NoError(t, err)
	require.NoError(t, env.Subscriptions.Create(ctx, sub))

	err = uc.Execute(ctx, DeletePackageCommand{Principal: root, PackageID: used.ID()})
	assert.Equal(t, apperrors.ErrorTypeBadRequest, errType(err))

	require.NoError(t, uc.Execute(ctx, DeletePackageCommand{Principal: root, PackageID: unused.ID()}))
	gone, err := env.Packages.GetByID(ctx, unused.ID())
	require.NoError(t, err)
	assert.Nil(t, gone)

	err = uc.Execute(ctx, DeletePackageCommand{Principal: root, PackageID: unused.ID()})
	assert.Equal(t, apperrors.ErrorTypeNotFound, errType(err))
}
