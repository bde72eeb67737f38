package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tenantdesk/internal/application/subscription/dto"
	"github.com/orris-inc/tenantdesk/internal/application/subscription/usecases"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/interfaces/http/handlers/testutil"
	"github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type mockCreateSubscriptionUC struct {
	ExecuteFunc func(ctx context.Context, cmd usecases.CreateSubscriptionCommand) (*dto.SubscribeResponse, error)
}

func (m *mockCreateSubscriptionUC) Execute(ctx context.Context, cmd usecases.CreateSubscriptionCommand) (*dto.SubscribeResponse, error) {
	return m.ExecuteFunc(ctx, cmd)
}

type mockGetSubscriptionUC struct {
	ExecuteFunc func(ctx context.Context, query usecases.GetSubscriptionQuery) (*dto.SubscriptionResponse, error)
}

func (m *mockGetSubscriptionUC) Execute(ctx context.Context, query usecases.GetSubscriptionQuery) (*dto.SubscriptionResponse, error) {
	return m.ExecuteFunc(ctx, query)
}

type mockListSubscriptionsUC struct {
	ExecuteFunc func(ctx context.Context, query usecases.ListSubscriptionsQuery) (*usecases.ListSubscriptionsResult, error)
}

func (m *mockListSubscriptionsUC) Execute(ctx context.Context, query usecases.ListSubscriptionsQuery) (*usecases.ListSubscriptionsResult, error) {
	return m.ExecuteFunc(ctx, query)
}

type mockCancelSubscriptionUC struct {
	ExecuteFunc func(ctx context.Context, cmd usecases.CancelSubscriptionCommand) (*dto.SubscriptionResponse, error)
}

func (m *mockCancelSubscriptionUC) Execute(ctx context.Context, cmd usecases.CancelSubscriptionCommand) (*dto.SubscriptionResponse, error) {
	return m.ExecuteFunc(ctx, cmd)
}

type mockGrantAccessUC struct {
	ExecuteFunc func(ctx context.Context, cmd usecases.GrantAccessCommand) (*dto.ServiceAccessResponse, error)
}

func (m *mockGrantAccessUC) Execute(ctx context.Context, cmd usecases.GrantAccessCommand) (*dto.ServiceAccessResponse, error) {
	return m.ExecuteFunc(ctx, cmd)
}

type mockRevokeAccessUC struct {
	ExecuteFunc func(ctx context.Context, cmd usecases.RevokeAccessCommand) error
}

func (m *mockRevokeAccessUC) Execute(ctx context.Context, cmd usecases.RevokeAccessCommand) error {
	return m.ExecuteFunc(ctx, cmd)
}

type mockListAccessUC struct {
	ExecuteFunc func(ctx context.Context, query usecases.ListAccessQuery) ([]*dto.ServiceAccessResponse, error)
}

func (m *mockListAccessUC) Execute(ctx context.Context, query usecases.ListAccessQuery) ([]*dto.ServiceAccessResponse, error) {
	return m.ExecuteFunc(ctx, query)
}

type mockMyAccessUC struct {
	ExecuteFunc func(ctx context.Context, query usecases.MyAccessQuery) ([]*dto.MyAccessResponse, error)
}

func (m *mockMyAccessUC) Execute(ctx context.Context, query usecases.MyAccessQuery) ([]*dto.MyAccessResponse, error) {
	return m.ExecuteFunc(ctx, query)
}

type subscriptionMocks struct {
	create   *mockCreateSubscriptionUC
	get      *mockGetSubscriptionUC
	list     *mockListSubscriptionsUC
	cancel   *mockCancelSubscriptionUC
	grant    *mockGrantAccessUC
	revoke   *mockRevokeAccessUC
	access   *mockListAccessUC
	myAccess *mockMyAccessUC
}

func newSubscriptionHandlerForTest() (*SubscriptionHandler, *subscriptionMocks) {
	m := &subscriptionMocks{
		create:   &mockCreateSubscriptionUC{},
		get:      &mockGetSubscriptionUC{},
		list:     &mockListSubscriptionsUC{},
		cancel:   &mockCancelSubscriptionUC{},
		grant:    &mockGrantAccessUC{},
		revoke:   &mockRevokeAccessUC{},
		access:   &mockListAccessUC{},
		myAccess: &mockMyAccessUC{},
	}
	h := NewSubscriptionHandler(m.create, m.get, m.list, m.cancel, m.grant, m.revoke, m.access, m.myAccess, logger.NewNop())
	return h, m
}

func TestSubscriptionHandler_CreateSubscription(t *testing.T) {
	admin := access.NewPrincipal(3, access.Grants{AdminDepartmentIDs: []uint{10}})

	t.Run("direct purchase", func(t *testing.T) {
		h, m := newSubscriptionHandlerForTest()
		var got usecases.CreateSubscriptionCommand
		m.create.ExecuteFunc = func(ctx context.Context, cmd usecases.CreateSubscriptionCommand) (*dto.SubscribeResponse, error) {
			got = cmd
			return &dto.SubscribeResponse{
				Subscription: &dto.SubscriptionResponse{ID: 1, DepartmentID: 10, ServicePackageID: 2, Status: "active"},
			}, nil
		}

		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/subscriptions",
			map[string]any{"department_id": 10, "service_package_id": 2, "payment_method": "card"})
		testutil.SetPrincipal(c, admin)
		h.CreateSubscription(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, uint(10), got.DepartmentID)
		assert.Equal(t, uint(2), got.PackageID)
		assert.Equal(t, "card", got.PaymentMethod)
		assert.Nil(t, got.ResellerID)
		assert.Same(t, admin, got.Principal)
	})

	t.Run("missing package", func(t *testing.T) {
		h, m := newSubscriptionHandlerForTest()
		m.create.ExecuteFunc = func(ctx context.Context, cmd usecases.CreateSubscriptionCommand) (*dto.SubscribeResponse, error) {
			t.Fatal("use case must not run on invalid input")
			return nil, nil
		}

		c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/subscriptions", map[string]any{"department_id": 10})
		h.CreateSubscription(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSubscriptionHandler_CreateResellerSubscription(t *testing.T) {
	h, m := newSubscriptionHandlerForTest()
	var got usecases.CreateSubscriptionCommand
	m.create.ExecuteFunc = func(ctx context.Context, cmd usecases.CreateSubscriptionCommand) (*dto.SubscribeResponse, error) {
		got = cmd
		return nil, errors.NewForbiddenError("department is not a customer of this reseller")
	}

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/resellers/4/subscriptions",
		map[string]any{"department_id": 10, "service_package_id": 2})
	testutil.SetURLParam(c, "id", "4")
	h.CreateResellerSubscription(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	require.NotNil(t, got.ResellerID)
	assert.Equal(t, uint(4), *got.ResellerID)
}

func TestSubscriptionHandler_GetSubscription(t *testing.T) {
	tests := []struct {
		name       string
		param      string
		err        error
		wantStatus int
	}{
		{name: "found", param: "5", wantStatus: http.StatusOK},
		{name: "bad id", param: "abc", wantStatus: http.StatusBadRequest},
		{name: "not found", param: "5", err: errors.NewNotFoundError("subscription not found"), wantStatus: http.StatusNotFound},
		{name: "forbidden", param: "5", err: errors.NewForbiddenError("access denied"), wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newSubscriptionHandlerForTest()
			m.get.ExecuteFunc = func(ctx context.Context, query usecases.GetSubscriptionQuery) (*dto.SubscriptionResponse, error) {
				assert.Equal(t, uint(5), query.SubscriptionID)
				if tt.err != nil {
					return nil, tt.err
				}
				return &dto.SubscriptionResponse{ID: 5, Status: "active"}, nil
			}

			c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/subscriptions/"+tt.param, nil)
			testutil.SetURLParam(c, "id", tt.param)
			h.GetSubscription(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestSubscriptionHandler_ListSubscriptions(t *testing.T) {
	h, m := newSubscriptionHandlerForTest()
	var got usecases.ListSubscriptionsQuery
	m.list.ExecuteFunc = func(ctx context.Context, query usecases.ListSubscriptionsQuery) (*usecases.ListSubscriptionsResult, error) {
		got = query
		return &usecases.ListSubscriptionsResult{
			Subscriptions: []*dto.SubscriptionResponse{{ID: 1}, {ID: 2}},
			Total:         2,
			Page:          query.Page,
			PageSize:      query.PageSize,
		}, nil
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/subscriptions", nil)
	testutil.SetQueryParams(c, map[string]string{"department_id": "10", "status": "active", "page_size": "500"})
	h.ListSubscriptions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got.DepartmentID)
	assert.Equal(t, uint(10), *got.DepartmentID)
	assert.Equal(t, "active", got.Status)
	assert.Equal(t, 1, got.Page)
	assert.LessOrEqual(t, got.PageSize, 100)
	assert.Contains(t, w.Body.String(), `"total":2`)
}

func TestSubscriptionHandler_ListSubscriptions_InvalidStatus(t *testing.T) {
	h, _ := newSubscriptionHandlerForTest()

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/subscriptions", nil)
	testutil.SetQueryParams(c, map[string]string{"status": "paused"})
	h.ListSubscriptions(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscriptionHandler_GrantAccess_AlreadyGrantedIsInformational(t *testing.T) {
	h, m := newSubscriptionHandlerForTest()
	m.grant.ExecuteFunc = func(ctx context.Context, cmd usecases.GrantAccessCommand) (*dto.ServiceAccessResponse, error) {
		assert.Equal(t, uint(8), cmd.SubscriptionID)
		assert.Equal(t, uint(21), cmd.UserID)
		return nil, errors.NewConflictError("user already has access")
	}

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/subscriptions/8/access", map[string]any{"user_id": 21})
	testutil.SetURLParam(c, "id", "8")
	h.GrantAccess(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "user already has access", resp.Message)
}

func TestSubscriptionHandler_RevokeAccess(t *testing.T) {
	h, m := newSubscriptionHandlerForTest()
	var got usecases.RevokeAccessCommand
	m.revoke.ExecuteFunc = func(ctx context.Context, cmd usecases.RevokeAccessCommand) error {
		got = cmd
		return nil
	}

	c, w := testutil.NewTestContext(http.MethodDelete, "/api/v1/subscriptions/8/access/21", nil)
	testutil.SetURLParam(c, "id", "8")
	testutil.SetURLParam(c, "user_id", "21")
	h.RevokeAccess(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(8), got.SubscriptionID)
	assert.Equal(t, uint(21), got.UserID)
}

func TestSubscriptionHandler_MyAccess_Unauthenticated(t *testing.T) {
	h, m := newSubscriptionHandlerForTest()
	m.myAccess.ExecuteFunc = func(ctx context.Context, query usecases.MyAccessQuery) ([]*dto.MyAccessResponse, error) {
		if query.Principal == nil {
			return nil, errors.NewUnauthorizedError("authentication required")
		}
		return nil, nil
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/me/access", nil)
	h.MyAccess(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
