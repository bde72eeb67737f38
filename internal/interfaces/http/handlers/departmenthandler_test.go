package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tenantdesk/internal/application/department/dto"
	"github.com/orris-inc/tenantdesk/internal/application/department/usecases"
	userdto "github.com/orris-inc/tenantdesk/internal/application/user/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/domain/department"
	"github.com/orris-inc/tenantdesk/internal/interfaces/http/handlers/testutil"
	"github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type mockCreateDepartmentUC struct {
	ExecuteFunc func(ctx context.Context, cmd usecases.CreateDepartmentCommand) (*dto.DepartmentResponse, error)
}

func (m *mockCreateDepartmentUC) Execute(ctx context.Context, cmd usecases.CreateDepartmentCommand) (*dto.DepartmentResponse, error) {
	return m.ExecuteFunc(ctx, cmd)
}

type mockGetDepartmentUC struct {
	ExecuteFunc func(ctx context.Context, query usecases.GetDepartmentQuery) (*dto.DepartmentDetailResponse, error)
}

func (m *mockGetDepartmentUC) Execute(ctx context.Context, query usecases.GetDepartmentQuery) (*dto.DepartmentDetailResponse, error) {
	return m.ExecuteFunc(ctx, query)
}

type mockListDepartmentsUC struct {
	ExecuteFunc func(ctx context.Context, query usecases.ListDepartmentsQuery) (*usecases.ListDepartmentsResult, error)
}

func (m *mockListDepartmentsUC) Execute(ctx context.Context, query usecases.ListDepartmentsQuery) (*usecases.ListDepartmentsResult, error) {
	return m.ExecuteFunc(ctx, query)
}

type mockUpdateDepartmentUC struct {
	ExecuteFunc func(ctx context.Context, cmd usecases.UpdateDepartmentCommand) (*dto.DepartmentResponse, error)
}

func (m *mockUpdateDepartmentUC) Execute(ctx context.Context, cmd usecases.UpdateDepartmentCommand) (*dto.DepartmentResponse, error) {
	return m.ExecuteFunc(ctx, cmd)
}

type mockListDepartmentUsersUC struct {
	ExecuteFunc func(ctx context.Context, query usecases.ListDepartmentUsersQuery) ([]*userdto.UserResponse, error)
}

func (m *mockListDepartmentUsersUC) Execute(ctx context.Context, query usecases.ListDepartmentUsersQuery) ([]*userdto.UserResponse, error) {
	return m.ExecuteFunc(ctx, query)
}

type mockAttachUserUC struct {
	ExecuteFunc func(ctx context.Context, cmd usecases.AttachUserCommand) (*usecases.AttachUserResult, error)
}

func (m *mockAttachUserUC) Execute(ctx context.Context, cmd usecases.AttachUserCommand) (*usecases.AttachUserResult, error) {
	return m.ExecuteFunc(ctx, cmd)
}

type mockDetachUserUC struct {
	ExecuteFunc func(ctx context.Context, cmd usecases.DetachUserCommand) error
}

func (m *mockDetachUserUC) Execute(ctx context.Context, cmd usecases.DetachUserCommand) error {
	return m.ExecuteFunc(ctx, cmd)
}

type departmentMocks struct {
	create      *mockCreateDepartmentUC
	get         *mockGetDepartmentUC
	list        *mockListDepartmentsUC
	update      *mockUpdateDepartmentUC
	listUsers   *mockListDepartmentUsersUC
	addAdmin    *mockAttachUserUC
	addUser     *mockAttachUserUC
	removeAdmin *mockDetachUserUC
	removeUser  *mockDetachUserUC
}

func newDepartmentHandlerForTest() (*DepartmentHandler, *departmentMocks) {
	m := &departmentMocks{
		create:      &mockCreateDepartmentUC{},
		get:         &mockGetDepartmentUC{},
		list:        &mockListDepartmentsUC{},
		update:      &mockUpdateDepartmentUC{},
		listUsers:   &mockListDepartmentUsersUC{},
		addAdmin:    &mockAttachUserUC{},
		addUser:     &mockAttachUserUC{},
		removeAdmin: &mockDetachUserUC{},
		removeUser:  &mockDetachUserUC{},
	}
	h := NewDepartmentHandler(m.create, m.get, m.list, m.update, m.listUsers,
		m.addAdmin, m.addUser, m.removeAdmin, m.removeUser, logger.NewNop())
	return h, m
}

func TestDepartmentHandler_CreateDepartment(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		err        error
		wantStatus int
	}{
		{name: "created", body: map[string]string{"name": "Acme"}, wantStatus: http.StatusCreated},
		{name: "missing name", body: map[string]string{"description": "x"}, wantStatus: http.StatusBadRequest},
		{name: "not root", body: map[string]string{"name": "Acme"}, err: errors.NewForbiddenError("root admin required"), wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newDepartmentHandlerForTest()
			m.create.ExecuteFunc = func(ctx context.Context, cmd usecases.CreateDepartmentCommand) (*dto.DepartmentResponse, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				return &dto.DepartmentResponse{ID: 1, Name: cmd.Name, CustomerType: "direct"}, nil
			}

			c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/departments", tt.body)
			testutil.SetPrincipal(c, access.NewPrincipal(1, access.Grants{Root: true}))
			h.CreateDepartment(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestDepartmentHandler_AddDepartmentUser(t *testing.T) {
	h, m := newDepartmentHandlerForTest()
	var got usecases.AttachUserCommand
	m.addUser.ExecuteFunc = func(ctx context.Context, cmd usecases.AttachUserCommand) (*usecases.AttachUserResult, error) {
		got = cmd
		return &usecases.AttachUserResult{
			DepartmentID: cmd.DepartmentID,
			Role:         department.RoleMember,
			User:         &userdto.UserResponse{ID: 9, Email: cmd.Email},
			UserCreated:  true,
		}, nil
	}
	m.addAdmin.ExecuteFunc = func(ctx context.Context, cmd usecases.AttachUserCommand) (*usecases.AttachUserResult, error) {
		t.Fatal("admin use case must not be called")
		return nil, nil
	}

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/departments/3/users", map[string]string{
		"email": "carol@example.com", "full_name": "Carol", "password": "supersecret",
	})
	testutil.SetURLParam(c, "id", "3")
	h.AddDepartmentUser(c)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, uint(3), got.DepartmentID)
	assert.Equal(t, "carol@example.com", got.Email)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Contains(t, string(resp.Data), `"role":"member"`)
	assert.Contains(t, string(resp.Data), `"user_created":true`)
}

func TestDepartmentHandler_AddDepartmentAdmin_AlreadyAdmin(t *testing.T) {
	h, m := newDepartmentHandlerForTest()
	m.addAdmin.ExecuteFunc = func(ctx context.Context, cmd usecases.AttachUserCommand) (*usecases.AttachUserResult, error) {
		return nil, errors.NewConflictError("user is already an admin of this department")
	}

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/departments/3/admins", map[string]string{
		"email": "carol@example.com", "full_name": "Carol",
	})
	testutil.SetURLParam(c, "id", "3")
	h.AddDepartmentAdmin(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "user is already an admin of this department", resp.Message)
}

func TestDepartmentHandler_RemoveDepartmentUser(t *testing.T) {
	tests := []struct {
		name       string
		userParam  string
		err        error
		wantStatus int
	}{
		{name: "removed", userParam: "9", wantStatus: http.StatusOK},
		{name: "bad user id", userParam: "0", wantStatus: http.StatusBadRequest},
		{name: "not a member", userParam: "9", err: errors.NewNotFoundError("user is not a member of this department"), wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newDepartmentHandlerForTest()
			m.removeUser.ExecuteFunc = func(ctx context.Context, cmd usecases.DetachUserCommand) error {
				assert.Equal(t, uint(3), cmd.DepartmentID)
				assert.Equal(t, uint(9), cmd.UserID)
				return tt.err
			}

			c, w := testutil.NewTestContext(http.MethodDelete, "/api/v1/departments/3/users/"+tt.userParam, nil)
			testutil.SetURLParam(c, "id", "3")
			testutil.SetURLParam(c, "user_id", tt.userParam)
			h.RemoveDepartmentUser(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestDepartmentHandler_ListDepartments(t *testing.T) {
	h, m := newDepartmentHandlerForTest()
	member := access.NewPrincipal(5, access.Grants{MemberDepartmentIDs: []uint{3}})
	m.list.ExecuteFunc = func(ctx context.Context, query usecases.ListDepartmentsQuery) (*usecases.ListDepartmentsResult, error) {
		assert.Same(t, member, query.Principal)
		assert.Equal(t, 2, query.Page)
		return &usecases.ListDepartmentsResult{
			Departments: []*dto.DepartmentResponse{{ID: 3, Name: "Acme"}},
			Total:       21,
			Page:        query.Page,
			PageSize:    query.PageSize,
		}, nil
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/departments", nil)
	testutil.SetQueryParams(c, map[string]string{"page": "2"})
	testutil.SetPrincipal(c, member)
	h.ListDepartments(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_pages":2`)
}
