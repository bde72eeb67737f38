package handlers

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tenantdesk/internal/application/auth/dto"
	"github.com/orris-inc/tenantdesk/internal/application/auth/usecases"
	userdto "github.com/orris-inc/tenantdesk/internal/application/user/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/interfaces/http/handlers/testutil"
	"github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockRegisterUC struct {
	lastCmd usecases.RegisterCommand
	result  *dto.AuthResponse
	err     error
}

func (m *mockRegisterUC) Execute(ctx context.Context, cmd usecases.RegisterCommand) (*dto.AuthResponse, error) {
	m.lastCmd = cmd
	return m.result, m.err
}

type mockLoginUC struct {
	result *dto.AuthResponse
	err    error
}

func (m *mockLoginUC) Execute(ctx context.Context, cmd usecases.LoginCommand) (*dto.AuthResponse, error) {
	return m.result, m.err
}

type mockRefreshUC struct {
	result *dto.AuthResponse
	err    error
}

func (m *mockRefreshUC) Execute(ctx context.Context, cmd usecases.RefreshCommand) (*dto.AuthResponse, error) {
	return m.result, m.err
}

type mockLogoutUC struct {
	lastCmd usecases.LogoutCommand
	err     error
}

func (m *mockLogoutUC) Execute(ctx context.Context, cmd usecases.LogoutCommand) error {
	m.lastCmd = cmd
	return m.err
}

type mockGetProfileUC struct {
	lastQuery usecases.GetProfileQuery
	result    *userdto.UserResponse
	err       error
}

func (m *mockGetProfileUC) Execute(ctx context.Context, query usecases.GetProfileQuery) (*userdto.UserResponse, error) {
	m.lastQuery = query
	return m.result, m.err
}

type mockUpdateProfileUC struct {
	result *userdto.UserResponse
	err    error
}

func (m *mockUpdateProfileUC) Execute(ctx context.Context, cmd usecases.UpdateProfileCommand) (*userdto.UserResponse, error) {
	return m.result, m.err
}

type mockBeginOAuthUC struct {
	result *dto.OAuthBeginResponse
	err    error
}

func (m *mockBeginOAuthUC) Execute(ctx context.Context, cmd usecases.BeginOAuthCommand) (*dto.OAuthBeginResponse, error) {
	return m.result, m.err
}

type mockOAuthCallbackUC struct {
	called bool
	result *dto.AuthResponse
	err    error
}

func (m *mockOAuthCallbackUC) Execute(ctx context.Context, cmd usecases.OAuthCallbackCommand) (*dto.AuthResponse, error) {
	m.called = true
	return m.result, m.err
}

type authMocks struct {
	register *mockRegisterUC
	login    *mockLoginUC
	refresh  *mockRefreshUC
	logout   *mockLogoutUC
	profile  *mockGetProfileUC
	update   *mockUpdateProfileUC
	begin    *mockBeginOAuthUC
	callback *mockOAuthCallbackUC
}

func newAuthHandlerForTest() (*AuthHandler, *authMocks) {
	m := &authMocks{
		register: &mockRegisterUC{},
		login:    &mockLoginUC{},
		refresh:  &mockRefreshUC{},
		logout:   &mockLogoutUC{},
		profile:  &mockGetProfileUC{},
		update:   &mockUpdateProfileUC{},
		begin:    &mockBeginOAuthUC{},
		callback: &mockOAuthCallbackUC{},
	}
	h := NewAuthHandler(m.register, m.login, m.refresh, m.logout, m.profile, m.update, m.begin, m.callback, logger.NewNop())
	return h, m
}

func sampleSession() *dto.AuthResponse {
	return &dto.AuthResponse{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		ExpiresIn:    900,
		User:         &userdto.UserResponse{ID: 1, Email: "alice@example.com", FullName: "Alice"},
	}
}

// =====================================================================
// Tests
// =====================================================================

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		ucErr      error
		wantStatus int
		wantType   string
	}{
		{
			name:       "success",
			body:       map[string]string{"email": "alice@example.com", "full_name": "Alice", "password": "supersecret"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid email",
			body:       map[string]string{"email": "nope", "full_name": "Alice", "password": "supersecret"},
			wantStatus: http.StatusBadRequest,
			wantType:   string(errors.ErrorTypeValidation),
		},
		{
			name:       "short password",
			body:       map[string]string{"email": "alice@example.com", "full_name": "Alice", "password": "short"},
			wantStatus: http.StatusBadRequest,
			wantType:   string(errors.ErrorTypeValidation),
		},
		{
			name:       "duplicate email",
			body:       map[string]string{"email": "alice@example.com", "full_name": "Alice", "password": "supersecret"},
			ucErr:      errors.NewBadRequestError("email already registered"),
			wantStatus: http.StatusBadRequest,
			wantType:   string(errors.ErrorTypeBadRequest),
		},
		{
			name:       "unexpected error hides details",
			body:       map[string]string{"email": "alice@example.com", "full_name": "Alice", "password": "supersecret"},
			ucErr:      stderrors.New("db down"),
			wantStatus: http.StatusInternalServerError,
			wantType:   string(errors.ErrorTypeInternal),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newAuthHandlerForTest()
			if tt.ucErr != nil {
				m.register.err = tt.ucErr
			} else {
				m.register.result = sampleSession()
			}

			c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/auth/register", tt.body)
			h.Register(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			if tt.wantType == "" {
				assert.True(t, resp.Success)
				assert.Contains(t, string(resp.Data), "access_token")
				assert.Equal(t, "alice@example.com", m.register.lastCmd.Email)
				return
			}
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantType, resp.Error.Type)
			assert.NotContains(t, w.Body.String(), "db down")
		})
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h, m := newAuthHandlerForTest()
	m.login.err = errors.NewUnauthorizedError("invalid email or password")

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": "alice@example.com", "password": "wrong"})
	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "unauthorized", resp.Error.Type)
}

func TestAuthHandler_Refresh_MissingToken(t *testing.T) {
	h, _ := newAuthHandlerForTest()

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/auth/refresh", map[string]string{})
	h.Refresh(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_LogoutPassesPrincipal(t *testing.T) {
	h, m := newAuthHandlerForTest()
	p := access.NewPrincipal(7, access.Grants{})

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/auth/logout", map[string]string{"refresh_token": "r"})
	testutil.SetPrincipal(c, p)
	h.Logout(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Same(t, p, m.logout.lastCmd.Principal)
	assert.Equal(t, "r", m.logout.lastCmd.RefreshToken)
}

func TestAuthHandler_GetProfile(t *testing.T) {
	h, m := newAuthHandlerForTest()
	m.profile.result = &userdto.UserResponse{ID: 7, Email: "bob@example.com"}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/auth/me", nil)
	testutil.SetPrincipal(c, access.NewPrincipal(7, access.Grants{}))
	h.GetProfile(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(7), m.profile.lastQuery.Principal.UserID())
	assert.Contains(t, w.Body.String(), "bob@example.com")
}

func TestAuthHandler_BeginOAuth(t *testing.T) {
	tests := []struct {
		name       string
		query      map[string]string
		err        error
		wantStatus int
	}{
		{name: "json", wantStatus: http.StatusOK},
		{name: "redirect", query: map[string]string{"redirect": "true"}, wantStatus: http.StatusFound},
		{name: "unknown provider", err: errors.NewNotFoundError("oauth provider not available"), wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newAuthHandlerForTest()
			m.begin.result = &dto.OAuthBeginResponse{AuthURL: "https://accounts.example.com/auth?state=s", State: "s"}
			m.begin.err = tt.err

			c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/auth/oauth/google", nil)
			testutil.SetURLParam(c, "provider", "google")
			if tt.query != nil {
				testutil.SetQueryParams(c, tt.query)
			}
			h.BeginOAuth(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusFound {
				assert.Equal(t, "https://accounts.example.com/auth?state=s", w.Header().Get("Location"))
			}
		})
	}
}

func TestAuthHandler_OAuthCallback_ProviderDenied(t *testing.T) {
	h, m := newAuthHandlerForTest()

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/auth/oauth/google/callback", nil)
	testutil.SetURLParam(c, "provider", "google")
	testutil.SetQueryParams(c, map[string]string{"error": "access_denied"})
	h.OAuthCallback(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"type":"unauthorized"`)
	assert.False(t, m.callback.called)
}
