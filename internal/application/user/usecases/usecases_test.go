package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tenantdesk/internal/application/apptest"
	"github.com/orris-inc/tenantdesk/internal/domain/department"
	"github.com/orris-inc/tenantdesk/internal/domain/user"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
)

type mockHasher struct{}

func (mockHasher) Hash(password string) (string, error) {
	if len(password) < 8 {
		return "", errors.New("password too short")
	}
	return "hashed:" + password, nil
}

type mockNotifier struct {
	NotifyWelcomeFunc func(ctx context.Context, email, fullName, label string) error
	sent              []string
}

func (m *mockNotifier) NotifyWelcome(ctx context.Context, email, fullName, label string) error {
	m.sent = append(m.sent, email+"|"+label)
	if m.NotifyWelcomeFunc != nil {
		return m.NotifyWelcomeFunc(ctx, email, fullName, label)
	}
	return nil
}

func TestEnsureUserUseCase_Execute(t *testing.T) {
	env := apptest.New(t)
	existing := env.User(t, "bob@example.com")
	uc := NewEnsureUserUseCase(env.Users, mockHasher{}, &mockNotifier{}, env.Log)
	ctx := context.Background()

	tests := []struct {
		name        string
		cmd         EnsureUserCommand
		wantCreated bool
		wantErrType apperrors.ErrorType
	}{
		{"existing user is reused", EnsureUserCommand{Email: " BOB@example.com", FullName: "Ignored"}, false, ""},
		{"new user with password", EnsureUserCommand{Email: "carol@example.com", FullName: "Carol", Password: "supersecret"}, true, ""},
		{"new user without password", EnsureUserCommand{Email: "dave@example.com", FullName: "Dave"}, false, apperrors.ErrorTypeValidation},
		{"short password", EnsureUserCommand{Email: "erin@example.com", FullName: "Erin", Password: "short"}, false, apperrors.ErrorTypeValidation},
		{"invalid email", EnsureUserCommand{Email: "not-an-email", FullName: "X", Password: "supersecret"}, false, apperrors.ErrorTypeValidation},
		{"missing name", EnsureUserCommand{Email: "frank@example.com", FullName: " ", Password: "supersecret"}, false, apperrors.ErrorTypeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := uc.Execute(ctx, tt.cmd)
			if tt.wantErrType != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErrType, apperrors.GetAppError(err).Type)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCreated, res.Created)
			if !tt.wantCreated {
				assert.Equal(t, existing.ID(), res.User.ID())
			} else {
				assert.Equal(t, "hashed:"+tt.cmd.Password, res.User.PasswordHash())
			}
		})
	}
}

// staleEmailLookup reports every email as unused, as a transaction that
// started before a concurrent insert would.
type staleEmailLookup struct {
	user.Repository
}

func (staleEmailLookup) GetByEmail(context.Context, string) (*user.User, error) {
	return nil, nil
}

func TestEnsureUserUseCase_ConcurrentCreateIsRejected(t *testing.T) {
	env := apptest.New(t)
	env.User(t, "bob@example.com")
	notifier := &mockNotifier{}
	uc := NewEnsureUserUseCase(staleEmailLookup{Repository: env.Users}, mockHasher{}, notifier, env.Log)

	res, err := uc.Execute(context.Background(), EnsureUserCommand{Email: "bob@example.com", FullName: "Bob", Password: "supersecret"})
	require.Error(t, err)
	assert.Nil(t, res)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeBadRequest, appErr.Type)
	assert.NotEqual(t, apperrors.ErrorTypeConflict, appErr.Type, "must not render as success")
	assert.Empty(t, notifier.sent)
}

func TestEnsureUserUseCase_Welcome(t *testing.T) {
	env := apptest.New(t)
	notifier := &mockNotifier{NotifyWelcomeFunc: func(context.Context, string, string, string) error {
		return errors.New("smtp down")
	}}
	uc := NewEnsureUserUseCase(env.Users, mockHasher{}, notifier, env.Log)
	ctx := context.Background()

	res, err := uc.Execute(ctx, EnsureUserCommand{Email: "new@example.com", FullName: "New", Password: "supersecret"})
	require.NoError(t, err)

	uc.Welcome(ctx, res, "department Acme")
	assert.Equal(t, []string{"new@example.com|department Acme"}, notifier.sent)

	again, err := uc.Execute(ctx, EnsureUserCommand{Email: "new@example.com", FullName: "New"})
	require.NoError(t, err)
	uc.Welcome(ctx, again, "department Acme")
	assert.Len(t, notifier.sent, 1, "existing users are not welcomed again")
}

func TestListUsersUseCase_Scope(t *testing.T) {
	env := apptest.New(t)
	root := env.Root(t, "root@example.com")
	admin := env.User(t, "admin@example.com")
	member := env.User(t, "member@example.com")
	outsider := env.User(t, "outsider@example.com")
	acme := env.Department(t, "Acme")
	other := env.Department(t, "Other")
	env.Assign(t, department.RoleAdmin, admin.ID(), acme.ID())
	env.Assign(t, department.RoleMember, member.ID(), acme.ID())
	env.Assign(t, department.RoleMember, outsider.ID(), other.ID())

	uc := NewListUsersUseCase(env.Users, env.Guard, env.Log)
	ctx := context.Background()

	emails := func(res *ListUsersResult) []string {
		out := make([]string, 0, len(res.Users))
		for _, u := range res.Users {
			out = append(out, u.Email)
		}
		return out
	}

	res, err := uc.Execute(ctx, ListUsersQuery{Principal: env.Principal(t, root.ID())})
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Total)

	res, err = uc.Execute(ctx, ListUsersQuery{Principal: env.Principal(t, admin.ID())})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"admin@example.com", "member@example.com"}, emails(res))

	res, err = uc.Execute(ctx, ListUsersQuery{Principal: env.Principal(t, member.ID())})
	require.NoError(t, err)
	assert.Equal(t, []string{"member@example.com"}, emails(res))

	res, err = uc.Execute(ctx, ListUsersQuery{Principal: env.Principal(t, root.ID()), Search: "outsider"})
	require.NoError(t, err)
	assert.Equal(t, []string{"outsider@example.com"}, emails(res))
}
