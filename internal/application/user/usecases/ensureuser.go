package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/orris-inc/tenantdesk/internal/domain/user"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
}

// WelcomeNotifier tells a newly created user about their account. Label
// names what they were added to, e.g. "department Acme".
type WelcomeNotifier interface {
	NotifyWelcome(ctx context.Context, email, fullName, label string) error
}

type EnsureUserCommand struct {
	Email    string
	FullName string
	Password string
}

type EnsureUserResult struct {
	User    *user.User
	Created bool
}

// EnsureUserUseCase finds a user by email or creates one inline. Callers run
// it inside their own transaction so a rejected attach does not leave a
// half-provisioned account behind.
type EnsureUserUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	notifier WelcomeNotifier
	logger   logger.Interface
}

func NewEnsureUserUseCase(
	userRepo user.Repository,
	hasher PasswordHasher,
	notifier WelcomeNotifier,
	logger logger.Interface,
) *EnsureUserUseCase {
	return &EnsureUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		notifier: notifier,
		logger:   logger,
	}
}

func (uc *EnsureUserUseCase) Execute(ctx context.Context, cmd EnsureUserCommand) (*EnsureUserResult, error) {
	email, err := user.NormalizeEmail(cmd.Email)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid email address", err.Error())
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to look up user by email", "error", err)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return &EnsureUserResult{User: existing}, nil
	}

	if strings.TrimSpace(cmd.Password) == "" {
		return nil, apperrors.NewValidationError("password is required to create a new user")
	}

	u, err := user.NewUser(email, cmd.FullName)
	if err != nil {
		if errors.Is(err, user.ErrInvalidName) || errors.Is(err, user.ErrInvalidEmail) {
			return nil, apperrors.NewValidationError(err.Error())
		}
		return nil, err
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid password", err.Error())
	}
	if err := u.SetPasswordHash(hash); err != nil {
		return nil, err
	}

	if err := uc.userRepo.Create(ctx, u); err != nil {
		if apperrors.IsDuplicateError(err) {
			// The other insert is not visible inside this transaction. A retry
			// finds and reuses that user.
			uc.logger.Warnw("user created concurrently", "email", email)
			return nil, apperrors.NewBadRequestError("a user with this email was created concurrently", "retry the request")
		}
		uc.logger.Errorw("failed to create user", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uc.logger.Infow("user created by attach", "user_id", u.ID())
	return &EnsureUserResult{User: u, Created: true}, nil
}

// Welcome notifies a user created by Execute. Call it after the surrounding
// transaction committed. Failures are logged and never fail the request.
func (uc *EnsureUserUseCase) Welcome(ctx context.Context, res *EnsureUserResult, label string) {
	if res == nil || !res.Created || uc.notifier == nil {
		return
	}
	if err := uc.notifier.NotifyWelcome(ctx, res.User.Email(), res.User.FullName(), label); err != nil {
		uc.logger.Warnw("failed to send welcome notification", "error", err, "user_id", res.User.ID())
	}
}
