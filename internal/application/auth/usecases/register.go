package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/application/auth/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/user"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/auth"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type RegisterCommand struct {
	Email    string
	FullName string
	Password string
}

type RegisterUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	tokens   TokenService
	logger   logger.Interface
}

func NewRegisterUseCase(userRepo user.Repository, hasher PasswordHasher, tokens TokenService, logger logger.Interface) *RegisterUseCase {
	return &RegisterUseCase{userRepo: userRepo, hasher: hasher, tokens: tokens, logger: logger}
}

// Execute creates a direct user with a password and signs them in.
func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*dto.AuthResponse, error) {
	u, err := user.NewUser(cmd.Email, cmd.FullName)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	existing, err := uc.userRepo.GetByEmail(ctx, u.Email())
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewBadRequestError("email is already registered")
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, apperrors.NewValidationError(err.Error())
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := u.SetPasswordHash(hash); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, u); err != nil {
		if apperrors.IsDuplicateError(err) {
			return nil, apperrors.NewBadRequestError("email is already registered")
		}
		uc.logger.Errorw("failed to register user", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uc.logger.Infow("user registered", "user_id", u.ID())
	return issue(uc.tokens, u)
}
