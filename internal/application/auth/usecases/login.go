package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/application/auth/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/user"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
	"github.com/orris-inc/tenantdesk/internal/shared/utils"
)

type LoginCommand struct {
	Email    string
	Password string
}

type LoginUseCase struct {
	userRepo user.Repository
	hasher   PasswordHasher
	tokens   TokenService
	recorder AuthRecorder
	logger   logger.Interface
}

func NewLoginUseCase(userRepo user.Repository, hasher PasswordHasher, tokens TokenService, recorder AuthRecorder, logger logger.Interface) *LoginUseCase {
	return &LoginUseCase{userRepo: userRepo, hasher: hasher, tokens: tokens, recorder: recorder, logger: logger}
}

// Execute reports an unknown email and a wrong password the same way.
func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*dto.AuthResponse, error) {
	email, err := user.NormalizeEmail(cmd.Email)
	if err != nil {
		uc.recorder.AuthAttempt("password", false)
		return nil, apperrors.NewInvalidCredentialsError()
	}

	u, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		uc.recorder.AuthAttempt("password", false)
		uc.logger.Warnw("login failed", "email", utils.MaskEmail(email), "reason", "unknown email")
		return nil, apperrors.NewInvalidCredentialsError()
	}
	if !u.HasPassword() {
		uc.recorder.AuthAttempt("password", false)
		return nil, apperrors.NewPasswordNotSetError()
	}
	if err := uc.hasher.Verify(cmd.Password, u.PasswordHash()); err != nil {
		uc.recorder.AuthAttempt("password", false)
		uc.logger.Warnw("login failed", "user_id", u.ID(), "reason", "password mismatch")
		return nil, apperrors.NewInvalidCredentialsError()
	}

	resp, err := issue(uc.tokens, u)
	if err != nil {
		return nil, err
	}
	uc.recorder.AuthAttempt("password", true)
	uc.logger.Infow("user logged in", "user_id", u.ID())
	return resp, nil
}
