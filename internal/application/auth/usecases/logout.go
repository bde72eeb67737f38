package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/auth"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type LogoutCommand struct {
	Principal    *access.Principal
	RefreshToken string
}

type LogoutUseCase struct {
	tokens    TokenService
	blocklist TokenBlocklist
	logger    logger.Interface
}

func NewLogoutUseCase(tokens TokenService, blocklist TokenBlocklist, logger logger.Interface) *LogoutUseCase {
	return &LogoutUseCase{tokens: tokens, blocklist: blocklist, logger: logger}
}

// Execute revokes the caller's refresh token. Access tokens are short lived
// and simply run out.
func (uc *LogoutUseCase) Execute(ctx context.Context, cmd LogoutCommand) error {
	claims, err := verifyRefresh(ctx, uc.tokens, uc.blocklist, cmd.RefreshToken)
	if err != nil {
		return err
	}
	owner, err := claims.UserID()
	if err != nil || cmd.Principal == nil || owner != cmd.Principal.UserID() {
		return apperrors.NewTokenInvalidError(string(auth.TokenTypeRefresh))
	}

	if err := uc.blocklist.Revoke(ctx, claims.ID, claims.Remaining()); err != nil {
		uc.logger.Errorw("failed to revoke refresh token", "error", err, "user_id", owner)
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	uc.logger.Infow("user logged out", "user_id", owner)
	return nil
}
