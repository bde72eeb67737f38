package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/application/auth/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/user"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/auth"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type RefreshCommand struct {
	RefreshToken string
}

// RefreshUseCase rotates a refresh token: the presented token is revoked and
// a new pair is issued.
type RefreshUseCase struct {
	userRepo  user.Repository
	tokens    TokenService
	blocklist TokenBlocklist
	logger    logger.Interface
}

func NewRefreshUseCase(userRepo user.Repository, tokens TokenService, blocklist TokenBlocklist, logger logger.Interface) *RefreshUseCase {
	return &RefreshUseCase{userRepo: userRepo, tokens: tokens, blocklist: blocklist, logger: logger}
}

func (uc *RefreshUseCase) Execute(ctx context.Context, cmd RefreshCommand) (*dto.AuthResponse, error) {
	claims, err := verifyRefresh(ctx, uc.tokens, uc.blocklist, cmd.RefreshToken)
	if err != nil {
		return nil, err
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, apperrors.NewTokenInvalidError(string(auth.TokenTypeRefresh))
	}

	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, apperrors.NewTokenInvalidError(string(auth.TokenTypeRefresh))
	}

	if err := uc.blocklist.Revoke(ctx, claims.ID, claims.Remaining()); err != nil {
		uc.logger.Errorw("failed to revoke refresh token", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	uc.logger.Infow("tokens refreshed", "user_id", userID)
	return issue(uc.tokens, u)
}

func verifyRefresh(ctx context.Context, tokens TokenService, blocklist TokenBlocklist, token string) (*auth.Claims, error) {
	claims, err := tokens.Verify(token, auth.TokenTypeRefresh)
	if err != nil {
		return nil, apperrors.NewTokenInvalidError(string(auth.TokenTypeRefresh))
	}
	revoked, err := blocklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, apperrors.NewTokenInvalidError(string(auth.TokenTypeRefresh))
	}
	return claims, nil
}
