package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/orris-inc/tenantdesk/internal/application/auth/dto"
	userdto "github.com/orris-inc/tenantdesk/internal/application/user/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/user"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/auth"
)

// TokenService issues and checks the access/refresh JWT pair.
type TokenService interface {
	Generate(userID uint) (*auth.TokenPair, error)
	Verify(tokenString string, expected auth.TokenType) (*auth.Claims, error)
}

// PasswordHasher hashes new passwords and checks presented ones.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// TokenBlocklist remembers revoked refresh tokens until they expire.
type TokenBlocklist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthRecorder counts authentication attempts.
type AuthRecorder interface {
	AuthAttempt(method string, ok bool)
}

const bearer = "Bearer"

func issue(tokens TokenService, u *user.User) (*dto.AuthResponse, error) {
	pair, err := tokens.Generate(u.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}
	return &dto.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    bearer,
		ExpiresIn:    pair.ExpiresIn,
		User:         userdto.ToUserResponse(u),
	}, nil
}
