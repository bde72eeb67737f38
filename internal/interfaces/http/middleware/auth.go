package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/auth"
	"github.com/orris-inc/tenantdesk/internal/shared/constants"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
	"github.com/orris-inc/tenantdesk/internal/shared/utils"
)

type tokenVerifier interface {
	Verify(tokenString string, expected auth.TokenType) (*auth.Claims, error)
}

type principalResolver interface {
	Resolve(ctx context.Context, userID uint) (*access.Principal, error)
}

// AuthMiddleware authenticates the bearer access token and loads the
// caller's roles once per request.
type AuthMiddleware struct {
	tokens   tokenVerifier
	resolver principalResolver
	logger   logger.Interface
}

func NewAuthMiddleware(tokens tokenVerifier, resolver principalResolver, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:   tokens,
		resolver: resolver,
		logger:   logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("missing authorization token"))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("invalid authorization header format"))
			c.Abort()
			return
		}

		claims, err := m.tokens.Verify(parts[1], auth.TokenTypeAccess)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err, "client_ip", c.ClientIP())
			utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("invalid or expired token"))
			c.Abort()
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("invalid or expired token"))
			c.Abort()
			return
		}

		p, err := m.resolver.Resolve(c.Request.Context(), userID)
		if err != nil {
			if apperrors.GetAppError(err) == nil {
				m.logger.Errorw("failed to resolve principal", "error", err, "user_id", userID)
			}
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeyTokenID, claims.ID)
		c.Set(constants.ContextKeyPrincipal, p)

		c.Next()
	}
}
