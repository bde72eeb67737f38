package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", 15, 7)

	pair, err := svc.Generate(42)
	require.NoError(t, err)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := svc.Verify(pair.AccessToken, TokenTypeAccess)
	require.NoError(t, err)
	uid, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), uid)
	assert.NotEmpty(t, claims.ID)
	assert.InDelta(t, (15 * time.Minute).Seconds(), claims.Remaining().Seconds(), 5)

	refresh, err := svc.Verify(pair.RefreshToken, TokenTypeRefresh)
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, refresh.ID)
}

func TestJWTService_VerifyRejects(t *testing.T) {
	svc := NewJWTService("test-secret", 15, 7)
	pair, err := svc.Generate(1)
	require.NoError(t, err)

	expired := NewJWTService("test-secret", -1, -1)
	expiredPair, err := expired.Generate(1)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{TokenType: TokenTypeAccess})
	noneToken, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name     string
		svc      *JWTService
		token    string
		expected TokenType
	}{
		{"wrong type", svc, pair.RefreshToken, TokenTypeAccess},
		{"wrong secret", NewJWTService("other", 15, 7), pair.AccessToken, TokenTypeAccess},
		{"expired", svc, expiredPair.AccessToken, TokenTypeAccess},
		{"unsigned", svc, noneToken, TokenTypeAccess},
		{"garbage", svc, "not-a-token", TokenTypeAccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.Verify(tt.token, tt.expected)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestClaims_UserIDInvalidSubject(t *testing.T) {
	c := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "abc"}}
	_, err := c.UserID()
	assert.ErrorIs(t, err, ErrInvalidToken)
}
