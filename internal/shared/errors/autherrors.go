package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

const (
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeTokenInvalid       ErrorType = "token_invalid"
	ErrorTypePasswordNotSet     ErrorType = "password_not_set"
	ErrorTypeOAuthError         ErrorType = "oauth_error"
)

// AuthError is an AppError raised while authenticating. SecurityEvent marks
// failures worth counting as possible abuse.
type AuthError struct {
	*AppError
	SecurityEvent bool
}

func (e *AuthError) Error() string {
	return e.AppError.Error()
}

func (e *AuthError) Unwrap() error {
	return e.AppError
}

// NewInvalidCredentialsError does not say whether the email or the password was wrong.
func NewInvalidCredentialsError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeInvalidCredentials,
			Message: "Invalid email or password",
			Code:    http.StatusUnauthorized,
		},
		SecurityEvent: true,
	}
}

func NewTokenInvalidError(tokenType string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenInvalid,
			Message: fmt.Sprintf("Invalid %s", tokenType),
			Code:    http.StatusUnauthorized,
			Details: "Token is invalid, expired or has been revoked",
		},
		SecurityEvent: true,
	}
}

// NewPasswordNotSetError is returned for accounts created through social login.
func NewPasswordNotSetError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypePasswordNotSet,
			Message: "Password login not available",
			Code:    http.StatusBadRequest,
			Details: "This account signs in through a social login provider",
		},
	}
}

func NewOAuthError(provider, stage string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeOAuthError,
			Message: fmt.Sprintf("OAuth authentication failed with %s", provider),
			Code:    http.StatusBadGateway,
			Details: fmt.Sprintf("failed at %s stage", stage),
		},
	}
}

func GetAuthError(err error) *AuthError {
	var authErr *AuthError
	if stderrors.As(err, &authErr) {
		return authErr
	}
	return nil
}

func IsSecurityEvent(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.SecurityEvent
	}
	return false
}
