package dto

import (
	userdto "github.com/orris-inc/tenantdesk/internal/application/user/dto"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName   *string `json:"full_name,omitempty" binding:"omitempty,max=100"`
	MFAEnabled *bool   `json:"mfa_enabled,omitempty"`
}

type AuthResponse struct {
	AccessToken  string                `json:"access_token"`
	RefreshToken string                `json:"refresh_token"`
	TokenType    string                `json:"token_type"`
	ExpiresIn    int64                 `json:"expires_in"`
	User         *userdto.UserResponse `json:"user"`
}

type OAuthBeginResponse struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}
