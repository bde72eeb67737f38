package dto

import (
	"time"

	"github.com/orris-inc/tenantdesk/internal/domain/user"
	"github.com/orris-inc/tenantdesk/internal/shared/mapper"
)

// AttachUserRequest names a user by email. Password is only needed when no
// account exists for the email yet.
type AttachUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required,min=1,max=100"`
	Password string `json:"password,omitempty" binding:"omitempty,min=8,max=72"`
}

type ListUsersRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
}

type UserResponse struct {
	ID              uint      `json:"id"`
	Email           string    `json:"email"`
	FullName        string    `json:"full_name"`
	IsRootAdmin     bool      `json:"is_root_admin"`
	IsResellerAdmin bool      `json:"is_reseller_admin"`
	UserType        string    `json:"user_type"`
	MFAEnabled      bool      `json:"mfa_enabled"`
	OAuthProvider   string    `json:"oauth_provider,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func ToUserResponse(u *user.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:              u.ID(),
		Email:           u.Email(),
		FullName:        u.FullName(),
		IsRootAdmin:     u.IsRootAdmin(),
		IsResellerAdmin: u.IsResellerAdmin(),
		UserType:        string(u.UserType()),
		MFAEnabled:      u.MFAEnabled(),
		OAuthProvider:   u.OAuthProvider(),
		CreatedAt:       u.CreatedAt(),
		UpdatedAt:       u.UpdatedAt(),
	}
}

// ToUserResponses never returns nil so empty lists render as [].
func ToUserResponses(users []*user.User) []*UserResponse {
	if len(users) == 0 {
		return []*UserResponse{}
	}
	return mapper.MapSlice(users, ToUserResponse)
}

// UserSummary is the short form embedded in department and reseller details.
type UserSummary struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

func ToUserSummary(u *user.User) UserSummary {
	return UserSummary{ID: u.ID(), Email: u.Email(), FullName: u.FullName()}
}
