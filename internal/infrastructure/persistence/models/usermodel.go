package models

import (
	"time"

	"github.com/orris-inc/tenantdesk/internal/shared/constants"
)

// UserModel represents the database persistence model for users
type UserModel struct {
	ID              uint   `gorm:"primarykey"`
	Email           string `gorm:"uniqueIndex;not null;size:255"`
	FullName        string `gorm:"not null;size:100"`
	PasswordHash    string `gorm:"size:255"`
	IsRootAdmin     bool   `gorm:"not null;default:false"`
	IsResellerAdmin bool   `gorm:"not null;default:false"`
	UserType        string `gorm:"not null;default:direct;size:20"`
	MFAEnabled      bool   `gorm:"column:mfa_enabled;not null;default:false"`
	OAuthProvider   string `gorm:"column:oauth_provider;size:20"`
	OAuthProviderID string `gorm:"column:oauth_provider_id;size:255;index:idx_users_oauth"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (UserModel) TableName() string {
	return constants.TableUsers
}
