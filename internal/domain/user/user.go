package user

import (
	"fmt"
	"strings"
	"time"
)

// UserType classifies how the account reached the platform.
type UserType string

const (
	UserTypeDirect   UserType = "direct"
	UserTypeReseller UserType = "reseller"
)

func (t UserType) IsValid() bool {
	return t == UserTypeDirect || t == UserTypeReseller
}

// User is the identity record. Role assignments for departments and
// resellers live in their own aggregates; only the platform wide flags are
// kept here.
type User struct {
	id              uint
	email           string
	fullName        string
	passwordHash    string
	isRootAdmin     bool
	isResellerAdmin bool
	userType        UserType
	mfaEnabled      bool
	oauthProvider   string
	oauthProviderID string
	createdAt       time.Time
	updatedAt       time.Time
}

// NewUser creates a direct user without credentials.
func NewUser(email, fullName string) (*User, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	name, err := normalizeName(fullName)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &User{
		email:     normalized,
		fullName:  name,
		userType:  UserTypeDirect,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// UserSnapshot carries persisted state into ReconstructUser.
type UserSnapshot struct {
	ID              uint
	Email           string
	FullName        string
	PasswordHash    string
	IsRootAdmin     bool
	IsResellerAdmin bool
	UserType        UserType
	MFAEnabled      bool
	OAuthProvider   string
	OAuthProviderID string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func ReconstructUser(s UserSnapshot) (*User, error) {
	if s.ID == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if !s.UserType.IsValid() {
		return nil, fmt.Errorf("invalid user type: %s", s.UserType)
	}
	return &User{
		id:              s.ID,
		email:           s.Email,
		fullName:        s.FullName,
		passwordHash:    s.PasswordHash,
		isRootAdmin:     s.IsRootAdmin,
		isResellerAdmin: s.IsResellerAdmin,
		userType:        s.UserType,
		mfaEnabled:      s.MFAEnabled,
		oauthProvider:   s.OAuthProvider,
		oauthProviderID: s.OAuthProviderID,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
	}, nil
}

func (u *User) ID() uint                { return u.id }
func (u *User) Email() string           { return u.email }
func (u *User) FullName() string        { return u.fullName }
func (u *User) PasswordHash() string    { return u.passwordHash }
func (u *User) HasPassword() bool       { return u.passwordHash != "" }
func (u *User) IsRootAdmin() bool       { return u.isRootAdmin }
func (u *User) IsResellerAdmin() bool   { return u.isResellerAdmin }
func (u *User) UserType() UserType      { return u.userType }
func (u *User) MFAEnabled() bool        { return u.mfaEnabled }
func (u *User) OAuthProvider() string   { return u.oauthProvider }
func (u *User) OAuthProviderID() string { return u.oauthProviderID }
func (u *User) CreatedAt() time.Time    { return u.createdAt }
func (u *User) UpdatedAt() time.Time    { return u.updatedAt }

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

func (u *User) SetPasswordHash(hash string) error {
	if hash == "" {
		return ErrPasswordMissing
	}
	u.passwordHash = hash
	u.touch()
	return nil
}

// PromoteToResellerAdmin marks the account as a reseller account with
// reseller administration rights. Calling it twice is harmless.
func (u *User) PromoteToResellerAdmin() {
	u.userType = UserTypeReseller
	u.isResellerAdmin = true
	u.touch()
}

// DropResellerAdmin clears the reseller administration flag once the user
// no longer administers any reseller. The account stays a reseller account.
func (u *User) DropResellerAdmin() {
	u.isResellerAdmin = false
	u.touch()
}

// GrantRootAdmin is used by the seed command to bootstrap the platform operator.
func (u *User) GrantRootAdmin() {
	u.isRootAdmin = true
	u.touch()
}

func (u *User) UpdateProfile(fullName string, mfaEnabled bool) error {
	name, err := normalizeName(fullName)
	if err != nil {
		return err
	}
	u.fullName = name
	u.mfaEnabled = mfaEnabled
	u.touch()
	return nil
}

// LinkOAuth records the social login identity used by the account.
func (u *User) LinkOAuth(provider, providerID string) {
	u.oauthProvider = provider
	u.oauthProviderID = providerID
	u.touch()
}

func (u *User) touch() {
	u.updatedAt = time.Now().UTC()
}

func normalizeName(value string) (string, error) {
	name := strings.Join(strings.Fields(value), " ")
	if name == "" {
		return "", fmt.Errorf("%w: full name cannot be empty", ErrInvalidName)
	}
	if len(name) > 100 {
		return "", fmt.Errorf("%w: full name cannot exceed 100 characters", ErrInvalidName)
	}
	return name, nil
}
