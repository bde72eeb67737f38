package user

import "context"

// ListFilter scopes user listings. When All is false only UserID itself and
// the admins/members of DepartmentIDs are returned.
type ListFilter struct {
	All           bool
	UserID        uint
	DepartmentIDs []uint
	Search        string
	Page          int
	PageSize      int
}

// Repository persists users. Getters return nil, nil when nothing matches.
type Repository interface {
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*User, error)
	List(ctx context.Context, filter ListFilter) ([]*User, int64, error)
}
