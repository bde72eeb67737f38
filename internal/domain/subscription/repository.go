package subscription

import (
	"context"
	"time"
)

// Scope restricts listings to what a principal may see. Rows match when
// their department is in DepartmentIDs, or when they were sold through one of
// ResellerIDs to one of ResellerDepartmentIDs.
type Scope struct {
	All                   bool
	DepartmentIDs         []uint
	ResellerIDs           []uint
	ResellerDepartmentIDs []uint
}

// IsEmpty reports whether the scope can match nothing.
func (s Scope) IsEmpty() bool {
	return !s.All && len(s.DepartmentIDs) == 0 && (len(s.ResellerIDs) == 0 || len(s.ResellerDepartmentIDs) == 0)
}

type ListFilter struct {
	Scope        Scope
	DepartmentID *uint
	Status       *Status
	Page         int
	PageSize     int
}

type Repository interface {
	Create(ctx context.Context, s *Subscription) error
	// Update persists a status change only if the row still has
	// s.StoredStatus(); otherwise it returns ErrStatusChanged.
	Update(ctx context.Context, s *Subscription) error
	GetByID(ctx context.Context, id uint) (*Subscription, error)
	List(ctx context.Context, filter ListFilter) ([]*Subscription, int64, error)
	// FindExpired returns active subscriptions whose end date is before asOf.
	FindExpired(ctx context.Context, asOf time.Time, limit int) ([]*Subscription, error)
	CountByPackage(ctx context.Context, packageID uint) (int64, error)
}

type AccessRepository interface {
	Add(ctx context.Context, a *ServiceAccess) error
	Remove(ctx context.Context, userID, packageID, subscriptionID uint) (bool, error)
	Exists(ctx context.Context, userID, packageID, subscriptionID uint) (bool, error)
	ListBySubscription(ctx context.Context, subscriptionID uint) ([]*ServiceAccess, error)
	ListByUser(ctx context.Context, userID uint) ([]*ServiceAccess, error)
}

type TransactionFilter struct {
	Scope          Scope
	SubscriptionID *uint
	Page           int
	PageSize       int
}

type TransactionRepository interface {
	Create(ctx context.Context, t *Transaction) error
	List(ctx context.Context, filter TransactionFilter) ([]*Transaction, int64, error)
}
