package subscription

import (
	"fmt"
	"time"
)

// ServiceAccess grants one user access to the package of a subscription.
type ServiceAccess struct {
	ID             uint
	UserID         uint
	PackageID      uint
	SubscriptionID uint
	GrantedAt      time.Time
}

// NewServiceAccess builds a grant for the package the subscription covers.
func NewServiceAccess(userID uint, sub *Subscription) (*ServiceAccess, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if sub == nil || sub.ID() == 0 {
		return nil, fmt.Errorf("persisted subscription is required")
	}
	return &ServiceAccess{
		UserID:         userID,
		PackageID:      sub.PackageID(),
		SubscriptionID: sub.ID(),
		GrantedAt:      time.Now().UTC(),
	}, nil
}
