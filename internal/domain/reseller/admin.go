package reseller

import (
	"fmt"
	"time"
)

// Admin links a user to a reseller as administrator.
type Admin struct {
	ID         uint
	UserID     uint
	ResellerID uint
	AssignedAt time.Time
}

func NewAdmin(userID, resellerID uint) (*Admin, error) {
	if userID == 0 || resellerID == 0 {
		return nil, fmt.Errorf("user ID and reseller ID are required")
	}
	return &Admin{UserID: userID, ResellerID: resellerID, AssignedAt: time.Now().UTC()}, nil
}
