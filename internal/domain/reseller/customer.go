package reseller

import (
	"fmt"
	"time"
)

// Customer links a department to the reseller that manages it. A department
// belongs to at most one reseller.
type Customer struct {
	ID           uint
	ResellerID   uint
	DepartmentID uint
	IsActive     bool
	CreatedAt    time.Time
}

func NewCustomer(resellerID, departmentID uint) (*Customer, error) {
	if resellerID == 0 || departmentID == 0 {
		return nil, fmt.Errorf("reseller ID and department ID are required")
	}
	return &Customer{
		ResellerID:   resellerID,
		DepartmentID: departmentID,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}, nil
}
