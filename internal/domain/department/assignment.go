package department

import (
	"fmt"
	"time"
)

// Role distinguishes the two assignment tables of a department.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleMember
}

// Assignment links a user to a department in a role. Its existence is the
// role; it carries nothing but the grant timestamp.
type Assignment struct {
	ID           uint
	Role         Role
	UserID       uint
	DepartmentID uint
	AssignedAt   time.Time
}

func NewAssignment(role Role, userID, departmentID uint) (*Assignment, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid department role: %s", role)
	}
	if userID == 0 || departmentID == 0 {
		return nil, fmt.Errorf("user ID and department ID are required")
	}
	return &Assignment{
		Role:         role,
		UserID:       userID,
		DepartmentID: departmentID,
		AssignedAt:   time.Now().UTC(),
	}, nil
}
