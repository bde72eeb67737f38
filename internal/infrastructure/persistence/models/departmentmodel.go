package models

import (
	"time"

	"github.com/orris-inc/tenantdesk/internal/shared/constants"
)

type DepartmentModel struct {
	ID           uint   `gorm:"primarykey"`
	Name         string `gorm:"not null;size:100"`
	Description  string `gorm:"type:text"`
	CustomerType string `gorm:"not null;default:direct;size:20"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (DepartmentModel) TableName() string {
	return constants.TableDepartments
}

// DepartmentAdminModel is one row per (user, department) admin pair.
type DepartmentAdminModel struct {
	ID           uint      `gorm:"primarykey"`
	UserID       uint      `gorm:"not null;uniqueIndex:uk_department_admins_user_department,priority:1"`
	DepartmentID uint      `gorm:"not null;uniqueIndex:uk_department_admins_user_department,priority:2;index:idx_department_admins_department"`
	AssignedAt   time.Time `gorm:"not null"`
}

func (DepartmentAdminModel) TableName() string {
	return constants.TableDepartmentAdmins
}

// DepartmentUserModel is one row per (user, department) membership.
type DepartmentUserModel struct {
	ID           uint      `gorm:"primarykey"`
	UserID       uint      `gorm:"not null;uniqueIndex:uk_department_users_user_department,priority:1"`
	DepartmentID uint      `gorm:"not null;uniqueIndex:uk_department_users_user_department,priority:2;index:idx_department_users_department"`
	AssignedAt   time.Time `gorm:"not null"`
}

func (DepartmentUserModel) TableName() string {
	return constants.TableDepartmentUsers
}
