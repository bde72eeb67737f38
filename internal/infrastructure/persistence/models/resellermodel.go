package models

import (
	"time"

	"github.com/orris-inc/tenantdesk/internal/shared/constants"
)

type ResellerModel struct {
	ID          uint   `gorm:"primarykey"`
	Name        string `gorm:"not null;size:100"`
	Description string `gorm:"type:text"`
	IsActive    bool   `gorm:"not null"`
	// CommissionRate is stored in hundredths of a percent.
	CommissionRate int64 `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (ResellerModel) TableName() string {
	return constants.TableResellers
}

type ResellerAdminModel struct {
	ID         uint      `gorm:"primarykey"`
	UserID     uint      `gorm:"not null;uniqueIndex:uk_reseller_admins_user_reseller,priority:1"`
	ResellerID uint      `gorm:"not null;uniqueIndex:uk_reseller_admins_user_reseller,priority:2;index:idx_reseller_admins_reseller"`
	AssignedAt time.Time `gorm:"not null"`
}

func (ResellerAdminModel) TableName() string {
	return constants.TableResellerAdmins
}

// ResellerCustomerModel links a department to its reseller. department_id is
// unique on its own: a department has at most one reseller.
type ResellerCustomerModel struct {
	ID           uint `gorm:"primarykey"`
	ResellerID   uint `gorm:"not null;uniqueIndex:uk_reseller_customers_reseller_department,priority:1"`
	DepartmentID uint `gorm:"not null;uniqueIndex:uk_reseller_customers_reseller_department,priority:2;uniqueIndex:uk_reseller_customers_department"`
	IsActive     bool `gorm:"not null"`
	CreatedAt    time.Time
}

func (ResellerCustomerModel) TableName() string {
	return constants.TableResellerCustomers
}
