package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/orris-inc/tenantdesk/internal/shared/constants"
)

type ServicePackageModel struct {
	ID          uint   `gorm:"primarykey"`
	Name        string `gorm:"not null;size:100"`
	Description string `gorm:"type:text"`
	// Price is stored in cents.
	Price        int64          `gorm:"not null;default:0"`
	BillingCycle string         `gorm:"not null;size:20"`
	Features     datatypes.JSON `gorm:"type:json"`
	IsActive     bool           `gorm:"not null;index:idx_service_packages_active"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ServicePackageModel) TableName() string {
	return constants.TableServicePackages
}
