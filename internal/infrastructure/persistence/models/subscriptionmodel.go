package models

import (
	"time"

	"github.com/orris-inc/tenantdesk/internal/shared/constants"
)

// SubscriptionModel stores start and end as midnight UTC of the business date.
type SubscriptionModel struct {
	ID               uint      `gorm:"primarykey"`
	DepartmentID     uint      `gorm:"not null;index:idx_subscriptions_department"`
	ServicePackageID uint      `gorm:"not null;index:idx_subscriptions_package"`
	StartDate        time.Time `gorm:"not null"`
	EndDate          time.Time `gorm:"not null;index:idx_subscriptions_status_end,priority:2"`
	Status           string    `gorm:"not null;size:20;index:idx_subscriptions_status_end,priority:1"`
	Source           string    `gorm:"column:subscription_source;not null;default:direct;size:20"`
	ResellerID       *uint     `gorm:"index:idx_subscriptions_reseller"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}

type ServiceAccessModel struct {
	ID               uint      `gorm:"primarykey"`
	UserID           uint      `gorm:"not null;uniqueIndex:uk_service_access_user_package_subscription,priority:1;index:idx_service_access_user"`
	ServicePackageID uint      `gorm:"not null;uniqueIndex:uk_service_access_user_package_subscription,priority:2"`
	SubscriptionID   uint      `gorm:"not null;uniqueIndex:uk_service_access_user_package_subscription,priority:3;index:idx_service_access_subscription"`
	GrantedAt        time.Time `gorm:"not null"`
}

func (ServiceAccessModel) TableName() string {
	return constants.TableServiceAccess
}

type TransactionModel struct {
	ID             uint `gorm:"primarykey"`
	SubscriptionID uint `gorm:"not null;index:idx_transactions_subscription"`
	// Amount is stored in cents.
	Amount        int64     `gorm:"not null"`
	PaymentDate   time.Time `gorm:"not null"`
	PaymentMethod string    `gorm:"not null;size:50"`
	TransactionID string    `gorm:"column:transaction_id;not null;size:64;uniqueIndex"`
	Status        string    `gorm:"not null;size:20"`
	CreatedAt     time.Time
}

func (TransactionModel) TableName() string {
	return constants.TableTransactions
}
