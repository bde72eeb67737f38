package dto

import (
	"time"

	userdto "github.com/orris-inc/tenantdesk/internal/application/user/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/servicepackage"
	"github.com/orris-inc/tenantdesk/internal/domain/shared"
	"github.com/orris-inc/tenantdesk/internal/domain/subscription"
	"github.com/orris-inc/tenantdesk/internal/shared/biztime"
)

const dateLayout = "2006-01-02"

type CreateSubscriptionRequest struct {
	DepartmentID     uint   `json:"department_id" binding:"required"`
	ServicePackageID uint   `json:"service_package_id" binding:"required"`
	PaymentMethod    string `json:"payment_method" binding:"omitempty,max=50"`
}

type ListSubscriptionsRequest struct {
	DepartmentID *uint  `form:"department_id"`
	Status       string `form:"status" binding:"omitempty,oneof=pending active expired cancelled"`
	Page         int    `form:"page"`
	PageSize     int    `form:"page_size"`
}

type GrantAccessRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

type ListTransactionsRequest struct {
	SubscriptionID *uint `form:"subscription_id"`
	Page           int   `form:"page"`
	PageSize       int   `form:"page_size"`
}

type SubscriptionResponse struct {
	ID               uint      `json:"id"`
	DepartmentID     uint      `json:"department_id"`
	ServicePackageID uint      `json:"service_package_id"`
	StartDate        string    `json:"start_date"`
	EndDate          string    `json:"end_date"`
	Status           string    `json:"status"`
	Source           string    `json:"subscription_source"`
	ResellerID       *uint     `json:"reseller_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ToSubscriptionResponse reports the status as of today, so a subscription
// past its end date reads expired before the sweep has stored it.
func ToSubscriptionResponse(s *subscription.Subscription) *SubscriptionResponse {
	if s == nil {
		return nil
	}
	return &SubscriptionResponse{
		ID:               s.ID(),
		DepartmentID:     s.DepartmentID(),
		ServicePackageID: s.PackageID(),
		StartDate:        s.StartDate().Format(dateLayout),
		EndDate:          s.EndDate().Format(dateLayout),
		Status:           string(s.EffectiveStatus(biztime.Today())),
		Source:           string(s.Source()),
		ResellerID:       s.ResellerID(),
		CreatedAt:        s.CreatedAt(),
		UpdatedAt:        s.UpdatedAt(),
	}
}

func ToSubscriptionResponses(list []*subscription.Subscription) []*SubscriptionResponse {
	out := make([]*SubscriptionResponse, 0, len(list))
	for _, s := range list {
		out = append(out, ToSubscriptionResponse(s))
	}
	return out
}

type TransactionResponse struct {
	ID             uint              `json:"id"`
	SubscriptionID uint              `json:"subscription_id"`
	Amount         shared.Hundredths `json:"amount"`
	PaymentDate    time.Time         `json:"payment_date"`
	PaymentMethod  string            `json:"payment_method"`
	TransactionID  string            `json:"transaction_id"`
	Status         string            `json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
}

func ToTransactionResponse(t *subscription.Transaction) *TransactionResponse {
	if t == nil {
		return nil
	}
	return &TransactionResponse{
		ID:             t.ID,
		SubscriptionID: t.SubscriptionID,
		Amount:         t.Amount,
		PaymentDate:    t.PaymentDate,
		PaymentMethod:  t.PaymentMethod,
		TransactionID:  t.Reference,
		Status:         string(t.Status),
		CreatedAt:      t.CreatedAt,
	}
}

func ToTransactionResponses(list []*subscription.Transaction) []*TransactionResponse {
	out := make([]*TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, ToTransactionResponse(t))
	}
	return out
}

// SubscribeResponse is returned by subscription creation: the new
// subscription and the payment recorded with it.
type SubscribeResponse struct {
	Subscription *SubscriptionResponse `json:"subscription"`
	Transaction  *TransactionResponse  `json:"transaction"`
}

type ServiceAccessResponse struct {
	ID               uint                 `json:"id"`
	SubscriptionID   uint                 `json:"subscription_id"`
	ServicePackageID uint                 `json:"service_package_id"`
	User             *userdto.UserSummary `json:"user,omitempty"`
	GrantedAt        time.Time            `json:"granted_at"`
}

func ToServiceAccessResponse(a *subscription.ServiceAccess) *ServiceAccessResponse {
	return &ServiceAccessResponse{
		ID:               a.ID,
		SubscriptionID:   a.SubscriptionID,
		ServicePackageID: a.PackageID,
		GrantedAt:        a.GrantedAt,
	}
}

// MyAccessResponse is one grant held by the calling user.
type MyAccessResponse struct {
	SubscriptionID   uint      `json:"subscription_id"`
	ServicePackageID uint      `json:"service_package_id"`
	PackageName      string    `json:"package_name"`
	BillingCycle     string    `json:"billing_cycle"`
	GrantedAt        time.Time `json:"granted_at"`
}

func ToMyAccessResponses(grants []*subscription.ServiceAccess, packages []*servicepackage.ServicePackage) []*MyAccessResponse {
	byID := make(map[uint]*servicepackage.ServicePackage, len(packages))
	for _, p := range packages {
		byID[p.ID()] = p
	}
	out := make([]*MyAccessResponse, 0, len(grants))
	for _, g := range grants {
		item := &MyAccessResponse{
			SubscriptionID:   g.SubscriptionID,
			ServicePackageID: g.PackageID,
			GrantedAt:        g.GrantedAt,
		}
		if p, ok := byID[g.PackageID]; ok {
			item.PackageName = p.Name()
			item.BillingCycle = p.BillingCycle().String()
		}
		out = append(out, item)
	}
	return out
}
