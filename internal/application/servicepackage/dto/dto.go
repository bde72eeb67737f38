package dto

import (
	"time"

	"github.com/orris-inc/tenantdesk/internal/domain/servicepackage"
	"github.com/orris-inc/tenantdesk/internal/domain/shared"
)

type CreatePackageRequest struct {
	Name         string                  `json:"name" binding:"required,max=100"`
	Description  string                  `json:"description"`
	Price        shared.Hundredths       `json:"price" binding:"gte=0"`
	BillingCycle string                  `json:"billing_cycle" binding:"required,billing_cycle"`
	Features     servicepackage.Features `json:"features"`
}

type UpdatePackageRequest struct {
	Name         *string                 `json:"name,omitempty" binding:"omitempty,max=100"`
	Description  *string                 `json:"description,omitempty"`
	Price        *shared.Hundredths      `json:"price,omitempty" binding:"omitempty,gte=0"`
	BillingCycle *string                 `json:"billing_cycle,omitempty" binding:"omitempty,billing_cycle"`
	Features     servicepackage.Features `json:"features,omitempty"`
	IsActive     *bool                   `json:"is_active,omitempty"`
}

type PackageResponse struct {
	ID              uint                    `json:"id"`
	Name            string                  `json:"name"`
	Description     string                  `json:"description"`
	DescriptionHTML string                  `json:"description_html,omitempty"`
	Price           shared.Hundredths       `json:"price"`
	BillingCycle    string                  `json:"billing_cycle"`
	DurationDays    int                     `json:"duration_days"`
	Features        servicepackage.Features `json:"features"`
	IsActive        bool                    `json:"is_active"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

func ToPackageResponse(p *servicepackage.ServicePackage) *PackageResponse {
	if p == nil {
		return nil
	}
	features := p.Features()
	if features == nil {
		features = servicepackage.Features{}
	}
	return &PackageResponse{
		ID:           p.ID(),
		Name:         p.Name(),
		Description:  p.Description(),
		Price:        p.Price(),
		BillingCycle: p.BillingCycle().String(),
		DurationDays: p.BillingCycle().Days(),
		Features:     features,
		IsActive:     p.IsActive(),
		CreatedAt:    p.CreatedAt(),
		UpdatedAt:    p.UpdatedAt(),
	}
}
