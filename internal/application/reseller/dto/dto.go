package dto

import (
	"time"

	userdto "github.com/orris-inc/tenantdesk/internal/application/user/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/department"
	"github.com/orris-inc/tenantdesk/internal/domain/reseller"
	"github.com/orris-inc/tenantdesk/internal/domain/shared"
)

type CreateResellerRequest struct {
	Name           string            `json:"name" binding:"required,max=100"`
	Description    string            `json:"description"`
	CommissionRate shared.Hundredths `json:"commission_rate"`
}

type UpdateResellerRequest struct {
	Name           *string            `json:"name,omitempty" binding:"omitempty,max=100"`
	Description    *string            `json:"description,omitempty"`
	IsActive       *bool              `json:"is_active,omitempty"`
	CommissionRate *shared.Hundredths `json:"commission_rate,omitempty"`
}

type AddCustomerRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

type ResellerResponse struct {
	ID             uint              `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	IsActive       bool              `json:"is_active"`
	CommissionRate shared.Hundredths `json:"commission_rate"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

type CustomerResponse struct {
	DepartmentID uint      `json:"department_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	IsActive     bool      `json:"is_active"`
	LinkedAt     time.Time `json:"linked_at"`
}

type ResellerDetailResponse struct {
	ResellerResponse
	Admins    []userdto.UserSummary `json:"admins"`
	Customers []*CustomerResponse   `json:"customers"`
}

func ToResellerResponse(r *reseller.Reseller) *ResellerResponse {
	if r == nil {
		return nil
	}
	return &ResellerResponse{
		ID:             r.ID(),
		Name:           r.Name(),
		Description:    r.Description(),
		IsActive:       r.IsActive(),
		CommissionRate: r.CommissionRate(),
		CreatedAt:      r.CreatedAt(),
		UpdatedAt:      r.UpdatedAt(),
	}
}

func ToResellerResponses(list []*reseller.Reseller) []*ResellerResponse {
	out := make([]*ResellerResponse, 0, len(list))
	for _, r := range list {
		out = append(out, ToResellerResponse(r))
	}
	return out
}

// ToCustomerResponses joins links with their departments, keeping link order.
func ToCustomerResponses(links []*reseller.Customer, depts []*department.Department) []*CustomerResponse {
	byID := make(map[uint]*department.Department, len(depts))
	for _, d := range depts {
		byID[d.ID()] = d
	}
	out := make([]*CustomerResponse, 0, len(links))
	for _, link := range links {
		d, ok := byID[link.DepartmentID]
		if !ok {
			continue
		}
		out = append(out, &CustomerResponse{
			DepartmentID: d.ID(),
			Name:         d.Name(),
			Description:  d.Description(),
			IsActive:     link.IsActive,
			LinkedAt:     link.CreatedAt,
		})
	}
	return out
}
