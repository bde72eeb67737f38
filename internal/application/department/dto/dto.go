package dto

import (
	"time"

	userdto "github.com/orris-inc/tenantdesk/internal/application/user/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/department"
	"github.com/orris-inc/tenantdesk/internal/domain/user"
)

type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

type UpdateDepartmentRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Description *string `json:"description,omitempty"`
}

type DepartmentResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CustomerType string    `json:"customer_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DepartmentDetailResponse adds the people attached to the department and the
// reseller managing it, if any.
type DepartmentDetailResponse struct {
	DepartmentResponse
	ResellerID *uint                 `json:"reseller_id,omitempty"`
	Admins     []userdto.UserSummary `json:"admins"`
	Members    []userdto.UserSummary `json:"members"`
}

func ToDepartmentResponse(d *department.Department) *DepartmentResponse {
	if d == nil {
		return nil
	}
	return &DepartmentResponse{
		ID:           d.ID(),
		Name:         d.Name(),
		Description:  d.Description(),
		CustomerType: string(d.CustomerType()),
		CreatedAt:    d.CreatedAt(),
		UpdatedAt:    d.UpdatedAt(),
	}
}

func ToDepartmentResponses(list []*department.Department) []*DepartmentResponse {
	out := make([]*DepartmentResponse, 0, len(list))
	for _, d := range list {
		out = append(out, ToDepartmentResponse(d))
	}
	return out
}

// ToUserSummaries keeps the order of ids and skips users that vanished.
func ToUserSummaries(ids []uint, users []*user.User) []userdto.UserSummary {
	byID := make(map[uint]*user.User, len(users))
	for _, u := range users {
		byID[u.ID()] = u
	}
	out := make([]userdto.UserSummary, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, userdto.ToUserSummary(u))
		}
	}
	return out
}
