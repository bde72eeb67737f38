// Package authorization turns an authenticated user into a Principal and
// checks that principal against the policy matrix on behalf of use cases.
package authorization

import (
	"context"
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/domain/department"
	"github.com/orris-inc/tenantdesk/internal/domain/reseller"
	"github.com/orris-inc/tenantdesk/internal/domain/user"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

// Resolver loads every role assignment of a user in one pass.
type Resolver struct {
	users          user.Repository
	assignments    department.AssignmentRepository
	resellerAdmins reseller.AdminRepository
	customers      reseller.CustomerRepository
	logger         logger.Interface
}

func NewResolver(
	users user.Repository,
	assignments department.AssignmentRepository,
	resellerAdmins reseller.AdminRepository,
	customers reseller.CustomerRepository,
	logger logger.Interface,
) *Resolver {
	return &Resolver{
		users:          users,
		assignments:    assignments,
		resellerAdmins: resellerAdmins,
		customers:      customers,
		logger:         logger,
	}
}

// Resolve returns the principal of userID. A token for a user that no longer
// exists is treated as unauthenticated.
func (r *Resolver) Resolve(ctx context.Context, userID uint) (*access.Principal, error) {
	u, err := r.users.GetByID(ctx, userID)
	if err != nil {
		r.logger.Errorw("failed to load user for principal", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if u == nil {
		return nil, apperrors.NewUnauthorizedError("user no longer exists")
	}

	adminDepts, err := r.assignments.DepartmentIDsForUser(ctx, department.RoleAdmin, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load department admin roles: %w", err)
	}
	memberDepts, err := r.assignments.DepartmentIDsForUser(ctx, department.RoleMember, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load department memberships: %w", err)
	}
	resellerIDs, err := r.resellerAdmins.ResellerIDsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reseller admin roles: %w", err)
	}

	customers := make(map[uint]uint)
	if len(resellerIDs) > 0 {
		links, err := r.customers.ActiveByResellers(ctx, resellerIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to load reseller customers: %w", err)
		}
		for _, link := range links {
			customers[link.DepartmentID] = link.ResellerID
		}
	}

	return access.NewPrincipal(u.ID(), access.Grants{
		Root:                u.IsRootAdmin(),
		ResellerIDs:         resellerIDs,
		AdminDepartmentIDs:  adminDepts,
		MemberDepartmentIDs: memberDepts,
		Customers:           customers,
	}), nil
}
