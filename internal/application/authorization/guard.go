package authorization

import (
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/domain/department"
	"github.com/orris-inc/tenantdesk/internal/domain/reseller"
	"github.com/orris-inc/tenantdesk/internal/domain/subscription"
	"github.com/orris-inc/tenantdesk/internal/domain/user"
	"github.com/orris-inc/tenantdesk/internal/shared/constants"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/utils/setutil"
)

// Guard wraps the Authorizer and reports a denial as a forbidden AppError.
// Use cases call it before looking anything up, so a denied caller learns
// nothing about whether the target exists.
type Guard struct {
	authorizer *access.Authorizer
}

func NewGuard(authorizer *access.Authorizer) *Guard {
	return &Guard{authorizer: authorizer}
}

func (g *Guard) Global(p *access.Principal, res access.Resource, act access.Action) error {
	if p == nil {
		return errNoPrincipal
	}
	return decide(g.authorizer.CanGlobal(p, res, act))
}

func (g *Guard) Department(p *access.Principal, departmentID uint, res access.Resource, act access.Action) error {
	if p == nil {
		return errNoPrincipal
	}
	return decide(g.authorizer.CanOnDepartment(p, departmentID, res, act))
}

func (g *Guard) Reseller(p *access.Principal, resellerID uint, res access.Resource, act access.Action) error {
	if p == nil {
		return errNoPrincipal
	}
	return decide(g.authorizer.CanOnReseller(p, resellerID, res, act))
}

func (g *Guard) Subscription(p *access.Principal, sub *subscription.Subscription, res access.Resource, act access.Action) error {
	if p == nil {
		return errNoPrincipal
	}
	ref := access.SubscriptionRef{DepartmentID: sub.DepartmentID(), ResellerID: sub.ResellerID()}
	return decide(g.authorizer.CanOnSubscription(p, ref, res, act))
}

// Scope returns the read scope of p over res.
func (g *Guard) Scope(p *access.Principal, res access.Resource) (access.Scope, error) {
	if p == nil {
		return access.Scope{}, errNoPrincipal
	}
	scope, err := g.authorizer.Scope(p, res)
	if err != nil {
		return access.Scope{}, fmt.Errorf("failed to compute scope: %w", err)
	}
	return scope, nil
}

var errNoPrincipal = apperrors.NewUnauthorizedError("authentication required")

func decide(allowed bool, err error) error {
	if err != nil {
		return fmt.Errorf("authorization check failed: %w", err)
	}
	if !allowed {
		return apperrors.NewForbiddenError(constants.ErrMsgForbidden)
	}
	return nil
}

// DepartmentFilter converts a scope into a department listing filter. Reseller
// admins see the departments of their customers next to their own.
func DepartmentFilter(s access.Scope, page, pageSize int) department.ListFilter {
	return department.ListFilter{
		All:      s.All,
		IDs:      setutil.NewUintSet(s.DepartmentIDs...).Union(setutil.NewUintSet(s.ResellerDepartmentIDs...)).Sorted(),
		Page:     page,
		PageSize: pageSize,
	}
}

func ResellerFilter(s access.Scope, page, pageSize int) reseller.ListFilter {
	return reseller.ListFilter{All: s.All, IDs: s.ResellerIDs, Page: page, PageSize: pageSize}
}

func SubscriptionScope(s access.Scope) subscription.Scope {
	return subscription.Scope{
		All:                   s.All,
		DepartmentIDs:         s.DepartmentIDs,
		ResellerIDs:           s.ResellerIDs,
		ResellerDepartmentIDs: s.ResellerDepartmentIDs,
	}
}

// UserFilter always lets the caller see their own record.
func UserFilter(s access.Scope, self uint, search string, page, pageSize int) user.ListFilter {
	return user.ListFilter{
		All:           s.All,
		UserID:        self,
		DepartmentIDs: setutil.NewUintSet(s.DepartmentIDs...).Union(setutil.NewUintSet(s.ResellerDepartmentIDs...)).Sorted(),
		Search:        search,
		Page:          page,
		PageSize:      pageSize,
	}
}
