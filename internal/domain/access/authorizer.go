package access

import "fmt"

// Authorizer answers "may this principal perform action on resource" by
// checking each role the principal holds in the relevant scope against the
// policy matrix.
type Authorizer struct {
	enforcer PolicyEnforcer
}

func NewAuthorizer(enforcer PolicyEnforcer) *Authorizer {
	return &Authorizer{enforcer: enforcer}
}

func (a *Authorizer) anyAllowed(roles []Role, res Resource, act Action) (bool, error) {
	for _, role := range roles {
		ok, err := a.enforcer.Enforce(string(role), string(res), string(act))
		if err != nil {
			return false, fmt.Errorf("enforce %s %s:%s: %w", role, res, act, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// CanGlobal covers operations with no tenant scope, such as creating a
// department or a reseller.
func (a *Authorizer) CanGlobal(p *Principal, res Resource, act Action) (bool, error) {
	return a.anyAllowed(p.GlobalRoles(), res, act)
}

func (a *Authorizer) CanOnDepartment(p *Principal, departmentID uint, res Resource, act Action) (bool, error) {
	return a.anyAllowed(p.RolesForDepartment(departmentID), res, act)
}

func (a *Authorizer) CanOnReseller(p *Principal, resellerID uint, res Resource, act Action) (bool, error) {
	return a.anyAllowed(p.RolesForReseller(resellerID), res, act)
}

func (a *Authorizer) CanOnSubscription(p *Principal, ref SubscriptionRef, res Resource, act Action) (bool, error) {
	return a.anyAllowed(p.RolesForSubscription(ref), res, act)
}

// Scope describes which rows of a resource a principal may list.
// DepartmentIDs come from direct admin or membership rows. ResellerIDs and
// ResellerDepartmentIDs come from reseller administration; how they combine
// depends on the resource being listed.
type Scope struct {
	All                   bool
	DepartmentIDs         []uint
	ResellerIDs           []uint
	ResellerDepartmentIDs []uint
}

// Scope computes the read scope of p over res.
func (a *Authorizer) Scope(p *Principal, res Resource) (Scope, error) {
	if p.IsRoot() {
		ok, err := a.anyAllowed([]Role{RoleRootAdmin}, res, ActionRead)
		if err != nil {
			return Scope{}, err
		}
		if ok {
			return Scope{All: true}, nil
		}
	}

	var scope Scope

	adminOK, err := a.anyAllowed([]Role{RoleDepartmentAdmin}, res, ActionRead)
	if err != nil {
		return Scope{}, err
	}
	memberOK, err := a.anyAllowed([]Role{RoleMember}, res, ActionRead)
	if err != nil {
		return Scope{}, err
	}
	resellerOK, err := a.anyAllowed([]Role{RoleResellerAdmin}, res, ActionRead)
	if err != nil {
		return Scope{}, err
	}

	depts := make(map[uint]struct{})
	if adminOK {
		for _, id := range p.AdminDepartmentIDs() {
			depts[id] = struct{}{}
		}
	}
	if memberOK {
		for _, id := range p.MemberDepartmentIDs() {
			depts[id] = struct{}{}
		}
	}
	for _, id := range p.departmentAdmin.Union(p.member).Sorted() {
		if _, ok := depts[id]; ok {
			scope.DepartmentIDs = append(scope.DepartmentIDs, id)
		}
	}

	if resellerOK {
		scope.ResellerIDs = p.ResellerIDs()
		scope.ResellerDepartmentIDs = p.CustomerDepartmentIDs()
	}

	return scope, nil
}
