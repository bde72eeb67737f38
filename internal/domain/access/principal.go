package access

import (
	"github.com/orris-inc/tenantdesk/internal/shared/utils/setutil"
)

// Grants is the raw capability data a Principal is built from.
type Grants struct {
	Root                bool
	ResellerIDs         []uint
	AdminDepartmentIDs  []uint
	MemberDepartmentIDs []uint
	// Customers maps each active customer department of an administered
	// reseller to that reseller.
	Customers map[uint]uint
}

// Principal is the resolved capability set of one caller. It is computed once
// per request and is read-only afterwards.
type Principal struct {
	userID          uint
	root            bool
	resellerAdmin   *setutil.UintSet
	departmentAdmin *setutil.UintSet
	member          *setutil.UintSet
	customers       map[uint]uint
}

func NewPrincipal(userID uint, g Grants) *Principal {
	customers := make(map[uint]uint, len(g.Customers))
	for dept, res := range g.Customers {
		customers[dept] = res
	}
	return &Principal{
		userID:          userID,
		root:            g.Root,
		resellerAdmin:   setutil.NewUintSet(g.ResellerIDs...),
		departmentAdmin: setutil.NewUintSet(g.AdminDepartmentIDs...),
		member:          setutil.NewUintSet(g.MemberDepartmentIDs...),
		customers:       customers,
	}
}

func (p *Principal) UserID() uint { return p.userID }
func (p *Principal) IsRoot() bool { return p.root }

func (p *Principal) AdministersDepartment(departmentID uint) bool {
	return p.departmentAdmin.Has(departmentID)
}

func (p *Principal) AdministersReseller(resellerID uint) bool {
	return p.resellerAdmin.Has(resellerID)
}

func (p *Principal) IsMemberOf(departmentID uint) bool {
	return p.member.Has(departmentID)
}

// ResellerFor returns the administered reseller that has departmentID as an
// active customer.
func (p *Principal) ResellerFor(departmentID uint) (uint, bool) {
	id, ok := p.customers[departmentID]
	return id, ok
}

func (p *Principal) ResellerIDs() []uint         { return p.resellerAdmin.Sorted() }
func (p *Principal) AdminDepartmentIDs() []uint  { return p.departmentAdmin.Sorted() }
func (p *Principal) MemberDepartmentIDs() []uint { return p.member.Sorted() }

func (p *Principal) CustomerDepartmentIDs() []uint {
	s := setutil.NewUintSet()
	for dept := range p.customers {
		s.Add(dept)
	}
	return s.Sorted()
}

// GlobalRoles are the roles that apply regardless of scope.
func (p *Principal) GlobalRoles() []Role {
	roles := []Role{RoleUser}
	if p.root {
		roles = append(roles, RoleRootAdmin)
	}
	return roles
}

// RolesForDepartment lists the roles the principal holds on departmentID.
func (p *Principal) RolesForDepartment(departmentID uint) []Role {
	roles := p.GlobalRoles()
	if p.departmentAdmin.Has(departmentID) {
		roles = append(roles, RoleDepartmentAdmin)
	}
	if p.member.Has(departmentID) {
		roles = append(roles, RoleMember)
	}
	if _, ok := p.customers[departmentID]; ok {
		roles = append(roles, RoleResellerAdmin)
	}
	return roles
}

func (p *Principal) RolesForReseller(resellerID uint) []Role {
	roles := p.GlobalRoles()
	if p.resellerAdmin.Has(resellerID) {
		roles = append(roles, RoleResellerAdmin)
	}
	return roles
}

// SubscriptionRef is the part of a subscription that authorization looks at.
type SubscriptionRef struct {
	DepartmentID uint
	ResellerID   *uint
}

// RolesForSubscription lists the roles held on a subscription. A reseller
// admin only holds a role on reseller-sourced subscriptions sold through
// their reseller to one of its current customers. Members hold none; they see
// their own grants through their profile.
func (p *Principal) RolesForSubscription(ref SubscriptionRef) []Role {
	roles := p.GlobalRoles()
	if p.departmentAdmin.Has(ref.DepartmentID) {
		roles = append(roles, RoleDepartmentAdmin)
	}
	if ref.ResellerID != nil && p.resellerAdmin.Has(*ref.ResellerID) {
		if res, ok := p.customers[ref.DepartmentID]; ok && res == *ref.ResellerID {
			roles = append(roles, RoleResellerAdmin)
		}
	}
	return roles
}
