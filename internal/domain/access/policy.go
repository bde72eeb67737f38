// Package access models who a caller is (Principal), which roles that gives
// them on a given department, reseller or subscription, and the decision of
// whether those roles may act on a resource.
package access

// Role is a policy subject. Roles are derived per scope from a Principal and
// never stored on the user record.
type Role string

const (
	RoleRootAdmin       Role = "root_admin"
	RoleResellerAdmin   Role = "reseller_admin"
	RoleDepartmentAdmin Role = "department_admin"
	RoleMember          Role = "member"
	// RoleUser is held by every authenticated principal.
	RoleUser Role = "user"
)

type Resource string

const (
	ResourceDepartment       Resource = "department"
	ResourceDepartmentAdmin  Resource = "department_admin"
	ResourceDepartmentUser   Resource = "department_user"
	ResourceReseller         Resource = "reseller"
	ResourceResellerAdmin    Resource = "reseller_admin"
	ResourceResellerCustomer Resource = "reseller_customer"
	ResourceServicePackage   Resource = "service_package"
	ResourceSubscription     Resource = "subscription"
	ResourceServiceAccess    Resource = "service_access"
	ResourceTransaction      Resource = "transaction"
	ResourceUser             Resource = "user"
	ResourceProfile          Resource = "profile"
	ResourceOwnAccess        Resource = "own_access"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Policy is one role→resource→action rule. "*" matches any resource or action.
type Policy struct {
	Role     Role
	Resource string
	Action   string
}

// RoleInheritance is a g-rule: Role holds every permission of Inherits.
type RoleInheritance struct {
	Role     Role
	Inherits Role
}

// DefaultPolicies is the permission matrix loaded into the enforcer on boot.
func DefaultPolicies() []Policy {
	rules := []Policy{{RoleRootAdmin, "*", "*"}}

	add := func(role Role, res Resource, actions ...Action) {
		for _, act := range actions {
			rules = append(rules, Policy{role, string(res), string(act)})
		}
	}

	add(RoleUser, ResourceServicePackage, ActionRead)
	add(RoleUser, ResourceProfile, ActionRead, ActionUpdate)
	add(RoleUser, ResourceOwnAccess, ActionRead)

	add(RoleMember, ResourceDepartment, ActionRead)

	add(RoleDepartmentAdmin, ResourceDepartment, ActionUpdate)
	add(RoleDepartmentAdmin, ResourceDepartmentUser, ActionCreate, ActionRead, ActionDelete)
	add(RoleDepartmentAdmin, ResourceDepartmentAdmin, ActionRead)
	add(RoleDepartmentAdmin, ResourceSubscription, ActionCreate, ActionRead, ActionUpdate)
	add(RoleDepartmentAdmin, ResourceServiceAccess, ActionCreate, ActionRead, ActionDelete)
	add(RoleDepartmentAdmin, ResourceTransaction, ActionRead)
	add(RoleDepartmentAdmin, ResourceUser, ActionRead)

	add(RoleResellerAdmin, ResourceReseller, ActionRead)
	add(RoleResellerAdmin, ResourceResellerAdmin, ActionRead)
	add(RoleResellerAdmin, ResourceResellerCustomer, ActionCreate, ActionRead, ActionDelete)
	add(RoleResellerAdmin, ResourceDepartment, ActionRead)
	add(RoleResellerAdmin, ResourceDepartmentUser, ActionRead)
	add(RoleResellerAdmin, ResourceDepartmentAdmin, ActionRead)
	add(RoleResellerAdmin, ResourceSubscription, ActionCreate, ActionRead, ActionUpdate)
	add(RoleResellerAdmin, ResourceTransaction, ActionRead)
	add(RoleResellerAdmin, ResourceUser, ActionRead)

	return rules
}

func DefaultInheritance() []RoleInheritance {
	return []RoleInheritance{
		{RoleDepartmentAdmin, RoleMember},
	}
}

// PolicyEnforcer evaluates a single role against the policy matrix.
type PolicyEnforcer interface {
	Enforce(role, resource, action string) (bool, error)
}
