package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Gin context keys
	ContextKeyUserID    = "user_id"
	ContextKeyPrincipal = "principal"
	ContextKeyRequestID = "request_id"
	ContextKeyTokenID   = "token_id"

	TableUsers              = "users"
	TableDepartments        = "departments"
	TableDepartmentAdmins   = "department_admins"
	TableDepartmentUsers    = "department_users"
	TableResellers          = "resellers"
	TableResellerAdmins     = "reseller_admins"
	TableResellerCustomers  = "reseller_customers"
	TableServicePackages    = "service_packages"
	TableSubscriptions      = "subscriptions"
	TableServiceAccess      = "service_access"
	TableTransactions       = "transactions"
	TablePermissionPolicies = "casbin_rule"

	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgForbidden           = "You do not have permission to perform this action"
)
