// Package models holds the gorm persistence models. They are the only types
// that know about columns and indexes; the domain never sees them.
package models

// All returns every model in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&UserModel{},
		&DepartmentModel{},
		&DepartmentAdminModel{},
		&DepartmentUserModel{},
		&ResellerModel{},
		&ResellerAdminModel{},
		&ResellerCustomerModel{},
		&ServicePackageModel{},
		&SubscriptionModel{},
		&ServiceAccessModel{},
		&TransactionModel{},
	}
}
