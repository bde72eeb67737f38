package reseller

import "context"

type ListFilter struct {
	All      bool
	IDs      []uint
	Page     int
	PageSize int
}

type Repository interface {
	Create(ctx context.Context, r *Reseller) error
	Update(ctx context.Context, r *Reseller) error
	GetByID(ctx context.Context, id uint) (*Reseller, error)
	List(ctx context.Context, filter ListFilter) ([]*Reseller, int64, error)
}

type AdminRepository interface {
	Add(ctx context.Context, a *Admin) error
	Remove(ctx context.Context, userID, resellerID uint) (bool, error)
	Exists(ctx context.Context, userID, resellerID uint) (bool, error)
	ListByReseller(ctx context.Context, resellerID uint) ([]*Admin, error)
	ResellerIDsForUser(ctx context.Context, userID uint) ([]uint, error)
	CountForUser(ctx context.Context, userID uint) (int64, error)
}

type CustomerRepository interface {
	Add(ctx context.Context, c *Customer) error
	Remove(ctx context.Context, resellerID, departmentID uint) (bool, error)
	// GetActive returns the link only when it exists and is active.
	GetActive(ctx context.Context, resellerID, departmentID uint) (*Customer, error)
	GetByDepartment(ctx context.Context, departmentID uint) (*Customer, error)
	ListByReseller(ctx context.Context, resellerID uint) ([]*Customer, error)
	// ActiveByResellers returns the active links of the given resellers.
	ActiveByResellers(ctx context.Context, resellerIDs []uint) ([]*Customer, error)
}
