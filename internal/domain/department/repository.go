package department

import "context"

// ListFilter restricts department listings. IDs is ignored when All is set.
type ListFilter struct {
	All      bool
	IDs      []uint
	Page     int
	PageSize int
}

type Repository interface {
	Create(ctx context.Context, d *Department) error
	Update(ctx context.Context, d *Department) error
	GetByID(ctx context.Context, id uint) (*Department, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*Department, error)
	List(ctx context.Context, filter ListFilter) ([]*Department, int64, error)
}

// AssignmentRepository stores DepartmentAdmin and DepartmentUser rows.
// Add surfaces the storage unique violation when the pair already exists.
type AssignmentRepository interface {
	Add(ctx context.Context, a *Assignment) error
	Remove(ctx context.Context, role Role, userID, departmentID uint) (bool, error)
	Exists(ctx context.Context, role Role, userID, departmentID uint) (bool, error)
	ListByDepartment(ctx context.Context, role Role, departmentID uint) ([]*Assignment, error)
	DepartmentIDsForUser(ctx context.Context, role Role, userID uint) ([]uint, error)
}
