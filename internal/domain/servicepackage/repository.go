package servicepackage

import "context"

type ListFilter struct {
	ActiveOnly bool
	Page       int
	PageSize   int
}

type Repository interface {
	Create(ctx context.Context, p *ServicePackage) error
	Update(ctx context.Context, p *ServicePackage) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*ServicePackage, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*ServicePackage, error)
	List(ctx context.Context, filter ListFilter) ([]*ServicePackage, int64, error)
}
