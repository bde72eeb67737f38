package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/tenantdesk/internal/domain/servicepackage"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/tenantdesk/internal/shared/db"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type ServicePackageRepository struct {
	db     *gorm.DB
	mapper mappers.ServicePackageMapper
	logger logger.Interface
}

func NewServicePackageRepository(gdb *gorm.DB, logger logger.Interface) *ServicePackageRepository {
	return &ServicePackageRepository{
		db:     gdb,
		mapper: mappers.NewServicePackageMapper(),
		logger: logger,
	}
}

func (r *ServicePackageRepository) Create(ctx context.Context, entity *servicepackage.ServicePackage) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		return err
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create service package: %w", err)
	}
	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set service package ID: %w", err)
	}
	r.logger.Infow("service package created", "id", model.ID, "billing_cycle", model.BillingCycle)
	return nil
}

func (r *ServicePackageRepository) Update(ctx context.Context, entity *servicepackage.ServicePackage) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		return err
	}
	result := db.GetTxFromContext(ctx, r.db).Model(&models.ServicePackageModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"name":          model.Name,
			"description":   model.Description,
			"price":         model.Price,
			"billing_cycle": model.BillingCycle,
			"features":      model.Features,
			"is_active":     model.IsActive,
			"updated_at":    model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update service package: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("service package %d not found", model.ID)
	}
	return nil
}

func (r *ServicePackageRepository) Delete(ctx context.Context, id uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Delete(&models.ServicePackageModel{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete service package: %w", err)
	}
	r.logger.Infow("service package deleted", "id", id)
	return nil
}

func (r *ServicePackageRepository) GetByID(ctx context.Context, id uint) (*servicepackage.ServicePackage, error) {
	var model models.ServicePackageModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get service package: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *ServicePackageRepository) GetByIDs(ctx context.Context, ids []uint) ([]*servicepackage.ServicePackage, error) {
	if len(ids) == 0 {
		return []*servicepackage.ServicePackage{}, nil
	}
	var list []*models.ServicePackageModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Scopes(db.InsertionOrder("")).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to get service packages: %w", err)
	}
	return r.mapper.ToEntities(list)
}

func (r *ServicePackageRepository) List(ctx context.Context, filter servicepackage.ListFilter) ([]*servicepackage.ServicePackage, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.ServicePackageModel{})
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count service packages: %w", err)
	}

	var list []*models.ServicePackageModel
	if err := query.Scopes(db.InsertionOrder(""), db.Paginate(filter.Page, filter.PageSize)).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list service packages: %w", err)
	}

	entities, err := r.mapper.ToEntities(list)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}
