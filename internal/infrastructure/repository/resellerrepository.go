package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/tenantdesk/internal/domain/reseller"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/tenantdesk/internal/shared/db"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type ResellerRepository struct {
	db     *gorm.DB
	mapper mappers.ResellerMapper
	logger logger.Interface
}

func NewResellerRepository(gdb *gorm.DB, logger logger.Interface) *ResellerRepository {
	return &ResellerRepository{
		db:     gdb,
		mapper: mappers.NewResellerMapper(),
		logger: logger,
	}
}

func (r *ResellerRepository) Create(ctx context.Context, entity *reseller.Reseller) error {
	model := r.mapper.ToModel(entity)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create reseller: %w", err)
	}
	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set reseller ID: %w", err)
	}
	r.logger.Infow("reseller created", "id", model.ID)
	return nil
}

func (r *ResellerRepository) Update(ctx context.Context, entity *reseller.Reseller) error {
	model := r.mapper.ToModel(entity)
	result := db.GetTxFromContext(ctx, r.db).Model(&models.ResellerModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"name":            model.Name,
			"description":     model.Description,
			"is_active":       model.IsActive,
			"commission_rate": model.CommissionRate,
			"updated_at":      model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update reseller: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("reseller %d not found", model.ID)
	}
	return nil
}

func (r *ResellerRepository) GetByID(ctx context.Context, id uint) (*reseller.Reseller, error) {
	var model models.ResellerModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get reseller: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *ResellerRepository) List(ctx context.Context, filter reseller.ListFilter) ([]*reseller.Reseller, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.ResellerModel{})
	if !filter.All {
		if len(filter.IDs) == 0 {
			query = query.Scopes(db.MatchNothing())
		} else {
			query = query.Where("id IN ?", filter.IDs)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count resellers: %w", err)
	}

	var list []*models.ResellerModel
	if err := query.Scopes(db.InsertionOrder(""), db.Paginate(filter.Page, filter.PageSize)).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list resellers: %w", err)
	}

	entities, err := r.mapper.ToEntities(list)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

type ResellerAdminRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewResellerAdminRepository(gdb *gorm.DB, logger logger.Interface) *ResellerAdminRepository {
	return &ResellerAdminRepository{db: gdb, logger: logger}
}

func (r *ResellerAdminRepository) Add(ctx context.Context, a *reseller.Admin) error {
	model := &models.ResellerAdminModel{UserID: a.UserID, ResellerID: a.ResellerID, AssignedAt: a.AssignedAt}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to add reseller admin: %w", err)
	}
	a.ID = model.ID
	r.logger.Infow("reseller admin added", "user_id", a.UserID, "reseller_id", a.ResellerID)
	return nil
}

func (r *ResellerAdminRepository) Remove(ctx context.Context, userID, resellerID uint) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ? AND reseller_id = ?", userID, resellerID).
		Delete(&models.ResellerAdminModel{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to remove reseller admin: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *ResellerAdminRepository) Exists(ctx context.Context, userID, resellerID uint) (bool, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.ResellerAdminModel{}).
		Where("user_id = ? AND reseller_id = ?", userID, resellerID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check reseller admin: %w", err)
	}
	return count > 0, nil
}

func (r *ResellerAdminRepository) ListByReseller(ctx context.Context, resellerID uint) ([]*reseller.Admin, error) {
	var rows []*models.ResellerAdminModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("reseller_id = ?", resellerID).
		Scopes(db.InsertionOrder("")).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list reseller admins: %w", err)
	}
	out := make([]*reseller.Admin, 0, len(rows))
	for _, row := range rows {
		out = append(out, mappers.ResellerAdmin(row))
	}
	return out, nil
}

func (r *ResellerAdminRepository) ResellerIDsForUser(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.ResellerAdminModel{}).
		Where("user_id = ?", userID).
		Order("reseller_id ASC").
		Pluck("reseller_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to load reseller IDs: %w", err)
	}
	return ids, nil
}

func (r *ResellerAdminRepository) CountForUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.ResellerAdminModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count reseller admin rows: %w", err)
	}
	return count, nil
}

type ResellerCustomerRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewResellerCustomerRepository(gdb *gorm.DB, logger logger.Interface) *ResellerCustomerRepository {
	return &ResellerCustomerRepository{db: gdb, logger: logger}
}

func (r *ResellerCustomerRepository) Add(ctx context.Context, c *reseller.Customer) error {
	model := &models.ResellerCustomerModel{
		ResellerID:   c.ResellerID,
		DepartmentID: c.DepartmentID,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt,
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to add reseller customer: %w", err)
	}
	c.ID = model.ID
	r.logger.Infow("reseller customer added", "reseller_id", c.ResellerID, "department_id", c.DepartmentID)
	return nil
}

func (r *ResellerCustomerRepository) Remove(ctx context.Context, resellerID, departmentID uint) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Where("reseller_id = ? AND department_id = ?", resellerID, departmentID).
		Delete(&models.ResellerCustomerModel{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to remove reseller customer: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *ResellerCustomerRepository) GetActive(ctx context.Context, resellerID, departmentID uint) (*reseller.Customer, error) {
	var model models.ResellerCustomerModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("reseller_id = ? AND department_id = ? AND is_active = ?", resellerID, departmentID, true).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get reseller customer: %w", err)
	}
	return mappers.ResellerCustomer(&model), nil
}

func (r *ResellerCustomerRepository) GetByDepartment(ctx context.Context, departmentID uint) (*reseller.Customer, error) {
	var model models.ResellerCustomerModel
	if err := db.GetTxFromContext(ctx, r.db).Where("department_id = ?", departmentID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get reseller customer: %w", err)
	}
	return mappers.ResellerCustomer(&model), nil
}

func (r *ResellerCustomerRepository) ListByReseller(ctx context.Context, resellerID uint) ([]*reseller.Customer, error) {
	var rows []*models.ResellerCustomerModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("reseller_id = ?", resellerID).
		Scopes(db.InsertionOrder("")).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list reseller customers: %w", err)
	}
	out := make([]*reseller.Customer, 0, len(rows))
	for _, row := range rows {
		out = append(out, mappers.ResellerCustomer(row))
	}
	return out, nil
}

func (r *ResellerCustomerRepository) ActiveByResellers(ctx context.Context, resellerIDs []uint) ([]*reseller.Customer, error) {
	if len(resellerIDs) == 0 {
		return []*reseller.Customer{}, nil
	}
	var rows []*models.ResellerCustomerModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("reseller_id IN ? AND is_active = ?", resellerIDs, true).
		Scopes(db.InsertionOrder("")).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list active reseller customers: %w", err)
	}
	out := make([]*reseller.Customer, 0, len(rows))
	for _, row := range rows {
		out = append(out, mappers.ResellerCustomer(row))
	}
	return out, nil
}
