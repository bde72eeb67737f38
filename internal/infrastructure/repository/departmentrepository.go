package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/tenantdesk/internal/domain/department"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/tenantdesk/internal/shared/db"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type DepartmentRepository struct {
	db     *gorm.DB
	mapper mappers.DepartmentMapper
	logger logger.Interface
}

func NewDepartmentRepository(gdb *gorm.DB, logger logger.Interface) *DepartmentRepository {
	return &DepartmentRepository{
		db:     gdb,
		mapper: mappers.NewDepartmentMapper(),
		logger: logger,
	}
}

func (r *DepartmentRepository) Create(ctx context.Context, entity *department.Department) error {
	model := r.mapper.ToModel(entity)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create department: %w", err)
	}
	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set department ID: %w", err)
	}
	r.logger.Infow("department created", "id", model.ID, "customer_type", model.CustomerType)
	return nil
}

func (r *DepartmentRepository) Update(ctx context.Context, entity *department.Department) error {
	model := r.mapper.ToModel(entity)
	result := db.GetTxFromContext(ctx, r.db).Model(&models.DepartmentModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"name":        model.Name,
			"description": model.Description,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update department: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("department %d not found", model.ID)
	}
	return nil
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id uint) (*department.Department, error) {
	var model models.DepartmentModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *DepartmentRepository) GetByIDs(ctx context.Context, ids []uint) ([]*department.Department, error) {
	if len(ids) == 0 {
		return []*department.Department{}, nil
	}
	var list []*models.DepartmentModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Scopes(db.InsertionOrder("")).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to get departments: %w", err)
	}
	return r.mapper.ToEntities(list)
}

func (r *DepartmentRepository) List(ctx context.Context, filter department.ListFilter) ([]*department.Department, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.DepartmentModel{})
	if !filter.All {
		if len(filter.IDs) == 0 {
			query = query.Scopes(db.MatchNothing())
		} else {
			query = query.Where("id IN ?", filter.IDs)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count departments: %w", err)
	}

	var list []*models.DepartmentModel
	if err := query.Scopes(db.InsertionOrder(""), db.Paginate(filter.Page, filter.PageSize)).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list departments: %w", err)
	}

	entities, err := r.mapper.ToEntities(list)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

// DepartmentAssignmentRepository serves both department_admins and
// department_users; the role picks the table.
type DepartmentAssignmentRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewDepartmentAssignmentRepository(gdb *gorm.DB, logger logger.Interface) *DepartmentAssignmentRepository {
	return &DepartmentAssignmentRepository{db: gdb, logger: logger}
}

func modelFor(role department.Role) (any, error) {
	switch role {
	case department.RoleAdmin:
		return &models.DepartmentAdminModel{}, nil
	case department.RoleMember:
		return &models.DepartmentUserModel{}, nil
	}
	return nil, fmt.Errorf("invalid department role: %s", role)
}

func (r *DepartmentAssignmentRepository) Add(ctx context.Context, a *department.Assignment) error {
	tx := db.GetTxFromContext(ctx, r.db)

	switch a.Role {
	case department.RoleAdmin:
		model := &models.DepartmentAdminModel{UserID: a.UserID, DepartmentID: a.DepartmentID, AssignedAt: a.AssignedAt}
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to add department admin: %w", err)
		}
		a.ID = model.ID
	case department.RoleMember:
		model := &models.DepartmentUserModel{UserID: a.UserID, DepartmentID: a.DepartmentID, AssignedAt: a.AssignedAt}
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to add department user: %w", err)
		}
		a.ID = model.ID
	default:
		return fmt.Errorf("invalid department role: %s", a.Role)
	}

	r.logger.Infow("department assignment added", "role", a.Role, "user_id", a.UserID, "department_id", a.DepartmentID)
	return nil
}

func (r *DepartmentAssignmentRepository) Remove(ctx context.Context, role department.Role, userID, departmentID uint) (bool, error) {
	model, err := modelFor(role)
	if err != nil {
		return false, err
	}
	result := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ? AND department_id = ?", userID, departmentID).
		Delete(model)
	if result.Error != nil {
		return false, fmt.Errorf("failed to remove department %s: %w", role, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *DepartmentAssignmentRepository) Exists(ctx context.Context, role department.Role, userID, departmentID uint) (bool, error) {
	model, err := modelFor(role)
	if err != nil {
		return false, err
	}
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(model).
		Where("user_id = ? AND department_id = ?", userID, departmentID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check department %s: %w", role, err)
	}
	return count > 0, nil
}

func (r *DepartmentAssignmentRepository) ListByDepartment(ctx context.Context, role department.Role, departmentID uint) ([]*department.Assignment, error) {
	tx := db.GetTxFromContext(ctx, r.db).Where("department_id = ?", departmentID).Scopes(db.InsertionOrder(""))

	switch role {
	case department.RoleAdmin:
		var rows []*models.DepartmentAdminModel
		if err := tx.Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to list department admins: %w", err)
		}
		out := make([]*department.Assignment, 0, len(rows))
		for _, row := range rows {
			out = append(out, mappers.AdminAssignment(row))
		}
		return out, nil
	case department.RoleMember:
		var rows []*models.DepartmentUserModel
		if err := tx.Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to list department users: %w", err)
		}
		out := make([]*department.Assignment, 0, len(rows))
		for _, row := range rows {
			out = append(out, mappers.MemberAssignment(row))
		}
		return out, nil
	}
	return nil, fmt.Errorf("invalid department role: %s", role)
}

func (r *DepartmentAssignmentRepository) DepartmentIDsForUser(ctx context.Context, role department.Role, userID uint) ([]uint, error) {
	model, err := modelFor(role)
	if err != nil {
		return nil, err
	}
	var ids []uint
	if err := db.GetTxFromContext(ctx, r.db).Model(model).
		Where("user_id = ?", userID).
		Order("department_id ASC").
		Pluck("department_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to load department IDs: %w", err)
	}
	return ids, nil
}
