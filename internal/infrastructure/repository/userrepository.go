package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/tenantdesk/internal/domain/user"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/tenantdesk/internal/shared/constants"
	"github.com/orris-inc/tenantdesk/internal/shared/db"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

// UserRepository implements user.Repository on gorm.
type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
	logger logger.Interface
}

func NewUserRepository(gdb *gorm.DB, logger logger.Interface) *UserRepository {
	return &UserRepository{
		db:     gdb,
		mapper: mappers.NewUserMapper(),
		logger: logger,
	}
}

func (r *UserRepository) Create(ctx context.Context, entity *user.User) error {
	model := r.mapper.ToModel(entity)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set user ID: %w", err)
	}

	r.logger.Infow("user created", "id", model.ID)
	return nil
}

func (r *UserRepository) Update(ctx context.Context, entity *user.User) error {
	model := r.mapper.ToModel(entity)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.UserModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"full_name":         model.FullName,
			"password_hash":     model.PasswordHash,
			"is_root_admin":     model.IsRootAdmin,
			"is_reseller_admin": model.IsResellerAdmin,
			"user_type":         model.UserType,
			"mfa_enabled":       model.MFAEnabled,
			"oauth_provider":    model.OAuthProvider,
			"oauth_provider_id": model.OAuthProviderID,
			"updated_at":        model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update user", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user %d not found", model.ID)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	var model models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	normalized, err := user.NormalizeEmail(email)
	if err != nil {
		return nil, nil
	}

	var model models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).Where("email = ?", normalized).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []uint) ([]*user.User, error) {
	if len(ids) == 0 {
		return []*user.User{}, nil
	}
	var list []*models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Scopes(db.InsertionOrder("")).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return r.mapper.ToEntities(list)
}

// List returns users visible under filter: everyone when All is set,
// otherwise the caller plus the admins and members of DepartmentIDs.
func (r *UserRepository) List(ctx context.Context, filter user.ListFilter) ([]*user.User, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.UserModel{})

	if !filter.All {
		cond := tx.Where("id = ?", filter.UserID)
		if len(filter.DepartmentIDs) > 0 {
			admins := tx.Table(constants.TableDepartmentAdmins).Select("user_id").Where("department_id IN ?", filter.DepartmentIDs)
			members := tx.Table(constants.TableDepartmentUsers).Select("user_id").Where("department_id IN ?", filter.DepartmentIDs)
			cond = cond.Or("id IN (?)", admins).Or("id IN (?)", members)
		}
		query = query.Where(cond)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("email LIKE ? OR full_name LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var list []*models.UserModel
	if err := query.Scopes(db.InsertionOrder(""), db.Paginate(filter.Page, filter.PageSize)).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	entities, err := r.mapper.ToEntities(list)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}
