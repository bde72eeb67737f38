package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/orris-inc/tenantdesk/internal/domain/subscription"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/tenantdesk/internal/shared/constants"
	"github.com/orris-inc/tenantdesk/internal/shared/db"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

// subscriptionScope restricts a query on subscriptions (or a join onto it)
// to the rows a caller may see.
func subscriptionScope(s subscription.Scope) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if s.All {
			return q
		}
		if s.IsEmpty() {
			return q.Scopes(db.MatchNothing())
		}

		col := func(name string) string { return constants.TableSubscriptions + "." + name }
		var clauses []string
		var args []any
		if len(s.DepartmentIDs) > 0 {
			clauses = append(clauses, col("department_id")+" IN ?")
			args = append(args, s.DepartmentIDs)
		}
		if len(s.ResellerIDs) > 0 && len(s.ResellerDepartmentIDs) > 0 {
			clauses = append(clauses, fmt.Sprintf("(%s = ? AND %s IN ? AND %s IN ?)",
				col("subscription_source"), col("reseller_id"), col("department_id")))
			args = append(args, string(subscription.SourceReseller), s.ResellerIDs, s.ResellerDepartmentIDs)
		}
		return q.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

type SubscriptionRepository struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(gdb *gorm.DB, logger logger.Interface) *SubscriptionRepository {
	return &SubscriptionRepository{
		db:     gdb,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

func (r *SubscriptionRepository) Create(ctx context.Context, entity *subscription.Subscription) error {
	model := r.mapper.ToModel(entity)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set subscription ID: %w", err)
	}
	r.logger.Infow("subscription created",
		"id", model.ID,
		"department_id", model.DepartmentID,
		"service_package_id", model.ServicePackageID,
		"source", model.Source,
	)
	return nil
}

// Update persists status changes. Dates and ownership never change after
// creation. The write is conditional on the status the entity was loaded
// with, so a stale entity cannot overwrite a concurrent transition.
func (r *SubscriptionRepository) Update(ctx context.Context, entity *subscription.Subscription) error {
	result := db.GetTxFromContext(ctx, r.db).Model(&models.SubscriptionModel{}).
		Where("id = ? AND status = ?", entity.ID(), string(entity.StoredStatus())).
		Updates(map[string]any{
			"status":     string(entity.Status()),
			"updated_at": entity.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("subscription %d: %w", entity.ID(), subscription.ErrStatusChanged)
	}
	entity.MarkStored()
	return nil
}

func (r *SubscriptionRepository) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepository) List(ctx context.Context, filter subscription.ListFilter) ([]*subscription.Subscription, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.SubscriptionModel{}).Scopes(subscriptionScope(filter.Scope))
	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	var list []*models.SubscriptionModel
	if err := query.Scopes(db.InsertionOrder(constants.TableSubscriptions), db.Paginate(filter.Page, filter.PageSize)).Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	entities, err := r.mapper.ToEntities(list)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

func (r *SubscriptionRepository) FindExpired(ctx context.Context, asOf time.Time, limit int) ([]*subscription.Subscription, error) {
	var list []*models.SubscriptionModel
	query := db.GetTxFromContext(ctx, r.db).
		Where("status = ? AND end_date < ?", string(subscription.StatusActive), asOf).
		Scopes(db.InsertionOrder(""))
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to find expired subscriptions: %w", err)
	}
	return r.mapper.ToEntities(list)
}

func (r *SubscriptionRepository) CountByPackage(ctx context.Context, packageID uint) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.SubscriptionModel{}).
		Where("service_package_id = ?", packageID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count subscriptions for package: %w", err)
	}
	return count, nil
}

type ServiceAccessRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewServiceAccessRepository(gdb *gorm.DB, logger logger.Interface) *ServiceAccessRepository {
	return &ServiceAccessRepository{db: gdb, logger: logger}
}

func (r *ServiceAccessRepository) Add(ctx context.Context, a *subscription.ServiceAccess) error {
	model := &models.ServiceAccessModel{
		UserID:           a.UserID,
		ServicePackageID: a.PackageID,
		SubscriptionID:   a.SubscriptionID,
		GrantedAt:        a.GrantedAt,
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to grant service access: %w", err)
	}
	a.ID = model.ID
	r.logger.Infow("service access granted", "user_id", a.UserID, "subscription_id", a.SubscriptionID)
	return nil
}

func (r *ServiceAccessRepository) Remove(ctx context.Context, userID, packageID, subscriptionID uint) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ? AND service_package_id = ? AND subscription_id = ?", userID, packageID, subscriptionID).
		Delete(&models.ServiceAccessModel{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to revoke service access: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *ServiceAccessRepository) Exists(ctx context.Context, userID, packageID, subscriptionID uint) (bool, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.ServiceAccessModel{}).
		Where("user_id = ? AND service_package_id = ? AND subscription_id = ?", userID, packageID, subscriptionID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check service access: %w", err)
	}
	return count > 0, nil
}

func (r *ServiceAccessRepository) ListBySubscription(ctx context.Context, subscriptionID uint) ([]*subscription.ServiceAccess, error) {
	return r.list(ctx, "subscription_id = ?", subscriptionID)
}

func (r *ServiceAccessRepository) ListByUser(ctx context.Context, userID uint) ([]*subscription.ServiceAccess, error) {
	return r.list(ctx, "user_id = ?", userID)
}

func (r *ServiceAccessRepository) list(ctx context.Context, where string, arg uint) ([]*subscription.ServiceAccess, error) {
	var rows []*models.ServiceAccessModel
	if err := db.GetTxFromContext(ctx, r.db).Where(where, arg).Scopes(db.InsertionOrder("")).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list service access: %w", err)
	}
	out := make([]*subscription.ServiceAccess, 0, len(rows))
	for _, row := range rows {
		out = append(out, mappers.ServiceAccess(row))
	}
	return out, nil
}

type TransactionRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewTransactionRepository(gdb *gorm.DB, logger logger.Interface) *TransactionRepository {
	return &TransactionRepository{db: gdb, logger: logger}
}

func (r *TransactionRepository) Create(ctx context.Context, t *subscription.Transaction) error {
	model := mappers.TransactionModel(t)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}
	t.ID = model.ID
	r.logger.Infow("transaction recorded", "id", model.ID, "transaction_id", model.TransactionID, "subscription_id", model.SubscriptionID)
	return nil
}

func (r *TransactionRepository) List(ctx context.Context, filter subscription.TransactionFilter) ([]*subscription.Transaction, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.TransactionModel{}).
		Joins(fmt.Sprintf("JOIN %s ON %s.id = %s.subscription_id",
			constants.TableSubscriptions, constants.TableSubscriptions, constants.TableTransactions)).
		Scopes(subscriptionScope(filter.Scope))
	if filter.SubscriptionID != nil {
		query = query.Where(constants.TableTransactions+".subscription_id = ?", *filter.SubscriptionID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	var rows []*models.TransactionModel
	if err := query.Select(constants.TableTransactions+".*").
		Scopes(db.InsertionOrder(constants.TableTransactions), db.Paginate(filter.Page, filter.PageSize)).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	out := make([]*subscription.Transaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, mappers.Transaction(row))
	}
	return out, total, nil
}
