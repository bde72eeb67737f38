package mappers

import (
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/domain/shared"
	"github.com/orris-inc/tenantdesk/internal/domain/subscription"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/tenantdesk/internal/shared/mapper"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) *models.SubscriptionModel
	ToEntities(models []*models.SubscriptionModel) ([]*subscription.Subscription, error)
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}
	entity, err := subscription.ReconstructSubscription(subscription.Snapshot{
		ID:           model.ID,
		DepartmentID: model.DepartmentID,
		PackageID:    model.ServicePackageID,
		StartDate:    model.StartDate.UTC(),
		EndDate:      model.EndDate.UTC(),
		Status:       subscription.Status(model.Status),
		Source:       subscription.Source(model.Source),
		ResellerID:   model.ResellerID,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription entity: %w", err)
	}
	return entity, nil
}

func (m *SubscriptionMapperImpl) ToModel(entity *subscription.Subscription) *models.SubscriptionModel {
	if entity == nil {
		return nil
	}
	return &models.SubscriptionModel{
		ID:               entity.ID(),
		DepartmentID:     entity.DepartmentID(),
		ServicePackageID: entity.PackageID(),
		StartDate:        entity.StartDate(),
		EndDate:          entity.EndDate(),
		Status:           string(entity.Status()),
		Source:           string(entity.Source()),
		ResellerID:       entity.ResellerID(),
		CreatedAt:        entity.CreatedAt(),
		UpdatedAt:        entity.UpdatedAt(),
	}
}

func (m *SubscriptionMapperImpl) ToEntities(list []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	return mapper.MapSliceWithError(list, m.ToEntity)
}

func ServiceAccess(model *models.ServiceAccessModel) *subscription.ServiceAccess {
	return &subscription.ServiceAccess{
		ID:             model.ID,
		UserID:         model.UserID,
		PackageID:      model.ServicePackageID,
		SubscriptionID: model.SubscriptionID,
		GrantedAt:      model.GrantedAt,
	}
}

func Transaction(model *models.TransactionModel) *subscription.Transaction {
	return &subscription.Transaction{
		ID:             model.ID,
		SubscriptionID: model.SubscriptionID,
		Amount:         shared.Hundredths(model.Amount),
		PaymentDate:    model.PaymentDate,
		PaymentMethod:  model.PaymentMethod,
		Reference:      model.TransactionID,
		Status:         subscription.PaymentStatus(model.Status),
		CreatedAt:      model.CreatedAt,
	}
}

func TransactionModel(entity *subscription.Transaction) *models.TransactionModel {
	return &models.TransactionModel{
		ID:             entity.ID,
		SubscriptionID: entity.SubscriptionID,
		Amount:         int64(entity.Amount),
		PaymentDate:    entity.PaymentDate,
		PaymentMethod:  entity.PaymentMethod,
		TransactionID:  entity.Reference,
		Status:         string(entity.Status),
		CreatedAt:      entity.CreatedAt,
	}
}
