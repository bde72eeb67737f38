package mappers

import (
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/domain/reseller"
	"github.com/orris-inc/tenantdesk/internal/domain/shared"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/tenantdesk/internal/shared/mapper"
)

type ResellerMapper interface {
	ToEntity(model *models.ResellerModel) (*reseller.Reseller, error)
	ToModel(entity *reseller.Reseller) *models.ResellerModel
	ToEntities(models []*models.ResellerModel) ([]*reseller.Reseller, error)
}

type ResellerMapperImpl struct{}

func NewResellerMapper() ResellerMapper {
	return &ResellerMapperImpl{}
}

func (m *ResellerMapperImpl) ToEntity(model *models.ResellerModel) (*reseller.Reseller, error) {
	if model == nil {
		return nil, nil
	}
	entity, err := reseller.ReconstructReseller(
		model.ID,
		model.Name,
		model.Description,
		model.IsActive,
		shared.Hundredths(model.CommissionRate),
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct reseller entity: %w", err)
	}
	return entity, nil
}

func (m *ResellerMapperImpl) ToModel(entity *reseller.Reseller) *models.ResellerModel {
	if entity == nil {
		return nil
	}
	return &models.ResellerModel{
		ID:             entity.ID(),
		Name:           entity.Name(),
		Description:    entity.Description(),
		IsActive:       entity.IsActive(),
		CommissionRate: int64(entity.CommissionRate()),
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
	}
}

func (m *ResellerMapperImpl) ToEntities(list []*models.ResellerModel) ([]*reseller.Reseller, error) {
	return mapper.MapSliceWithError(list, m.ToEntity)
}

func ResellerAdmin(model *models.ResellerAdminModel) *reseller.Admin {
	return &reseller.Admin{
		ID:         model.ID,
		UserID:     model.UserID,
		ResellerID: model.ResellerID,
		AssignedAt: model.AssignedAt,
	}
}

func ResellerCustomer(model *models.ResellerCustomerModel) *reseller.Customer {
	return &reseller.Customer{
		ID:           model.ID,
		ResellerID:   model.ResellerID,
		DepartmentID: model.DepartmentID,
		IsActive:     model.IsActive,
		CreatedAt:    model.CreatedAt,
	}
}
