package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/orris-inc/tenantdesk/internal/domain/servicepackage"
	"github.com/orris-inc/tenantdesk/internal/domain/shared"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/tenantdesk/internal/shared/mapper"
)

type ServicePackageMapper interface {
	ToEntity(model *models.ServicePackageModel) (*servicepackage.ServicePackage, error)
	ToModel(entity *servicepackage.ServicePackage) (*models.ServicePackageModel, error)
	ToEntities(models []*models.ServicePackageModel) ([]*servicepackage.ServicePackage, error)
}

type ServicePackageMapperImpl struct{}

func NewServicePackageMapper() ServicePackageMapper {
	return &ServicePackageMapperImpl{}
}

func (m *ServicePackageMapperImpl) ToEntity(model *models.ServicePackageModel) (*servicepackage.ServicePackage, error) {
	if model == nil {
		return nil, nil
	}

	features := servicepackage.Features{}
	if len(model.Features) > 0 {
		if err := json.Unmarshal(model.Features, &features); err != nil {
			return nil, fmt.Errorf("failed to decode features of package %d: %w", model.ID, err)
		}
	}

	entity, err := servicepackage.ReconstructServicePackage(servicepackage.ServicePackageSnapshot{
		ID:           model.ID,
		Name:         model.Name,
		Description:  model.Description,
		Price:        shared.Hundredths(model.Price),
		BillingCycle: servicepackage.BillingCycle(model.BillingCycle),
		Features:     features,
		IsActive:     model.IsActive,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct service package entity: %w", err)
	}
	return entity, nil
}

func (m *ServicePackageMapperImpl) ToModel(entity *servicepackage.ServicePackage) (*models.ServicePackageModel, error) {
	if entity == nil {
		return nil, nil
	}

	features, err := json.Marshal(entity.Features())
	if err != nil {
		return nil, fmt.Errorf("failed to encode features: %w", err)
	}

	return &models.ServicePackageModel{
		ID:           entity.ID(),
		Name:         entity.Name(),
		Description:  entity.Description(),
		Price:        int64(entity.Price()),
		BillingCycle: string(entity.BillingCycle()),
		Features:     datatypes.JSON(features),
		IsActive:     entity.IsActive(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}, nil
}

func (m *ServicePackageMapperImpl) ToEntities(list []*models.ServicePackageModel) ([]*servicepackage.ServicePackage, error) {
	return mapper.MapSliceWithError(list, m.ToEntity)
}
