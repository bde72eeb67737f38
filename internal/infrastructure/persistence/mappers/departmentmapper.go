package mappers

import (
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/domain/department"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/tenantdesk/internal/shared/mapper"
)

type DepartmentMapper interface {
	ToEntity(model *models.DepartmentModel) (*department.Department, error)
	ToModel(entity *department.Department) *models.DepartmentModel
	ToEntities(models []*models.DepartmentModel) ([]*department.Department, error)
}

type DepartmentMapperImpl struct{}

func NewDepartmentMapper() DepartmentMapper {
	return &DepartmentMapperImpl{}
}

func (m *DepartmentMapperImpl) ToEntity(model *models.DepartmentModel) (*department.Department, error) {
	if model == nil {
		return nil, nil
	}
	entity, err := department.ReconstructDepartment(
		model.ID,
		model.Name,
		model.Description,
		department.CustomerType(model.CustomerType),
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct department entity: %w", err)
	}
	return entity, nil
}

func (m *DepartmentMapperImpl) ToModel(entity *department.Department) *models.DepartmentModel {
	if entity == nil {
		return nil
	}
	return &models.DepartmentModel{
		ID:           entity.ID(),
		Name:         entity.Name(),
		Description:  entity.Description(),
		CustomerType: string(entity.CustomerType()),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}
}

func (m *DepartmentMapperImpl) ToEntities(list []*models.DepartmentModel) ([]*department.Department, error) {
	return mapper.MapSliceWithError(list, m.ToEntity)
}

// The two assignment tables share one row shape.

func AdminAssignment(model *models.DepartmentAdminModel) *department.Assignment {
	return &department.Assignment{
		ID:           model.ID,
		Role:         department.RoleAdmin,
		UserID:       model.UserID,
		DepartmentID: model.DepartmentID,
		AssignedAt:   model.AssignedAt,
	}
}

func MemberAssignment(model *models.DepartmentUserModel) *department.Assignment {
	return &department.Assignment{
		ID:           model.ID,
		Role:         department.RoleMember,
		UserID:       model.UserID,
		DepartmentID: model.DepartmentID,
		AssignedAt:   model.AssignedAt,
	}
}
