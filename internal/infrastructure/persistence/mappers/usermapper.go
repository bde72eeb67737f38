package mappers

import (
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/domain/user"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/tenantdesk/internal/shared/mapper"
)

// UserMapper handles the conversion between domain entities and persistence models
type UserMapper interface {
	ToEntity(model *models.UserModel) (*user.User, error)
	ToModel(entity *user.User) *models.UserModel
	ToEntities(models []*models.UserModel) ([]*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := user.ReconstructUser(user.UserSnapshot{
		ID:              model.ID,
		Email:           model.Email,
		FullName:        model.FullName,
		PasswordHash:    model.PasswordHash,
		IsRootAdmin:     model.IsRootAdmin,
		IsResellerAdmin: model.IsResellerAdmin,
		UserType:        user.UserType(model.UserType),
		MFAEnabled:      model.MFAEnabled,
		OAuthProvider:   model.OAuthProvider,
		OAuthProviderID: model.OAuthProviderID,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct user entity: %w", err)
	}
	return entity, nil
}

func (m *UserMapperImpl) ToModel(entity *user.User) *models.UserModel {
	if entity == nil {
		return nil
	}
	return &models.UserModel{
		ID:              entity.ID(),
		Email:           entity.Email(),
		FullName:        entity.FullName(),
		PasswordHash:    entity.PasswordHash(),
		IsRootAdmin:     entity.IsRootAdmin(),
		IsResellerAdmin: entity.IsResellerAdmin(),
		UserType:        string(entity.UserType()),
		MFAEnabled:      entity.MFAEnabled(),
		OAuthProvider:   entity.OAuthProvider(),
		OAuthProviderID: entity.OAuthProviderID(),
		CreatedAt:       entity.CreatedAt(),
		UpdatedAt:       entity.UpdatedAt(),
	}
}

func (m *UserMapperImpl) ToEntities(list []*models.UserModel) ([]*user.User, error) {
	return mapper.MapSliceWithError(list, m.ToEntity)
}
