package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/application/authorization"
	userdto "github.com/orris-inc/tenantdesk/internal/application/user/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/domain/user"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type GetProfileQuery struct {
	Principal *access.Principal
}

type GetProfileUseCase struct {
	userRepo user.Repository
	guard    *authorization.Guard
	logger   logger.Interface
}

func NewGetProfileUseCase(userRepo user.Repository, guard *authorization.Guard, logger logger.Interface) *GetProfileUseCase {
	return &GetProfileUseCase{userRepo: userRepo, guard: guard, logger: logger}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, query GetProfileQuery) (*userdto.UserResponse, error) {
	if err := uc.guard.Global(query.Principal, access.ResourceProfile, access.ActionRead); err != nil {
		return nil, err
	}
	u, err := uc.userRepo.GetByID(ctx, query.Principal.UserID())
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	return userdto.ToUserResponse(u), nil
}

type UpdateProfileCommand struct {
	Principal  *access.Principal
	FullName   *string
	MFAEnabled *bool
}

type UpdateProfileUseCase struct {
	userRepo user.Repository
	guard    *authorization.Guard
	logger   logger.Interface
}

func NewUpdateProfileUseCase(userRepo user.Repository, guard *authorization.Guard, logger logger.Interface) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{userRepo: userRepo, guard: guard, logger: logger}
}

func (uc *UpdateProfileUseCase) Execute(ctx context.Context, cmd UpdateProfileCommand) (*userdto.UserResponse, error) {
	if err := uc.guard.Global(cmd.Principal, access.ResourceProfile, access.ActionUpdate); err != nil {
		return nil, err
	}
	u, err := uc.userRepo.GetByID(ctx, cmd.Principal.UserID())
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}

	fullName, mfa := u.FullName(), u.MFAEnabled()
	if cmd.FullName != nil {
		fullName = *cmd.FullName
	}
	if cmd.MFAEnabled != nil {
		mfa = *cmd.MFAEnabled
	}
	if err := u.UpdateProfile(fullName, mfa); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update profile", "error", err, "user_id", u.ID())
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	uc.logger.Infow("profile updated", "user_id", u.ID())
	return userdto.ToUserResponse(u), nil
}
