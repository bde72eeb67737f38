package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/application/authorization"
	"github.com/orris-inc/tenantdesk/internal/application/reseller/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/domain/reseller"
	"github.com/orris-inc/tenantdesk/internal/domain/shared"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type UpdateResellerCommand struct {
	Principal      *access.Principal
	ResellerID     uint
	Name           *string
	Description    *string
	IsActive       *bool
	CommissionRate *shared.Hundredths
}

type UpdateResellerUseCase struct {
	resellerRepo reseller.Repository
	guard        *authorization.Guard
	logger       logger.Interface
}

func NewUpdateResellerUseCase(resellerRepo reseller.Repository, guard *authorization.Guard, logger logger.Interface) *UpdateResellerUseCase {
	return &UpdateResellerUseCase{resellerRepo: resellerRepo, guard: guard, logger: logger}
}

func (uc *UpdateResellerUseCase) Execute(ctx context.Context, cmd UpdateResellerCommand) (*dto.ResellerResponse, error) {
	if err := uc.guard.Reseller(cmd.Principal, cmd.ResellerID, access.ResourceReseller, access.ActionUpdate); err != nil {
		return nil, err
	}

	r, err := uc.resellerRepo.GetByID(ctx, cmd.ResellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reseller: %w", err)
	}
	if r == nil {
		return nil, apperrors.NewNotFoundError("reseller not found")
	}

	if err := r.Update(reseller.ResellerUpdate{
		Name:           cmd.Name,
		Description:    cmd.Description,
		IsActive:       cmd.IsActive,
		CommissionRate: cmd.CommissionRate,
	}); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.resellerRepo.Update(ctx, r); err != nil {
		uc.logger.Errorw("failed to update reseller", "error", err, "reseller_id", r.ID())
		return nil, fmt.Errorf("failed to update reseller: %w", err)
	}

	uc.logger.Infow("reseller updated", "reseller_id", r.ID(), "is_active", r.IsActive())
	return dto.ToResellerResponse(r), nil
}
