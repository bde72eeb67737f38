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

type CreateResellerCommand struct {
	Principal      *access.Principal
	Name           string
	Description    string
	CommissionRate shared.Hundredths
}

type CreateResellerUseCase struct {
	resellerRepo reseller.Repository
	guard        *authorization.Guard
	logger       logger.Interface
}

func NewCreateResellerUseCase(resellerRepo reseller.Repository, guard *authorization.Guard, logger logger.Interface) *CreateResellerUseCase {
	return &CreateResellerUseCase{resellerRepo: resellerRepo, guard: guard, logger: logger}
}

func (uc *CreateResellerUseCase) Execute(ctx context.Context, cmd CreateResellerCommand) (*dto.ResellerResponse, error) {
	if err := uc.guard.Global(cmd.Principal, access.ResourceReseller, access.ActionCreate); err != nil {
		return nil, err
	}

	r, err := reseller.NewReseller(cmd.Name, cmd.Description, cmd.CommissionRate)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.resellerRepo.Create(ctx, r); err != nil {
		uc.logger.Errorw("failed to create reseller", "error", err)
		return nil, fmt.Errorf("failed to create reseller: %w", err)
	}

	uc.logger.Infow("reseller created", "reseller_id", r.ID(), "commission_rate", r.CommissionRate().String())
	return dto.ToResellerResponse(r), nil
}
