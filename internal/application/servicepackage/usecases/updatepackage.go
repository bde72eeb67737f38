package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/application/authorization"
	"github.com/orris-inc/tenantdesk/internal/application/servicepackage/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/domain/servicepackage"
	"github.com/orris-inc/tenantdesk/internal/domain/shared"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type UpdatePackageCommand struct {
	Principal    *access.Principal
	PackageID    uint
	Name         *string
	Description  *string
	Price        *shared.Hundredths
	BillingCycle *string
	Features     servicepackage.Features
	IsActive     *bool
}

type UpdatePackageUseCase struct {
	packageRepo servicepackage.Repository
	guard       *authorization.Guard
	presenter
}

func NewUpdatePackageUseCase(packageRepo servicepackage.Repository, renderer DescriptionRenderer, guard *authorization.Guard, logger logger.Interface) *UpdatePackageUseCase {
	return &UpdatePackageUseCase{packageRepo: packageRepo, guard: guard, presenter: presenter{renderer, logger}}
}

// Execute applies a partial update. Running subscriptions keep the dates they
// were created with; a new billing cycle only affects later purchases.
func (uc *UpdatePackageUseCase) Execute(ctx context.Context, cmd UpdatePackageCommand) (*dto.PackageResponse, error) {
	if err := uc.guard.Global(cmd.Principal, access.ResourceServicePackage, access.ActionUpdate); err != nil {
		return nil, err
	}

	pkg, err := uc.packageRepo.GetByID(ctx, cmd.PackageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get service package: %w", err)
	}
	if pkg == nil {
		return nil, apperrors.NewNotFoundError("service package not found")
	}

	update := servicepackage.ServicePackageUpdate{
		Name:        cmd.Name,
		Description: cmd.Description,
		Price:       cmd.Price,
		Features:    cmd.Features,
		IsActive:    cmd.IsActive,
	}
	if cmd.BillingCycle != nil {
		cycle, err := servicepackage.ParseBillingCycle(*cmd.BillingCycle)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		update.BillingCycle = &cycle
	}
	if err := pkg.Update(update); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.packageRepo.Update(ctx, pkg); err != nil {
		uc.logger.Errorw("failed to update service package", "error", err, "package_id", pkg.ID())
		return nil, fmt.Errorf("failed to update service package: %w", err)
	}

	uc.logger.Infow("service package updated", "package_id", pkg.ID(), "is_active", pkg.IsActive())
	return uc.present(pkg), nil
}
