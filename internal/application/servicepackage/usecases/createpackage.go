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

type CreatePackageCommand struct {
	Principal    *access.Principal
	Name         string
	Description  string
	Price        shared.Hundredths
	BillingCycle string
	Features     servicepackage.Features
}

type CreatePackageUseCase struct {
	packageRepo servicepackage.Repository
	guard       *authorization.Guard
	presenter
}

func NewCreatePackageUseCase(packageRepo servicepackage.Repository, renderer DescriptionRenderer, guard *authorization.Guard, logger logger.Interface) *CreatePackageUseCase {
	return &CreatePackageUseCase{packageRepo: packageRepo, guard: guard, presenter: presenter{renderer, logger}}
}

func (uc *CreatePackageUseCase) Execute(ctx context.Context, cmd CreatePackageCommand) (*dto.PackageResponse, error) {
	if err := uc.guard.Global(cmd.Principal, access.ResourceServicePackage, access.ActionCreate); err != nil {
		return nil, err
	}

	cycle, err := servicepackage.ParseBillingCycle(cmd.BillingCycle)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	pkg, err := servicepackage.NewServicePackage(cmd.Name, cmd.Description, cmd.Price, cycle, cmd.Features)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.packageRepo.Create(ctx, pkg); err != nil {
		uc.logger.Errorw("failed to create service package", "error", err)
		return nil, fmt.Errorf("failed to create service package: %w", err)
	}

	uc.logger.Infow("service package created", "package_id", pkg.ID(), "price", pkg.Price().String(), "billing_cycle", pkg.BillingCycle())
	return uc.present(pkg), nil
}
