package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/application/authorization"
	"github.com/orris-inc/tenantdesk/internal/application/servicepackage/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/domain/servicepackage"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type GetPackageQuery struct {
	Principal *access.Principal
	PackageID uint
}

type GetPackageUseCase struct {
	packageRepo servicepackage.Repository
	guard       *authorization.Guard
	presenter
}

func NewGetPackageUseCase(packageRepo servicepackage.Repository, renderer DescriptionRenderer, guard *authorization.Guard, logger logger.Interface) *GetPackageUseCase {
	return &GetPackageUseCase{packageRepo: packageRepo, guard: guard, presenter: presenter{renderer, logger}}
}

// Execute hides inactive packages from everyone but root admins.
func (uc *GetPackageUseCase) Execute(ctx context.Context, query GetPackageQuery) (*dto.PackageResponse, error) {
	if err := uc.guard.Global(query.Principal, access.ResourceServicePackage, access.ActionRead); err != nil {
		return nil, err
	}

	pkg, err := uc.packageRepo.GetByID(ctx, query.PackageID)
	if err != nil {
		uc.logger.Errorw("failed to get service package", "error", err, "package_id", query.PackageID)
		return nil, fmt.Errorf("failed to get service package: %w", err)
	}
	if pkg == nil || (!pkg.IsActive() && !query.Principal.IsRoot()) {
		return nil, apperrors.NewNotFoundError("service package not found")
	}
	return uc.present(pkg), nil
}
