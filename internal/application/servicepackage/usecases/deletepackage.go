package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/application/authorization"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/domain/servicepackage"
	"github.com/orris-inc/tenantdesk/internal/domain/subscription"
	"github.com/orris-inc/tenantdesk/internal/shared/db"
	apperrors "github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type DeletePackageCommand struct {
	Principal *access.Principal
	PackageID uint
}

// DeletePackageUseCase removes a package nobody has subscribed to. Packages
// with subscriptions can only be deactivated.
type DeletePackageUseCase struct {
	packageRepo      servicepackage.Repository
	subscriptionRepo subscription.Repository
	txManager        db.Transactor
	guard            *authorization.Guard
	logger           logger.Interface
}

func NewDeletePackageUseCase(
	packageRepo servicepackage.Repository,
	subscriptionRepo subscription.Repository,
	txManager db.Transactor,
	guard *authorization.Guard,
	logger logger.Interface,
) *DeletePackageUseCase {
	return &DeletePackageUseCase{
		packageRepo:      packageRepo,
		subscriptionRepo: subscriptionRepo,
		txManager:        txManager,
		guard:            guard,
		logger:           logger,
	}
}

func (uc *DeletePackageUseCase) Execute(ctx context.Context, cmd DeletePackageCommand) error {
	if err := uc.guard.Global(cmd.Principal, access.ResourceServicePackage, access.ActionDelete); err != nil {
		return err
	}

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		pkg, err := uc.packageRepo.GetByID(txCtx, cmd.PackageID)
		if err != nil {
			return fmt.Errorf("failed to get service package: %w", err)
		}
		if pkg == nil {
			return apperrors.NewNotFoundError("service package not found")
		}

		n, err := uc.subscriptionRepo.CountByPackage(txCtx, pkg.ID())
		if err != nil {
			return fmt.Errorf("failed to count subscriptions: %w", err)
		}
		if n > 0 {
			return apperrors.NewBadRequestError("service package has subscriptions, deactivate it instead")
		}
		return uc.packageRepo.Delete(txCtx, pkg.ID())
	})
	if err != nil {
		if apperrors.GetAppError(err) == nil {
			uc.logger.Errorw("failed to delete service package", "error", err, "package_id", cmd.PackageID)
		}
		return err
	}

	uc.logger.Infow("service package deleted", "package_id", cmd.PackageID)
	return nil
}
