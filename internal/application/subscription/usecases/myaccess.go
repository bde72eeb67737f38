package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/application/authorization"
	"github.com/orris-inc/tenantdesk/internal/application/subscription/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/domain/servicepackage"
	"github.com/orris-inc/tenantdesk/internal/domain/subscription"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
)

type MyAccessQuery struct {
	Principal *access.Principal
}

// MyAccessUseCase lists the grants held by the caller.
type MyAccessUseCase struct {
	accessRepo  subscription.AccessRepository
	packageRepo servicepackage.Repository
	guard       *authorization.Guard
	logger      logger.Interface
}

func NewMyAccessUseCase(accessRepo subscription.AccessRepository, packageRepo servicepackage.Repository, guard *authorization.Guard, logger logger.Interface) *MyAccessUseCase {
	return &MyAccessUseCase{accessRepo: accessRepo, packageRepo: packageRepo, guard: guard, logger: logger}
}

func (uc *MyAccessUseCase) Execute(ctx context.Context, query MyAccessQuery) ([]*dto.MyAccessResponse, error) {
	if err := uc.guard.Global(query.Principal, access.ResourceOwnAccess, access.ActionRead); err != nil {
		return nil, err
	}

	grants, err := uc.accessRepo.ListByUser(ctx, query.Principal.UserID())
	if err != nil {
		uc.logger.Errorw("failed to list own service access", "error", err, "user_id", query.Principal.UserID())
		return nil, fmt.Errorf("failed to list service access: %w", err)
	}

	ids := make([]uint, 0, len(grants))
	for _, g := range grants {
		ids = append(ids, g.PackageID)
	}
	packages, err := uc.packageRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load service packages: %w", err)
	}
	return dto.ToMyAccessResponses(grants, packages), nil
}
