package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/application/authorization"
	"github.com/orris-inc/tenantdesk/internal/application/servicepackage/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/domain/servicepackage"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
	"github.com/orris-inc/tenantdesk/internal/shared/utils"
)

type ListPackagesQuery struct {
	Principal *access.Principal
	// ActiveOnly defaults to true. Only root admins can list inactive packages.
	ActiveOnly *bool
	Page       int
	PageSize   int
}

type ListPackagesResult struct {
	Packages []*dto.PackageResponse
	Total    int64
	Page     int
	PageSize int
}

type ListPackagesUseCase struct {
	packageRepo servicepackage.Repository
	guard       *authorization.Guard
	presenter
}

func NewListPackagesUseCase(packageRepo servicepackage.Repository, renderer DescriptionRenderer, guard *authorization.Guard, logger logger.Interface) *ListPackagesUseCase {
	return &ListPackagesUseCase{packageRepo: packageRepo, guard: guard, presenter: presenter{renderer, logger}}
}

func (uc *ListPackagesUseCase) Execute(ctx context.Context, query ListPackagesQuery) (*ListPackagesResult, error) {
	if err := uc.guard.Global(query.Principal, access.ResourceServicePackage, access.ActionRead); err != nil {
		return nil, err
	}

	activeOnly := true
	if query.ActiveOnly != nil && query.Principal.IsRoot() {
		activeOnly = *query.ActiveOnly
	}

	page := utils.NormalizePagination(query.Page, query.PageSize)
	list, total, err := uc.packageRepo.List(ctx, servicepackage.ListFilter{
		ActiveOnly: activeOnly,
		Page:       page.Page,
		PageSize:   page.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list service packages", "error", err)
		return nil, fmt.Errorf("failed to list service packages: %w", err)
	}

	return &ListPackagesResult{
		Packages: uc.presentAll(list),
		Total:    total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}, nil
}
