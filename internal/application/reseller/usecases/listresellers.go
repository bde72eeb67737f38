package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/tenantdesk/internal/application/authorization"
	"github.com/orris-inc/tenantdesk/internal/application/reseller/dto"
	"github.com/orris-inc/tenantdesk/internal/domain/access"
	"github.com/orris-inc/tenantdesk/internal/domain/reseller"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
	"github.com/orris-inc/tenantdesk/internal/shared/utils"
)

type ListResellersQuery struct {
	Principal *access.Principal
	Page      int
	PageSize  int
}

type ListResellersResult struct {
	Resellers []*dto.ResellerResponse
	Total     int64
	Page      int
	PageSize  int
}

type ListResellersUseCase struct {
	resellerRepo reseller.Repository
	guard        *authorization.Guard
	logger       logger.Interface
}

func NewListResellersUseCase(resellerRepo reseller.Repository, guard *authorization.Guard, logger logger.Interface) *ListResellersUseCase {
	return &ListResellersUseCase{resellerRepo: resellerRepo, guard: guard, logger: logger}
}

func (uc *ListResellersUseCase) Execute(ctx context.Context, query ListResellersQuery) (*ListResellersResult, error) {
	scope, err := uc.guard.Scope(query.Principal, access.ResourceReseller)
	if err != nil {
		return nil, err
	}

	page := utils.NormalizePagination(query.Page, query.PageSize)
	list, total, err := uc.resellerRepo.List(ctx, authorization.ResellerFilter(scope, page.Page, page.PageSize))
	if err != nil {
		uc.logger.Errorw("failed to list resellers", "error", err)
		return nil, fmt.Errorf("failed to list resellers: %w", err)
	}

	return &ListResellersResult{
		Resellers: dto.ToResellerResponses(list),
		Total:     total,
		Page:      page.Page,
		PageSize:  page.PageSize,
	}, nil
}
