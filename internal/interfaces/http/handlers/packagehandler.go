package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tenantdesk/internal/application/servicepackage/dto"
	"github.com/orris-inc/tenantdesk/internal/application/servicepackage/usecases"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
	"github.com/orris-inc/tenantdesk/internal/shared/utils"
)

type createPackageUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreatePackageCommand) (*dto.PackageResponse, error)
}

type updatePackageUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdatePackageCommand) (*dto.PackageResponse, error)
}

type deletePackageUseCase interface {
	Execute(ctx context.Context, cmd usecases.DeletePackageCommand) error
}

type getPackageUseCase interface {
	Execute(ctx context.Context, query usecases.GetPackageQuery) (*dto.PackageResponse, error)
}

type listPackagesUseCase interface {
	Execute(ctx context.Context, query usecases.ListPackagesQuery) (*usecases.ListPackagesResult, error)
}

type PackageHandler struct {
	createUC createPackageUseCase
	updateUC updatePackageUseCase
	deleteUC deletePackageUseCase
	getUC    getPackageUseCase
	listUC   listPackagesUseCase
	logger   logger.Interface
}

func NewPackageHandler(
	createUC createPackageUseCase,
	updateUC updatePackageUseCase,
	deleteUC deletePackageUseCase,
	getUC getPackageUseCase,
	listUC listPackagesUseCase,
	logger logger.Interface,
) *PackageHandler {
	return &PackageHandler{
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		getUC:    getUC,
		listUC:   listUC,
		logger:   logger,
	}
}

func (h *PackageHandler) CreatePackage(c *gin.Context) {
	var req dto.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create package", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreatePackageCommand{
		Principal:    principal(c),
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		BillingCycle: req.BillingCycle,
		Features:     req.Features,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Service package created successfully")
}

func (h *PackageHandler) UpdatePackage(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "service package")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update package", "package_id", id, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdatePackageCommand{
		Principal:    principal(c),
		PackageID:    id,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		BillingCycle: req.BillingCycle,
		Features:     req.Features,
		IsActive:     req.IsActive,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Service package updated successfully", result)
}

func (h *PackageHandler) DeletePackage(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "service package")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), usecases.DeletePackageCommand{Principal: principal(c), PackageID: id}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *PackageHandler) GetPackage(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "service package")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetPackageQuery{Principal: principal(c), PackageID: id})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *PackageHandler) ListPackages(c *gin.Context) {
	page := utils.ParsePagination(c)
	query := usecases.ListPackagesQuery{
		Principal: principal(c),
		Page:      page.Page,
		PageSize:  page.PageSize,
	}
	if _, ok := c.GetQuery("active_only"); ok {
		activeOnly := utils.QueryBool(c, "active_only", true)
		query.ActiveOnly = &activeOnly
	}

	result, err := h.listUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Packages, result.Total, result.Page, result.PageSize)
}
