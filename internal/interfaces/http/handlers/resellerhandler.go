package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	deptdto "github.com/orris-inc/tenantdesk/internal/application/department/dto"
	"github.com/orris-inc/tenantdesk/internal/application/reseller/dto"
	"github.com/orris-inc/tenantdesk/internal/application/reseller/usecases"
	userdto "github.com/orris-inc/tenantdesk/internal/application/user/dto"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
	"github.com/orris-inc/tenantdesk/internal/shared/utils"
)

type createResellerUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateResellerCommand) (*dto.ResellerResponse, error)
}

type getResellerUseCase interface {
	Execute(ctx context.Context, query usecases.GetResellerQuery) (*dto.ResellerDetailResponse, error)
}

type listResellersUseCase interface {
	Execute(ctx context.Context, query usecases.ListResellersQuery) (*usecases.ListResellersResult, error)
}

type updateResellerUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateResellerCommand) (*dto.ResellerResponse, error)
}

type addResellerAdminUseCase interface {
	Execute(ctx context.Context, cmd usecases.AddResellerAdminCommand) (*usecases.AddResellerAdminResult, error)
}

type removeResellerAdminUseCase interface {
	Execute(ctx context.Context, cmd usecases.RemoveResellerAdminCommand) error
}

type addResellerCustomerUseCase interface {
	Execute(ctx context.Context, cmd usecases.AddResellerCustomerCommand) (*usecases.AddResellerCustomerResult, error)
}

type listResellerCustomersUseCase interface {
	Execute(ctx context.Context, query usecases.ListResellerCustomersQuery) ([]*dto.CustomerResponse, error)
}

type removeResellerCustomerUseCase interface {
	Execute(ctx context.Context, cmd usecases.RemoveResellerCustomerCommand) error
}

type ResellerHandler struct {
	createUC         createResellerUseCase
	getUC            getResellerUseCase
	listUC           listResellersUseCase
	updateUC         updateResellerUseCase
	addAdminUC       addResellerAdminUseCase
	removeAdminUC    removeResellerAdminUseCase
	addCustomerUC    addResellerCustomerUseCase
	listCustomersUC  listResellerCustomersUseCase
	removeCustomerUC removeResellerCustomerUseCase
	logger           logger.Interface
}

func NewResellerHandler(
	createUC createResellerUseCase,
	getUC getResellerUseCase,
	listUC listResellersUseCase,
	updateUC updateResellerUseCase,
	addAdminUC addResellerAdminUseCase,
	removeAdminUC removeResellerAdminUseCase,
	addCustomerUC addResellerCustomerUseCase,
	listCustomersUC listResellerCustomersUseCase,
	removeCustomerUC removeResellerCustomerUseCase,
	logger logger.Interface,
) *ResellerHandler {
	return &ResellerHandler{
		createUC:         createUC,
		getUC:            getUC,
		listUC:           listUC,
		updateUC:         updateUC,
		addAdminUC:       addAdminUC,
		removeAdminUC:    removeAdminUC,
		addCustomerUC:    addCustomerUC,
		listCustomersUC:  listCustomersUC,
		removeCustomerUC: removeCustomerUC,
		logger:           logger,
	}
}

type resellerAdminResponse struct {
	ResellerID  uint                  `json:"reseller_id"`
	User        *userdto.UserResponse `json:"user"`
	UserCreated bool                  `json:"user_created"`
}

type resellerCustomerResponse struct {
	ResellerID uint                        `json:"reseller_id"`
	Department *deptdto.DepartmentResponse `json:"department"`
	IsActive   bool                        `json:"is_active"`
}

func (h *ResellerHandler) CreateReseller(c *gin.Context) {
	var req dto.CreateResellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create reseller", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateResellerCommand{
		Principal:      principal(c),
		Name:           req.Name,
		Description:    req.Description,
		CommissionRate: req.CommissionRate,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Reseller created successfully")
}

func (h *ResellerHandler) ListResellers(c *gin.Context) {
	page := utils.ParsePagination(c)
	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListResellersQuery{
		Principal: principal(c),
		Page:      page.Page,
		PageSize:  page.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Resellers, result.Total, result.Page, result.PageSize)
}

func (h *ResellerHandler) GetReseller(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "reseller")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetResellerQuery{Principal: principal(c), ResellerID: id})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *ResellerHandler) UpdateReseller(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "reseller")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdateResellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateResellerCommand{
		Principal:      principal(c),
		ResellerID:     id,
		Name:           req.Name,
		Description:    req.Description,
		IsActive:       req.IsActive,
		CommissionRate: req.CommissionRate,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reseller updated successfully", result)
}

func (h *ResellerHandler) AddResellerAdmin(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "reseller")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req userdto.AttachUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.addAdminUC.Execute(c.Request.Context(), usecases.AddResellerAdminCommand{
		Principal:  principal(c),
		ResellerID: id,
		Email:      req.Email,
		FullName:   req.FullName,
		Password:   req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, &resellerAdminResponse{
		ResellerID:  result.ResellerID,
		User:        result.User,
		UserCreated: result.UserCreated,
	}, "Reseller admin added")
}

func (h *ResellerHandler) RemoveResellerAdmin(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "reseller")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	userID, err := utils.ParseUintParam(c, "user_id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.removeAdminUC.Execute(c.Request.Context(), usecases.RemoveResellerAdminCommand{
		Principal:  principal(c),
		ResellerID: id,
		UserID:     userID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reseller admin removed", nil)
}

func (h *ResellerHandler) AddCustomer(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "reseller")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.AddCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.addCustomerUC.Execute(c.Request.Context(), usecases.AddResellerCustomerCommand{
		Principal:   principal(c),
		ResellerID:  id,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, &resellerCustomerResponse{
		ResellerID: result.ResellerID,
		Department: result.Department,
		IsActive:   result.IsActive,
	}, "Customer created successfully")
}

func (h *ResellerHandler) ListCustomers(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "reseller")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listCustomersUC.Execute(c.Request.Context(), usecases.ListResellerCustomersQuery{Principal: principal(c), ResellerID: id})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *ResellerHandler) RemoveCustomer(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "reseller")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	departmentID, err := utils.ParseUintParam(c, "department_id", "department")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.removeCustomerUC.Execute(c.Request.Context(), usecases.RemoveResellerCustomerCommand{
		Principal:    principal(c),
		ResellerID:   id,
		DepartmentID: departmentID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Customer removed", nil)
}
