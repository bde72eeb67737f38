package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tenantdesk/internal/application/department/dto"
	"github.com/orris-inc/tenantdesk/internal/application/department/usecases"
	userdto "github.com/orris-inc/tenantdesk/internal/application/user/dto"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
	"github.com/orris-inc/tenantdesk/internal/shared/utils"
)

type createDepartmentUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateDepartmentCommand) (*dto.DepartmentResponse, error)
}

type getDepartmentUseCase interface {
	Execute(ctx context.Context, query usecases.GetDepartmentQuery) (*dto.DepartmentDetailResponse, error)
}

type listDepartmentsUseCase interface {
	Execute(ctx context.Context, query usecases.ListDepartmentsQuery) (*usecases.ListDepartmentsResult, error)
}

type updateDepartmentUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateDepartmentCommand) (*dto.DepartmentResponse, error)
}

type listDepartmentUsersUseCase interface {
	Execute(ctx context.Context, query usecases.ListDepartmentUsersQuery) ([]*userdto.UserResponse, error)
}

type attachUserUseCase interface {
	Execute(ctx context.Context, cmd usecases.AttachUserCommand) (*usecases.AttachUserResult, error)
}

type detachUserUseCase interface {
	Execute(ctx context.Context, cmd usecases.DetachUserCommand) error
}

type DepartmentHandler struct {
	createUC      createDepartmentUseCase
	getUC         getDepartmentUseCase
	listUC        listDepartmentsUseCase
	updateUC      updateDepartmentUseCase
	listUsersUC   listDepartmentUsersUseCase
	addAdminUC    attachUserUseCase
	addUserUC     attachUserUseCase
	removeAdminUC detachUserUseCase
	removeUserUC  detachUserUseCase
	logger        logger.Interface
}

func NewDepartmentHandler(
	createUC createDepartmentUseCase,
	getUC getDepartmentUseCase,
	listUC listDepartmentsUseCase,
	updateUC updateDepartmentUseCase,
	listUsersUC listDepartmentUsersUseCase,
	addAdminUC attachUserUseCase,
	addUserUC attachUserUseCase,
	removeAdminUC detachUserUseCase,
	removeUserUC detachUserUseCase,
	logger logger.Interface,
) *DepartmentHandler {
	return &DepartmentHandler{
		createUC:      createUC,
		getUC:         getUC,
		listUC:        listUC,
		updateUC:      updateUC,
		listUsersUC:   listUsersUC,
		addAdminUC:    addAdminUC,
		addUserUC:     addUserUC,
		removeAdminUC: removeAdminUC,
		removeUserUC:  removeUserUC,
		logger:        logger,
	}
}

type membershipResponse struct {
	DepartmentID uint                  `json:"department_id"`
	Role         string                `json:"role"`
	User         *userdto.UserResponse `json:"user"`
	UserCreated  bool                  `json:"user_created"`
}

func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create department", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateDepartmentCommand{
		Principal:   principal(c),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Department created successfully")
}

func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	page := utils.ParsePagination(c)
	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListDepartmentsQuery{
		Principal: principal(c),
		Page:      page.Page,
		PageSize:  page.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Departments, result.Total, result.Page, result.PageSize)
}

func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "department")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetDepartmentQuery{Principal: principal(c), DepartmentID: id})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "department")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update department", "department_id", id, "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateDepartmentCommand{
		Principal:    principal(c),
		DepartmentID: id,
		Name:         req.Name,
		Description:  req.Description,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Department updated successfully", result)
}

func (h *DepartmentHandler) ListDepartmentUsers(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "department")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listUsersUC.Execute(c.Request.Context(), usecases.ListDepartmentUsersQuery{Principal: principal(c), DepartmentID: id})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *DepartmentHandler) AddDepartmentAdmin(c *gin.Context) {
	h.attach(c, h.addAdminUC, "Department admin added")
}

func (h *DepartmentHandler) AddDepartmentUser(c *gin.Context) {
	h.attach(c, h.addUserUC, "Department user added")
}

func (h *DepartmentHandler) RemoveDepartmentAdmin(c *gin.Context) {
	h.detach(c, h.removeAdminUC, "Department admin removed")
}

func (h *DepartmentHandler) RemoveDepartmentUser(c *gin.Context) {
	h.detach(c, h.removeUserUC, "Department user removed")
}

func (h *DepartmentHandler) attach(c *gin.Context, uc attachUserUseCase, message string) {
	id, err := utils.ParseUintParam(c, "id", "department")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req userdto.AttachUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := uc.Execute(c.Request.Context(), usecases.AttachUserCommand{
		Principal:    principal(c),
		DepartmentID: id,
		Email:        req.Email,
		FullName:     req.FullName,
		Password:     req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, &membershipResponse{
		DepartmentID: result.DepartmentID,
		Role:         string(result.Role),
		User:         result.User,
		UserCreated:  result.UserCreated,
	}, message)
}

func (h *DepartmentHandler) detach(c *gin.Context, uc detachUserUseCase, message string) {
	id, err := utils.ParseUintParam(c, "id", "department")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	userID, err := utils.ParseUintParam(c, "user_id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := uc.Execute(c.Request.Context(), usecases.DetachUserCommand{
		Principal:    principal(c),
		DepartmentID: id,
		UserID:       userID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, message, nil)
}
