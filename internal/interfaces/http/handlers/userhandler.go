package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tenantdesk/internal/application/user/dto"
	"github.com/orris-inc/tenantdesk/internal/application/user/usecases"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
	"github.com/orris-inc/tenantdesk/internal/shared/utils"
)

type listUsersUseCase interface {
	Execute(ctx context.Context, query usecases.ListUsersQuery) (*usecases.ListUsersResult, error)
}

type UserHandler struct {
	listUC listUsersUseCase
	logger logger.Interface
}

func NewUserHandler(listUC listUsersUseCase, logger logger.Interface) *UserHandler {
	return &UserHandler{listUC: listUC, logger: logger}
}

// ListUsers returns the users the caller can see, optionally filtered by a
// search term matched against email and name.
func (h *UserHandler) ListUsers(c *gin.Context) {
	var req dto.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}
	page := utils.NormalizePagination(req.Page, req.PageSize)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListUsersQuery{
		Principal: principal(c),
		Search:    req.Search,
		Page:      page.Page,
		PageSize:  page.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Users, result.Total, result.Page, result.PageSize)
}
