package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tenantdesk/internal/application/subscription/dto"
	"github.com/orris-inc/tenantdesk/internal/application/subscription/usecases"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
	"github.com/orris-inc/tenantdesk/internal/shared/utils"
)

type SubscriptionHandler struct {
	createUC   createSubscriptionUseCase
	getUC      getSubscriptionUseCase
	listUC     listSubscriptionsUseCase
	cancelUC   cancelSubscriptionUseCase
	grantUC    grantAccessUseCase
	revokeUC   revokeAccessUseCase
	accessUC   listAccessUseCase
	myAccessUC myAccessUseCase
	logger     logger.Interface
}

func NewSubscriptionHandler(
	createUC createSubscriptionUseCase,
	getUC getSubscriptionUseCase,
	listUC listSubscriptionsUseCase,
	cancelUC cancelSubscriptionUseCase,
	grantUC grantAccessUseCase,
	revokeUC revokeAccessUseCase,
	accessUC listAccessUseCase,
	myAccessUC myAccessUseCase,
	logger logger.Interface,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		createUC:   createUC,
		getUC:      getUC,
		listUC:     listUC,
		cancelUC:   cancelUC,
		grantUC:    grantUC,
		revokeUC:   revokeUC,
		accessUC:   accessUC,
		myAccessUC: myAccessUC,
		logger:     logger,
	}
}

// CreateSubscription subscribes a department. The purchase path follows
// from the caller's role on the department.
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	h.create(c, nil)
}

// CreateResellerSubscription subscribes a customer department through the
// reseller in the path.
func (h *SubscriptionHandler) CreateResellerSubscription(c *gin.Context) {
	resellerID, err := utils.ParseUintParam(c, "id", "reseller")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	h.create(c, &resellerID)
}

func (h *SubscriptionHandler) create(c *gin.Context, resellerID *uint) {
	var req dto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create subscription", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateSubscriptionCommand{
		Principal:     principal(c),
		DepartmentID:  req.DepartmentID,
		PackageID:     req.ServicePackageID,
		ResellerID:    resellerID,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Subscription created successfully")
}

func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	var req dto.ListSubscriptionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}
	page := utils.NormalizePagination(req.Page, req.PageSize)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListSubscriptionsQuery{
		Principal:    principal(c),
		DepartmentID: req.DepartmentID,
		Status:       req.Status,
		Page:         page.Page,
		PageSize:     page.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Subscriptions, result.Total, result.Page, result.PageSize)
}

func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetSubscriptionQuery{Principal: principal(c), SubscriptionID: id})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.cancelUC.Execute(c.Request.Context(), usecases.CancelSubscriptionCommand{Principal: principal(c), SubscriptionID: id})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription cancelled", result)
}

func (h *SubscriptionHandler) GrantAccess(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.GrantAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.grantUC.Execute(c.Request.Context(), usecases.GrantAccessCommand{
		Principal:      principal(c),
		SubscriptionID: id,
		UserID:         req.UserID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Access granted")
}

func (h *SubscriptionHandler) RevokeAccess(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	userID, err := utils.ParseUintParam(c, "user_id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.revokeUC.Execute(c.Request.Context(), usecases.RevokeAccessCommand{
		Principal:      principal(c),
		SubscriptionID: id,
		UserID:         userID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Access revoked", nil)
}

func (h *SubscriptionHandler) ListAccess(c *gin.Context) {
	id, err := utils.ParseUintParam(c, "id", "subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.accessUC.Execute(c.Request.Context(), usecases.ListAccessQuery{Principal: principal(c), SubscriptionID: id})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *SubscriptionHandler) MyAccess(c *gin.Context) {
	result, err := h.myAccessUC.Execute(c.Request.Context(), usecases.MyAccessQuery{Principal: principal(c)})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
