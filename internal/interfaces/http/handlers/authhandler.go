package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tenantdesk/internal/application/auth/dto"
	"github.com/orris-inc/tenantdesk/internal/application/auth/usecases"
	"github.com/orris-inc/tenantdesk/internal/shared/errors"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
	"github.com/orris-inc/tenantdesk/internal/shared/utils"
)

type AuthHandler struct {
	registerUC      registerUseCase
	loginUC         loginUseCase
	refreshUC       refreshUseCase
	logoutUC        logoutUseCase
	getProfileUC    getProfileUseCase
	updateProfileUC updateProfileUseCase
	beginOAuthUC    beginOAuthUseCase
	oauthCallbackUC oauthCallbackUseCase
	logger          logger.Interface
}

func NewAuthHandler(
	registerUC registerUseCase,
	loginUC loginUseCase,
	refreshUC refreshUseCase,
	logoutUC logoutUseCase,
	getProfileUC getProfileUseCase,
	updateProfileUC updateProfileUseCase,
	beginOAuthUC beginOAuthUseCase,
	oauthCallbackUC oauthCallbackUseCase,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		registerUC:      registerUC,
		loginUC:         loginUC,
		refreshUC:       refreshUC,
		logoutUC:        logoutUC,
		getProfileUC:    getProfileUC,
		updateProfileUC: updateProfileUC,
		beginOAuthUC:    beginOAuthUC,
		oauthCallbackUC: oauthCallbackUC,
		logger:          logger,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.registerUC.Execute(c.Request.Context(), usecases.RegisterCommand{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Registration successful")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", result)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.refreshUC.Execute(c.Request.Context(), usecases.RefreshCommand{RefreshToken: req.RefreshToken})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	err := h.logoutUC.Execute(c.Request.Context(), usecases.LogoutCommand{
		Principal:    principal(c),
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Logged out", nil)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	result, err := h.getProfileUC.Execute(c.Request.Context(), usecases.GetProfileQuery{Principal: principal(c)})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.updateProfileUC.Execute(c.Request.Context(), usecases.UpdateProfileCommand{
		Principal:  principal(c),
		FullName:   req.FullName,
		MFAEnabled: req.MFAEnabled,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile updated successfully", result)
}

// BeginOAuth returns the provider consent URL. Browsers pass ?redirect=true
// to be sent there directly.
func (h *AuthHandler) BeginOAuth(c *gin.Context) {
	result, err := h.beginOAuthUC.Execute(c.Request.Context(), usecases.BeginOAuthCommand{Provider: c.Param("provider")})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if utils.QueryBool(c, "redirect", false) {
		c.Redirect(http.StatusFound, result.AuthURL)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *AuthHandler) OAuthCallback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		h.logger.Warnw("oauth provider returned error", "provider", c.Param("provider"), "error", errParam)
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authorization was denied by the provider"))
		return
	}

	result, err := h.oauthCallbackUC.Execute(c.Request.Context(), usecases.OAuthCallbackCommand{
		Provider: c.Param("provider"),
		State:    c.Query("state"),
		Code:     c.Query("code"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", result)
}
