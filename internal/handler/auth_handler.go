package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/inkwell/inkwell-backend/internal/common"
	"github.com/inkwell/inkwell-backend/internal/domain"
	"github.com/inkwell/inkwell-backend/internal/service"
)

// AuthHandler handles registration, login and token refresh
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register godoc
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body  domain.RegisterRequest  true  "signup fields"
// @Success      201  {object}  common.APIResponse{data=domain.User}
// @Failure      400  {object}  common.APIResponse
// @Failure      409  {object}  common.APIResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	user, err := h.service.Register(&req)
	if errors.Is(err, common.ErrUserAlreadyExists) {
		common.ErrorResponse(c, 409, "User already exists", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to register", err)
		return
	}

	common.CreatedResponse(c, user)
}

// Login godoc
// @Summary      Log in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body  domain.LoginRequest  true  "credentials"
// @Success      200  {object}  common.APIResponse{data=domain.LoginResponse}
// @Failure      401  {object}  common.APIResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	resp, err := h.service.Login(&req)
	if errors.Is(err, common.ErrInvalidCredentials) {
		common.ErrorResponse(c, 401, "Invalid credentials", err)
		return
	}
	if errors.Is(err, common.ErrForbidden) {
		common.ErrorResponse(c, 403, "Account is not active", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to log in", err)
		return
	}

	common.SuccessResponse(c, resp, nil)
}

// Refresh godoc
// @Summary      Rotate the token pair using a refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body  domain.RefreshRequest  true  "refresh token"
// @Success      200  {object}  common.APIResponse{data=domain.LoginResponse}
// @Failure      401  {object}  common.APIResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req domain.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	resp, err := h.service.Refresh(req.RefreshToken)
	if errors.Is(err, common.ErrUnauthorized) {
		common.ErrorResponse(c, 401, "Invalid refresh token", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to refresh token", err)
		return
	}

	common.SuccessResponse(c, resp, nil)
}
