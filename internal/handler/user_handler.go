package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/inkwell/inkwell-backend/internal/common"
	"github.com/inkwell/inkwell-backend/internal/domain"
	"github.com/inkwell/inkwell-backend/internal/middleware"
	"github.com/inkwell/inkwell-backend/internal/service"
)

// UserHandler handles profile endpoints
type UserHandler struct {
	service service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GetProfile godoc
// @Summary      Get the authenticated user's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.APIResponse{data=domain.User}
// @Failure      404  {object}  common.APIResponse
// @Router       /users/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.service.GetProfile(middleware.GetUserID(c))
	if errors.Is(err, common.ErrUserNotFound) {
		common.ErrorResponse(c, 404, "User not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch profile", err)
		return
	}

	common.SuccessResponse(c, user, nil)
}

// UpdateProfile godoc
// @Summary      Update the authenticated user's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  domain.UpdateProfileRequest  true  "fields to change"
// @Success      200  {object}  common.APIResponse{data=domain.User}
// @Failure      400  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /users/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req domain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	user, err := h.service.UpdateProfile(middleware.GetUserID(c), &req)
	if errors.Is(err, common.ErrUserNotFound) {
		common.ErrorResponse(c, 404, "User not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to update profile", err)
		return
	}

	common.SuccessResponse(c, user, nil)
}
