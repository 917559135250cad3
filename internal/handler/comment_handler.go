package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/inkwell/inkwell-backend/internal/common"
	"github.com/inkwell/inkwell-backend/internal/domain"
	"github.com/inkwell/inkwell-backend/internal/middleware"
	"github.com/inkwell/inkwell-backend/internal/service"
)

// CommentHandler handles HTTP requests for comments
type CommentHandler struct {
	service service.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(service service.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// CreateComment godoc
// @Summary      Create a comment
// @Description  Creates a comment on a post; set parent_id to reply to another comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  domain.CreateCommentRequest  true  "comment fields"
// @Success      201  {object}  common.APIResponse{data=domain.Comment}
// @Failure      400  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req domain.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	comment, err := h.service.CreateComment(&req, middleware.GetUserID(c))
	switch {
	case errors.Is(err, common.ErrBlogNotFound):
		common.ErrorResponse(c, 404, "Blog not found", err)
	case errors.Is(err, common.ErrCommentNotFound):
		common.ErrorResponse(c, 404, "Parent comment not found", err)
	case errors.Is(err, common.ErrInvalidInput):
		common.ErrorResponse(c, 400, "Parent comment belongs to another blog", err)
	case err != nil:
		common.ErrorResponse(c, 500, "Failed to create comment", err)
	default:
		common.CreatedResponse(c, comment)
	}
}

// ListComments godoc
// @Summary      List a post's comments as a reply tree
// @Description  Roots are newest first; replies are oldest first within each parent
// @Tags         comments
// @Produce      json
// @Param        blogId  path  string  true  "blog ID"
// @Success      200  {object}  common.APIResponse{data=[]domain.CommentNode}
// @Router       /comments/{blogId} [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	tree, err := h.service.GetCommentTree(c.Param("blogId"))
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch comments", err)
		return
	}

	common.SuccessResponse(c, tree, nil)
}

// DeleteComment godoc
// @Summary      Soft-delete a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "comment ID"
// @Success      200  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	err := h.service.DeleteComment(c.Param("id"), middleware.GetUserID(c))
	switch {
	case errors.Is(err, common.ErrCommentNotFound):
		common.ErrorResponse(c, 404, "Comment not found", err)
	case errors.Is(err, common.ErrForbidden):
		common.ErrorResponse(c, 403, "Not the author of this comment", err)
	case err != nil:
		common.ErrorResponse(c, 500, "Failed to delete comment", err)
	default:
		common.SuccessResponse(c, gin.H{"deleted": true}, nil)
	}
}
