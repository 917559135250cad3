package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/inkwell/inkwell-backend/internal/common"
	"github.com/inkwell/inkwell-backend/internal/domain"
	"github.com/inkwell/inkwell-backend/internal/middleware"
	"github.com/inkwell/inkwell-backend/internal/repository"
	"github.com/inkwell/inkwell-backend/internal/service"
	"github.com/inkwell/inkwell-backend/pkg/ginutil"
)

// BlogHandler handles HTTP requests for blog posts
type BlogHandler struct {
	service service.BlogService
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(service service.BlogService) *BlogHandler {
	return &BlogHandler{service: service}
}

// CreateBlog godoc
// @Summary      Create a blog post
// @Description  Creates a post owned by the authenticated user; the slug is generated from the title
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  domain.CreateBlogRequest  true  "blog fields"
// @Success      201  {object}  common.APIResponse{data=domain.Blog}
// @Failure      400  {object}  common.APIResponse
// @Failure      401  {object}  common.APIResponse
// @Failure      500  {object}  common.APIResponse
// @Router       /blogs [post]
func (h *BlogHandler) CreateBlog(c *gin.Context) {
	var req domain.CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	authorID := middleware.GetUserID(c)

	data, err := h.service.CreateBlog(&req, authorID)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to create blog", err)
		return
	}

	common.CreatedResponse(c, data)
}

// ListBlogs godoc
// @Summary      List published blog posts
// @Description  Paginated, searchable list of published posts
// @Tags         blogs
// @Produce      json
// @Param        page        query  int     false  "page number"  default(1)
// @Param        limit       query  int     false  "items per page"  default(10)
// @Param        search      query  string  false  "search in title, content and tags"
// @Param        sort_by     query  string  false  "created_at, updated_at or title"
// @Param        sort_order  query  string  false  "asc or desc"
// @Success      200  {object}  common.APIResponse{data=[]domain.Blog}
// @Failure      500  {object}  common.APIResponse
// @Router       /blogs [get]
func (h *BlogHandler) ListBlogs(c *gin.Context) {
	opts := repository.BlogListOptions{
		Page:      ginutil.QueryInt(c, "page", 1),
		Limit:     ginutil.QueryInt(c, "limit", 10),
		Search:    c.Query("search"),
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}

	data, meta, err := h.service.ListBlogs(opts)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch blogs", err)
		return
	}

	common.SuccessResponse(c, data, meta)
}

// ListDrafts godoc
// @Summary      List the caller's drafts
// @Tags         blogs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.APIResponse{data=[]domain.Blog}
// @Router       /blogs/drafts [get]
func (h *BlogHandler) ListDrafts(c *gin.Context) {
	page := ginutil.QueryInt(c, "page", 1)
	limit := ginutil.QueryInt(c, "limit", 10)

	data, meta, err := h.service.ListDrafts(middleware.GetUserID(c), page, limit)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch drafts", err)
		return
	}

	common.SuccessResponse(c, data, meta)
}

// ListMyBlogs godoc
// @Summary      List all of the caller's posts
// @Tags         blogs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.APIResponse{data=[]domain.Blog}
// @Router       /blogs/my-blogs [get]
func (h *BlogHandler) ListMyBlogs(c *gin.Context) {
	page := ginutil.QueryInt(c, "page", 1)
	limit := ginutil.QueryInt(c, "limit", 10)

	data, meta, err := h.service.ListMyBlogs(middleware.GetUserID(c), page, limit)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch blogs", err)
		return
	}

	common.SuccessResponse(c, data, meta)
}

// GetBlog godoc
// @Summary      Get a blog post by slug
// @Tags         blogs
// @Produce      json
// @Param        slug  path  string  true  "post slug"
// @Success      200  {object}  common.APIResponse{data=domain.Blog}
// @Failure      404  {object}  common.APIResponse
// @Router       /blogs/{slug} [get]
func (h *BlogHandler) GetBlog(c *gin.Context) {
	data, err := h.service.GetBlogBySlug(c.Param("slug"))
	if errors.Is(err, common.ErrBlogNotFound) {
		common.ErrorResponse(c, 404, "Blog not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch blog", err)
		return
	}

	common.SuccessResponse(c, data, nil)
}

// UpdateBlog godoc
// @Summary      Update a blog post
// @Description  Snapshots the current state into the revision history, then applies the changes (author only)
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        slug     path  string                    true  "post slug"
// @Param        request  body  domain.UpdateBlogRequest  true  "fields to change"
// @Success      200  {object}  common.APIResponse{data=domain.Blog}
// @Failure      400  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Failure      409  {object}  common.APIResponse
// @Router       /blogs/{slug} [put]
func (h *BlogHandler) UpdateBlog(c *gin.Context) {
	var req domain.UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.service.UpdateBlog(c.Param("slug"), &req, middleware.GetUserID(c))
	if err != nil {
		respondBlogError(c, err, "Failed to update blog")
		return
	}

	common.SuccessResponse(c, data, nil)
}

// TogglePublish godoc
// @Summary      Publish or unpublish a blog post
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        slug     path  string                       true  "post slug"
// @Param        request  body  domain.TogglePublishRequest  true  "publish flag"
// @Success      200  {object}  common.APIResponse{data=domain.Blog}
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /blogs/{slug}/toggle-publish [put]
func (h *BlogHandler) TogglePublish(c *gin.Context) {
	var req domain.TogglePublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.service.TogglePublish(c.Param("slug"), *req.IsPublished, middleware.GetUserID(c))
	if err != nil {
		respondBlogError(c, err, "Failed to update publish status")
		return
	}

	common.SuccessResponse(c, data, nil)
}

// ListVersions godoc
// @Summary      List a post's revision history
// @Description  Returns the stored snapshots, oldest first
// @Tags         blogs
// @Produce      json
// @Param        slug  path  string  true  "post slug"
// @Success      200  {object}  common.APIResponse{data=domain.RevisionList}
// @Failure      404  {object}  common.APIResponse
// @Router       /blogs/{slug}/versions [get]
func (h *BlogHandler) ListVersions(c *gin.Context) {
	data, err := h.service.ListVersions(c.Param("slug"))
	if errors.Is(err, common.ErrBlogNotFound) {
		common.ErrorResponse(c, 404, "Blog not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch versions", err)
		return
	}

	common.SuccessResponse(c, data, nil)
}

// RestoreVersion godoc
// @Summary      Restore a post to a previous revision
// @Description  versionIndex is the snapshot's position in storage order (zero-based, oldest first). Responds with the post's new slug.
// @Tags         blogs
// @Produce      json
// @Security     BearerAuth
// @Param        slug          path  string  true  "post slug"
// @Param        versionIndex  path  int     true  "snapshot index"
// @Success      200  {object}  common.APIResponse{data=string}
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /blogs/{slug}/restore/{versionIndex} [post]
func (h *BlogHandler) RestoreVersion(c *gin.Context) {
	index, err := ginutil.ParamInt(c, "versionIndex")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid version index", err)
		return
	}

	newSlug, err := h.service.RestoreVersion(c.Param("slug"), index, middleware.GetUserID(c))
	if errors.Is(err, common.ErrVersionNotFound) {
		common.ErrorResponse(c, 404, "Version not found", err)
		return
	}
	if err != nil {
		respondBlogError(c, err, "Failed to restore version")
		return
	}

	common.SuccessResponse(c, gin.H{"slug": newSlug}, nil)
}

// DeleteBlog godoc
// @Summary      Soft-delete a blog post
// @Tags         blogs
// @Produce      json
// @Security     BearerAuth
// @Param        slug  path  string  true  "post slug"
// @Success      200  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /blogs/{slug} [delete]
func (h *BlogHandler) DeleteBlog(c *gin.Context) {
	if err := h.service.DeleteBlog(c.Param("slug"), middleware.GetUserID(c)); err != nil {
		respondBlogError(c, err, "Failed to delete blog")
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}

// React godoc
// @Summary      Set the caller's emoji reaction on a post
// @Description  A user holds at most one reaction per post; sending an empty emoji clears it
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        slug     path  string                  true  "post slug"
// @Param        request  body  domain.ReactionRequest  true  "emoji"
// @Success      200  {object}  common.APIResponse{data=domain.ReactionMap}
// @Failure      404  {object}  common.APIResponse
// @Router       /blogs/{slug}/reaction [post]
func (h *BlogHandler) React(c *gin.Context) {
	var req domain.ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.service.React(c.Param("slug"), middleware.GetUserID(c), req.Emoji)
	if err != nil {
		respondBlogError(c, err, "Failed to set reaction")
		return
	}

	common.SuccessResponse(c, data, nil)
}

// respondBlogError maps the blog error taxonomy onto HTTP statuses
func respondBlogError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, common.ErrBlogNotFound):
		common.ErrorResponse(c, 404, "Blog not found", err)
	case errors.Is(err, common.ErrForbidden):
		common.ErrorResponse(c, 403, "Not the author of this blog", err)
	case errors.Is(err, common.ErrSlugConflict), errors.Is(err, common.ErrWriteConflict):
		common.ErrorResponse(c, 409, "Conflicting update, please retry", err)
	case errors.Is(err, common.ErrInvalidInput):
		common.ErrorResponse(c, 400, "Invalid input", err)
	default:
		common.ErrorResponse(c, 500, fallback, err)
	}
}
