package handler

import (
	"net/http"

	"blogcore/internal/domain/post/service"
	"blogcore/pkg/response"
	"blogcore/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	service service.PostService
}

func NewPostHandler(s service.PostService) *PostHandler {
	return &PostHandler{service: s}
}

// ImportInput is the bulk-load request body.
type ImportInput struct {
	Items []service.ImportItem `json:"items" binding:"required,min=1"`
}

// GetPosts lists published posts.
// @Summary List published posts
// @Tags Post
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response{data=utils.PageResult}
// @Router /posts [get]
func (h *PostHandler) GetPosts(c *gin.Context) {
	var p utils.Pagination
	c.ShouldBindQuery(&p)

	posts, total, err := h.service.GetPublished(p.Page, p.Limit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, utils.PageResult{
		List:  posts,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	})
}

// GetBySlug fetches one post through the slug cache.
// @Summary Get a post by slug
// @Tags Post
// @Param slug path string true "Slug"
// @Success 200 {object} response.Response{data=model.Post}
// @Router /posts/{slug} [get]
func (h *PostHandler) GetBySlug(c *gin.Context) {
	post, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, post)
}

// RegenerateSummary recomputes the AI summary for a post. At most one
// regeneration per post runs at a time; a concurrent caller gets 429.
// @Summary Regenerate AI summary
// @Tags Post
// @Param id path string true "Post ID"
// @Success 200 {object} response.Response{data=model.Post}
// @Router /posts/{id}/summary/regenerate [post]
func (h *PostHandler) RegenerateSummary(c *gin.Context) {
	post, err := h.service.RegenerateSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, post)
}

// BulkImport loads posts wholesale with suffix-disambiguated slugs.
// @Summary Bulk import posts
// @Tags Post
// @Accept json
// @Param input body ImportInput true "Items"
// @Success 200 {object} response.Response{data=service.ImportResult}
// @Router /posts/import [post]
func (h *PostHandler) BulkImport(c *gin.Context) {
	var input ImportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	result, err := h.service.BulkImport(c.Request.Context(), c.GetString("userID"), input.Items)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, result)
}

// RecountEngagement repairs the denormalized post counters.
// @Summary Recount engagement mirrors
// @Tags Post
// @Success 200 {object} response.Response
// @Router /posts/recount [post]
func (h *PostHandler) RecountEngagement(c *gin.Context) {
	n, err := h.service.RecountEngagement(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"updated": n})
}
