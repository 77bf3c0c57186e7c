package handler

import (
	"net/http"

	"blogcore/internal/domain/comment/service"
	"blogcore/internal/pkg/middleware"
	"blogcore/pkg/response"
	"blogcore/pkg/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	service service.CommentService
}

func NewCommentHandler(s service.CommentService) *CommentHandler {
	return &CommentHandler{service: s}
}

// AddInput is the new-comment request body.
type AddInput struct {
	Text            string  `json:"text" binding:"required"`
	ParentCommentID *string `json:"parentCommentId"`
}

// Add posts a comment on a piece of content. The comment starts
// unapproved and will not appear in listings until moderated.
// @Summary Add a comment
// @Tags Comment
// @Accept json
// @Param id path string true "Content ID"
// @Param input body AddInput true "Comment"
// @Success 200 {object} response.Response{data=model.Comment}
// @Router /content/{id}/comments [post]
func (h *CommentHandler) Add(c *gin.Context) {
	var input AddInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	comment, err := h.service.AddComment(c.Param("id"), c.GetString("userID"), input.Text, input.ParentCommentID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, comment)
}

// List returns the approved comments for a piece of content.
// @Summary List comments
// @Tags Comment
// @Param id path string true "Content ID"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response{data=utils.PageResult}
// @Router /content/{id}/comments [get]
func (h *CommentHandler) List(c *gin.Context) {
	var p utils.Pagination
	c.ShouldBindQuery(&p)

	comments, total, err := h.service.GetByContent(c.Param("id"), p.Page, p.Limit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, utils.PageResult{
		List:  comments,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	})
}

// Delete removes a comment. Author or admin only.
// @Summary Delete a comment
// @Tags Comment
// @Param id path string true "Comment ID"
// @Success 200 {object} response.Response
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	actorID, isAdmin := middleware.ActorFromContext(c)

	if err := h.service.DeleteComment(c.Param("id"), actorID, isAdmin); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}

// Approve makes a comment visible.
// @Summary Approve a comment
// @Tags Comment
// @Param id path string true "Comment ID"
// @Success 200 {object} response.Response
// @Router /comments/{id}/approve [post]
func (h *CommentHandler) Approve(c *gin.Context) {
	if err := h.service.Approve(c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}

// Reject hides a comment without deleting it.
// @Summary Reject a comment
// @Tags Comment
// @Param id path string true "Comment ID"
// @Success 200 {object} response.Response
// @Router /comments/{id}/reject [post]
func (h *CommentHandler) Reject(c *gin.Context) {
	if err := h.service.Reject(c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}
