package handler

import (
	"net/http"

	"blogcore/internal/domain/submission/service"
	"blogcore/internal/pkg/middleware"
	"blogcore/pkg/response"
	"blogcore/pkg/utils"

	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	service service.SubmissionService
}

func NewSubmissionHandler(s service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: s}
}

// RejectInput carries the mandatory rejection reason.
type RejectInput struct {
	Reason string `json:"reason" binding:"required"`
}

// Submit creates a pending draft.
// @Summary Submit a draft for review
// @Tags Submission
// @Accept json
// @Param input body service.SubmitInput true "Draft"
// @Success 200 {object} response.Response{data=model.Submission}
// @Router /submissions [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var input service.SubmitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	sub, err := h.service.Submit(c.GetString("userID"), input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, sub)
}

// GetMine lists the caller's own drafts.
// @Summary List my submissions
// @Tags Submission
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response{data=utils.PageResult}
// @Router /submissions/mine [get]
func (h *SubmissionHandler) GetMine(c *gin.Context) {
	var p utils.Pagination
	c.ShouldBindQuery(&p)

	subs, total, err := h.service.GetByOwner(c.GetString("userID"), p.Page, p.Limit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, utils.PageResult{
		List:  subs,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	})
}

// GetByID returns one draft to its owner or an admin.
// @Summary Get a submission
// @Tags Submission
// @Param id path string true "Submission ID"
// @Success 200 {object} response.Response{data=model.Submission}
// @Router /submissions/{id} [get]
func (h *SubmissionHandler) GetByID(c *gin.Context) {
	actorID, isAdmin := middleware.ActorFromContext(c)

	sub, err := h.service.GetByID(c.Param("id"), actorID, isAdmin)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, sub)
}

// Update patches a pending draft.
// @Summary Update a pending submission
// @Tags Submission
// @Accept json
// @Param id path string true "Submission ID"
// @Param input body service.UpdateInput true "Patch"
// @Success 200 {object} response.Response{data=model.Submission}
// @Router /submissions/{id} [put]
func (h *SubmissionHandler) Update(c *gin.Context) {
	var patch service.UpdateInput
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	actorID, isAdmin := middleware.ActorFromContext(c)

	sub, err := h.service.Update(c.Param("id"), actorID, isAdmin, patch)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, sub)
}

// Delete removes a pending draft.
// @Summary Delete a pending submission
// @Tags Submission
// @Param id path string true "Submission ID"
// @Success 200 {object} response.Response
// @Router /submissions/{id} [delete]
func (h *SubmissionHandler) Delete(c *gin.Context) {
	actorID, isAdmin := middleware.ActorFromContext(c)

	if err := h.service.Delete(c.Param("id"), actorID, isAdmin); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, nil)
}

// GetPending lists the review queue.
// @Summary List pending submissions
// @Tags Submission
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response{data=utils.PageResult}
// @Router /submissions/pending [get]
func (h *SubmissionHandler) GetPending(c *gin.Context) {
	var p utils.Pagination
	c.ShouldBindQuery(&p)

	subs, total, err := h.service.GetPending(p.Page, p.Limit)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, utils.PageResult{
		List:  subs,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	})
}

// Approve publishes a pending draft as a canonical post.
// @Summary Approve a submission
// @Tags Submission
// @Param id path string true "Submission ID"
// @Success 200 {object} response.Response
// @Router /submissions/{id}/approve [post]
func (h *SubmissionHandler) Approve(c *gin.Context) {
	sub, post, err := h.service.Approve(c.Param("id"), c.GetString("userID"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"submission": sub, "post": post})
}

// Reject finalizes a pending draft with a reason.
// @Summary Reject a submission
// @Tags Submission
// @Accept json
// @Param id path string true "Submission ID"
// @Param input body RejectInput true "Reason"
// @Success 200 {object} response.Response{data=model.Submission}
// @Router /submissions/{id}/reject [post]
func (h *SubmissionHandler) Reject(c *gin.Context) {
	var input RejectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	sub, err := h.service.Reject(c.Param("id"), c.GetString("userID"), input.Reason)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, sub)
}
