package handler

import (
	"net/http"

	"blogcore/internal/domain/engagement/service"
	"blogcore/pkg/response"

	"github.com/gin-gonic/gin"
)

type EngagementHandler struct {
	service service.EngagementService
}

func NewEngagementHandler(s service.EngagementService) *EngagementHandler {
	return &EngagementHandler{service: s}
}

// RecordView counts one view for a piece of content.
// @Summary Record a content view
// @Tags Engagement
// @Produce json
// @Param id path string true "Content ID"
// @Success 200 {object} response.Response
// @Router /content/{id}/view [post]
func (h *EngagementHandler) RecordView(c *gin.Context) {
	contentID := c.Param("id")
	count, err := h.service.RecordView(contentID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"viewCount": count})
}

// ToggleLike flips the caller's like on a piece of content.
// @Summary Toggle like
// @Tags Engagement
// @Produce json
// @Param id path string true "Content ID"
// @Success 200 {object} response.Response
// @Router /content/{id}/like [post]
func (h *EngagementHandler) ToggleLike(c *gin.Context) {
	contentID := c.Param("id")
	userID := c.GetString("userID")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, response.ErrTokenInvalid, "Unauthorized")
		return
	}

	liked, likes, err := h.service.ToggleLike(contentID, userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"liked": liked, "likesCount": likes})
}

// GetEngagement returns the counter projection for a piece of content.
// @Summary Get engagement counters
// @Tags Engagement
// @Produce json
// @Param id path string true "Content ID"
// @Success 200 {object} response.Response{data=model.Engagement}
// @Router /content/{id}/engagement [get]
func (h *EngagementHandler) GetEngagement(c *gin.Context) {
	contentID := c.Param("id")
	viewerID := c.GetString("userID")

	engagement, err := h.service.GetEngagement(contentID, viewerID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, engagement)
}
