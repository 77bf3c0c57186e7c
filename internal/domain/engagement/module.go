package engagement

import (
	"blogcore/internal/domain/engagement/handler"
	"blogcore/internal/domain/engagement/repository"
	"blogcore/internal/domain/engagement/service"
	"blogcore/internal/pkg/middleware"
	"blogcore/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// EngagementModule owns the view/like counters.
type EngagementModule struct{}

func init() {
	registry.Register(&EngagementModule{})
}

func (m *EngagementModule) Name() string {
	return "engagement"
}

func (m *EngagementModule) Priority() int {
	return 20
}

func (m *EngagementModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewEngagementRepository(ctx.DB)

	svc := service.NewEngagementService(repo, ctx.Mirror)
	h := handler.NewEngagementHandler(svc)

	setupRoutes(ctx.Router, h)
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.EngagementHandler) {
	g := r.Group("/content")

	// Views are anonymous traffic counters; reads personalize when a
	// token happens to be present.
	g.POST("/:id/view", h.RecordView)
	g.GET("/:id/engagement", middleware.OptionalAuthMiddleware(), h.GetEngagement)

	auth := g.Group("")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.POST("/:id/like", h.ToggleLike)
	}
}
