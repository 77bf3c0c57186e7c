package submission

import (
	postRepository "blogcore/internal/domain/post/repository"
	"blogcore/internal/domain/submission/handler"
	"blogcore/internal/domain/submission/repository"
	"blogcore/internal/domain/submission/service"
	"blogcore/internal/pkg/middleware"
	"blogcore/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// SubmissionModule owns the draft review workflow.
type SubmissionModule struct{}

func init() {
	registry.Register(&SubmissionModule{})
}

func (m *SubmissionModule) Name() string {
	return "submission"
}

func (m *SubmissionModule) Priority() int {
	return 15
}

func (m *SubmissionModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewSubmissionRepository(ctx.DB)
	svc := service.NewSubmissionService(repo, postRepository.NewPostRepository(ctx.DB))
	h := handler.NewSubmissionHandler(svc)

	setupRoutes(ctx.Router, h)
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.SubmissionHandler) {
	g := r.Group("/submissions")
	g.Use(middleware.AuthMiddleware())
	{
		g.POST("", h.Submit)
		g.GET("/mine", h.GetMine)
		g.GET("/:id", h.GetByID)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}

	admin := g.Group("")
	admin.Use(middleware.AdminMiddleware())
	{
		admin.GET("/pending", h.GetPending)
		admin.POST("/:id/approve", h.Approve)
		admin.POST("/:id/reject", h.Reject)
	}
}
