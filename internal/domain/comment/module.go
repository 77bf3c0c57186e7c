package comment

import (
	"blogcore/internal/domain/comment/handler"
	"blogcore/internal/domain/comment/repository"
	"blogcore/internal/domain/comment/service"
	engagementRepository "blogcore/internal/domain/engagement/repository"
	"blogcore/internal/pkg/middleware"
	"blogcore/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// CommentModule owns moderated comments and the comment counter.
type CommentModule struct{}

func init() {
	registry.Register(&CommentModule{})
}

func (m *CommentModule) Name() string {
	return "comment"
}

func (m *CommentModule) Priority() int {
	return 25
}

func (m *CommentModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewCommentRepository(ctx.DB)

	svc := service.NewCommentService(repo, engagementRepository.NewEngagementRepository(ctx.DB), ctx.Mirror)
	h := handler.NewCommentHandler(svc)

	setupRoutes(ctx.Router, h)
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.CommentHandler) {
	content := r.Group("/content/:id/comments")
	{
		content.GET("", h.List)
		content.POST("", middleware.AuthMiddleware(), h.Add)
	}

	comments := r.Group("/comments")
	comments.Use(middleware.AuthMiddleware())
	{
		comments.DELETE("/:id", h.Delete)

		admin := comments.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("/:id/approve", h.Approve)
			admin.POST("/:id/reject", h.Reject)
		}
	}
}
