package post

import (
	"blogcore/internal/domain/post/handler"
	"blogcore/internal/domain/post/repository"
	"blogcore/internal/domain/post/service"
	"blogcore/internal/pkg/lock"
	"blogcore/internal/pkg/middleware"
	"blogcore/internal/pkg/registry"
	"blogcore/internal/pkg/summarizer"
	"blogcore/pkg/cache"

	"github.com/gin-gonic/gin"
)

// PostModule owns canonical posts and summary regeneration.
type PostModule struct{}

func init() {
	registry.Register(&PostModule{})
}

func (m *PostModule) Name() string {
	return "post"
}

func (m *PostModule) Priority() int {
	return 10
}

func (m *PostModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewPostRepository(ctx.DB)
	svc := service.NewPostService(
		repo,
		cache.NewRedisCache(ctx.Redis),
		lock.NewRedisLocker(ctx.Redis),
		summarizer.NewHTTPSummarizer(),
	)
	h := handler.NewPostHandler(svc)

	setupRoutes(ctx.Router, h)
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.PostHandler) {
	g := r.Group("/posts")

	g.GET("", h.GetPosts)
	g.GET("/:slug", h.GetBySlug)

	admin := g.Group("")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("/:id/summary/regenerate", h.RegenerateSummary)
		admin.POST("/import", h.BulkImport)
		admin.POST("/recount", h.RecountEngagement)
	}
}
