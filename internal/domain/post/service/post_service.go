package service

import (
	"context"
	"fmt"
	"time"

	"blogcore/internal/domain/post/model"
	"blogcore/internal/domain/post/repository"
	"blogcore/internal/pkg/config"
	"blogcore/internal/pkg/lock"
	"blogcore/internal/pkg/summarizer"
	"blogcore/pkg/apperrors"
	"blogcore/pkg/cache"
	"blogcore/pkg/logger"
	"blogcore/pkg/utils"

	"go.uber.org/zap"
)

const slugCacheTTL = 10 * time.Minute

// ImportItem is one entry of a bulk load.
type ImportItem struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Excerpt    string   `json:"excerpt"`
	Tags       []string `json:"tags"`
	Categories []string `json:"categories"`
}

// ImportResult tallies a bulk load.
type ImportResult struct {
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}

// PostService owns canonical post reads and the summary regeneration
// flow.
type PostService interface {
	GetBySlug(ctx context.Context, slug string) (*model.Post, error)
	GetPublished(page, limit int) ([]model.Post, int64, error)
	RegenerateSummary(ctx context.Context, postID string) (*model.Post, error)
	BulkImport(ctx context.Context, authorID string, items []ImportItem) (*ImportResult, error)
	RecountEngagement(ctx context.Context) (int64, error)
}

type postService struct {
	repo   repository.PostRepository
	cache  cache.CacheService
	locker lock.Locker
	summ   summarizer.Summarizer
}

func NewPostService(repo repository.PostRepository, c cache.CacheService, locker lock.Locker, summ summarizer.Summarizer) PostService {
	return &postService{repo: repo, cache: c, locker: locker, summ: summ}
}

func slugCacheKey(slug string) string {
	return "post:slug:" + slug
}

// GetBySlug reads through the slug cache.
func (s *postService) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	var cached model.Post
	if s.cache != nil {
		if err := s.cache.Get(ctx, slugCacheKey(slug), &cached); err == nil {
			return &cached, nil
		}
	}

	post, err := s.repo.GetBySlug(slug)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("%w: post %s", apperrors.ErrNotFound, slug)
		}
		return nil, apperrors.Infrastructure(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, slugCacheKey(slug), post, slugCacheTTL); err != nil && logger.Log != nil {
			logger.Log.Warn("slug cache set failed", zap.String("slug", slug), zap.Error(err))
		}
	}

	return post, nil
}

func (s *postService) GetPublished(page, limit int) ([]model.Post, int64, error) {
	p := utils.Pagination{Page: page, Limit: limit}
	offset, lim := p.GetPageOffset()
	posts, total, err := s.repo.GetPublished(offset, lim)
	if err != nil {
		return nil, 0, apperrors.Infrastructure(err)
	}
	return posts, total, nil
}

// RegenerateSummary recomputes the AI summary for one post, serialized
// per post by the regeneration lock: a concurrent request for the same
// post fails fast with ErrLockContention instead of queueing. Generator
// failures degrade to the local head-of-text fallback; the operation
// never fails solely because the generator is down.
func (s *postService) RegenerateSummary(ctx context.Context, postID string) (*model.Post, error) {
	cfg := config.GlobalConfig.Summary
	ttl := time.Duration(cfg.LockTTLSeconds) * time.Second

	var out *model.Post
	err := s.locker.WithLock(ctx, "summary:regen:"+postID, ttl, func(ctx context.Context) error {
		post, err := s.repo.GetByID(postID)
		if err != nil {
			if repository.IsNotFound(err) {
				return fmt.Errorf("%w: post %s", apperrors.ErrNotFound, postID)
			}
			return apperrors.Infrastructure(err)
		}

		summary, generatedBy := s.summarize(ctx, post.Content)

		if err := s.repo.UpdateSummary(post.ID, summary, generatedBy); err != nil {
			return apperrors.Infrastructure(err)
		}
		post.AISummary = summary

		// Best-effort invalidation; a stale read until TTL is accepted.
		if s.cache != nil {
			if err := s.cache.Delete(ctx, slugCacheKey(post.Slug)); err != nil && logger.Log != nil {
				logger.Log.Warn("slug cache invalidation failed",
					zap.String("slug", post.Slug), zap.Error(err))
			}
		}

		out = post
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *postService) summarize(ctx context.Context, content string) (summary, generatedBy string) {
	cfg := config.GlobalConfig.Summary

	summary, err := s.summ.Summarize(ctx, content)
	if err == nil {
		return summary, s.summ.Name()
	}

	if logger.Log != nil {
		logger.Log.Warn("summary generator failed, using fallback", zap.Error(err))
	}
	return summarizer.Fallback(content, cfg.FallbackChars), "fallback"
}

// BulkImport loads posts wholesale. Unlike the review workflow, slug
// collisions here are disambiguated with a numeric suffix: bulk loads
// favor completeness over rejection. Per-item failures are tallied, not
// fatal.
func (s *postService) BulkImport(ctx context.Context, authorID string, items []ImportItem) (*ImportResult, error) {
	result := &ImportResult{}

	for i, item := range items {
		if err := s.importOne(authorID, item); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("item %d (%q): %v", i, item.Title, err))
			continue
		}
		result.Imported++
	}

	return result, nil
}

func (s *postService) importOne(authorID string, item ImportItem) error {
	if item.Title == "" || item.Content == "" {
		return fmt.Errorf("%w: title and content are required", apperrors.ErrValidation)
	}

	base := utils.Slugify(item.Title)
	if base == "" {
		return fmt.Errorf("%w: title yields an empty slug", apperrors.ErrValidation)
	}

	slug, err := utils.UniqueSlug(base, s.repo.SlugExists)
	if err != nil {
		return apperrors.Infrastructure(err)
	}

	post := &model.Post{
		Title:        item.Title,
		Slug:         slug,
		Content:      item.Content,
		Excerpt:      item.Excerpt,
		AuthorID:     authorID,
		CategoryRefs: item.Categories,
		Tags:         item.Tags,
		Status:       model.StatusPublished,
	}

	if err := s.repo.Create(post); err != nil {
		return apperrors.Infrastructure(err)
	}
	return nil
}

// RecountEngagement repairs mirror drift from the authoritative ledger.
func (s *postService) RecountEngagement(ctx context.Context) (int64, error) {
	n, err := s.repo.RecountMirrors()
	if err != nil {
		return 0, apperrors.Infrastructure(err)
	}
	return n, nil
}
