package service

import (
	"blogcore/internal/domain/engagement/model"
	"blogcore/internal/domain/engagement/repository"
	"blogcore/internal/pkg/middleware"
	"blogcore/internal/pkg/worker"
	"blogcore/pkg/apperrors"
)

// EngagementService is the ledger's contract. All mutations tolerate
// content IDs that never resolve to real content.
type EngagementService interface {
	RecordView(contentID string) (int64, error)
	ToggleLike(contentID, userID string) (liked bool, likes int64, err error)
	GetEngagement(contentID, viewerID string) (*model.Engagement, error)
}

type engagementService struct {
	repo repository.EngagementRepository
	pool *worker.MirrorPool
}

// NewEngagementService wires the ledger over its repository; pool may be
// nil when mirror write-behind is not wanted (tests, tooling).
func NewEngagementService(repo repository.EngagementRepository, pool *worker.MirrorPool) EngagementService {
	return &engagementService{repo: repo, pool: pool}
}

// RecordView counts one view, creating the record lazily.
func (s *engagementService) RecordView(contentID string) (int64, error) {
	count, err := s.repo.RecordView(contentID)
	if err != nil {
		return 0, apperrors.Infrastructure(err)
	}
	middleware.EngagementEvents.WithLabelValues("view").Inc()
	return count, nil
}

// ToggleLike flips the caller's membership in the likers set and mirrors
// the resulting count onto the post row, best-effort.
func (s *engagementService) ToggleLike(contentID, userID string) (bool, int64, error) {
	liked, likes, err := s.repo.ToggleLike(contentID, userID)
	if err != nil {
		return false, 0, apperrors.Infrastructure(err)
	}

	if liked {
		middleware.EngagementEvents.WithLabelValues("like").Inc()
	} else {
		middleware.EngagementEvents.WithLabelValues("unlike").Inc()
	}

	if s.pool != nil {
		s.pool.AddTask(worker.MirrorTask{
			ContentID: contentID,
			Field:     "likes_count",
			Value:     likes,
		})
	}

	return liked, likes, nil
}

// GetEngagement returns the counter projection. Unknown content reads as
// all zeroes; likedByUser is computed only when a viewer is supplied.
func (s *engagementService) GetEngagement(contentID, viewerID string) (*model.Engagement, error) {
	record, err := s.repo.GetByContentID(contentID)
	if err != nil {
		if repository.IsNotFound(err) {
			out := &model.Engagement{ContentID: contentID}
			if viewerID != "" {
				liked := false
				out.LikedByUser = &liked
			}
			return out, nil
		}
		return nil, apperrors.Infrastructure(err)
	}

	out := &model.Engagement{
		ContentID:    contentID,
		ViewCount:    record.ViewCount,
		LikesCount:   int64(len(record.Likers)),
		CommentCount: record.CommentCount,
	}
	if viewerID != "" {
		liked := false
		for _, l := range record.Likers {
			if l == viewerID {
				liked = true
				break
			}
		}
		out.LikedByUser = &liked
	}
	return out, nil
}
