package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"blogcore/internal/domain/comment/model"
	"blogcore/internal/domain/comment/repository"
	engagementRepository "blogcore/internal/domain/engagement/repository"
	"blogcore/internal/pkg/middleware"
	"blogcore/internal/pkg/worker"
	"blogcore/pkg/apperrors"
	"blogcore/pkg/logger"
	"blogcore/pkg/utils"

	"go.uber.org/zap"
)

const maxCommentLen = 2000

// CommentService owns moderated threaded comments and keeps the
// engagement ledger's comment counter reconciled with them.
type CommentService interface {
	AddComment(contentID, authorID, text string, parentID *string) (*model.Comment, error)
	DeleteComment(id, actorID string, isAdmin bool) error
	Approve(id string) error
	Reject(id string) error
	GetByContent(contentID string, page, limit int) ([]model.Comment, int64, error)
}

type commentService struct {
	repo           repository.CommentRepository
	engagementRepo engagementRepository.EngagementRepository
	pool           *worker.MirrorPool
}

// NewCommentService wires comments over their repository plus the
// ledger repository; pool may be nil when mirror write-behind is not
// wanted (tests, tooling).
func NewCommentService(repo repository.CommentRepository, engagementRepo engagementRepository.EngagementRepository, pool *worker.MirrorPool) CommentService {
	return &commentService{repo: repo, engagementRepo: engagementRepo, pool: pool}
}

// AddComment creates an unapproved comment and bumps the ledger's
// comment counter. The counter counts all comments, approved or not,
// so a freshly posted comment raises commentCount while staying
// invisible on the read path until moderated. That asymmetry is
// long-standing behavior; see the moderation-gap test.
func (s *commentService) AddComment(contentID, authorID, text string, parentID *string) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.Validationf("comment text is required")
	}
	if utf8.RuneCountInString(text) > maxCommentLen {
		return nil, apperrors.Validationf("comment text exceeds %d characters", maxCommentLen)
	}

	comment := &model.Comment{
		ContentID:  contentID,
		AuthorID:   authorID,
		Text:       text,
		IsApproved: false,
	}

	if parentID != nil {
		parent, err := s.repo.GetByID(*parentID)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, fmt.Errorf("%w: parent comment %s", apperrors.ErrNotFound, *parentID)
			}
			return nil, apperrors.Infrastructure(err)
		}
		if parent.ContentID != contentID {
			return nil, apperrors.Validationf("parent comment belongs to different content")
		}

		comment.ParentCommentID = parentID
		comment.Level = parent.Level + 1
		if parent.RootCommentID != nil {
			comment.RootCommentID = parent.RootCommentID
		} else {
			comment.RootCommentID = parentID
		}
	}

	if err := s.repo.Create(comment); err != nil {
		return nil, apperrors.Infrastructure(err)
	}

	count, err := s.engagementRepo.IncrementCommentCount(contentID)
	if err != nil {
		// The comment exists; an undercounted ledger is repaired by the
		// recount routine, a user-visible failure here is worse.
		if logger.Log != nil {
			logger.Log.Warn("comment count increment failed",
				zap.String("content_id", contentID), zap.Error(err))
		}
		return comment, nil
	}

	middleware.EngagementEvents.WithLabelValues("comment").Inc()
	s.mirror(contentID, count)
	return comment, nil
}

// DeleteComment removes a comment and decrements the ledger counter by
// exactly one, floored at zero.
func (s *commentService) DeleteComment(id, actorID string, isAdmin bool) error {
	comment, err := s.getOr404(id)
	if err != nil {
		return err
	}
	if comment.AuthorID != actorID && !isAdmin {
		return fmt.Errorf("%w: not the comment author", apperrors.ErrForbidden)
	}

	if err := s.repo.Delete(comment); err != nil {
		return apperrors.Infrastructure(err)
	}

	count, err := s.engagementRepo.DecrementCommentCount(comment.ContentID)
	if err != nil {
		if logger.Log != nil {
			logger.Log.Warn("comment count decrement failed",
				zap.String("content_id", comment.ContentID), zap.Error(err))
		}
		return nil
	}

	middleware.EngagementEvents.WithLabelValues("uncomment").Inc()
	s.mirror(comment.ContentID, count)
	return nil
}

// Approve makes a comment visible on the read path.
func (s *commentService) Approve(id string) error {
	return s.setApproved(id, true)
}

// Reject hides a comment without deleting it; the ledger counter is
// untouched, visibility and counting are independent.
func (s *commentService) Reject(id string) error {
	return s.setApproved(id, false)
}

// GetByContent lists approved comments only.
func (s *commentService) GetByContent(contentID string, page, limit int) ([]model.Comment, int64, error) {
	p := utils.Pagination{Page: page, Limit: limit}
	offset, lim := p.GetPageOffset()
	comments, total, err := s.repo.GetApprovedByContent(contentID, offset, lim)
	if err != nil {
		return nil, 0, apperrors.Infrastructure(err)
	}
	return comments, total, nil
}

func (s *commentService) setApproved(id string, approved bool) error {
	if err := s.repo.SetApproved(id, approved); err != nil {
		if repository.IsNotFound(err) {
			return fmt.Errorf("%w: comment %s", apperrors.ErrNotFound, id)
		}
		return apperrors.Infrastructure(err)
	}
	return nil
}

func (s *commentService) getOr404(id string) (*model.Comment, error) {
	comment, err := s.repo.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("%w: comment %s", apperrors.ErrNotFound, id)
		}
		return nil, apperrors.Infrastructure(err)
	}
	return comment, nil
}

func (s *commentService) mirror(contentID string, count int64) {
	if s.pool == nil {
		return
	}
	s.pool.AddTask(worker.MirrorTask{
		ContentID: contentID,
		Field:     "comments_count",
		Value:     count,
	})
}
