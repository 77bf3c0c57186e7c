package service

import (
	"errors"
	"fmt"
	"unicode/utf8"

	postModel "blogcore/internal/domain/post/model"
	postRepository "blogcore/internal/domain/post/repository"
	"blogcore/internal/domain/submission/model"
	"blogcore/internal/domain/submission/repository"
	"blogcore/pkg/apperrors"
	"blogcore/pkg/logger"
	"blogcore/pkg/utils"

	"go.uber.org/zap"
)

const (
	minTitleLen   = 10
	minContentLen = 100
)

// SubmitInput is a new draft.
type SubmitInput struct {
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Excerpt      string   `json:"excerpt"`
	CategoryRefs []string `json:"categoryRefs"`
	Tags         []string `json:"tags"`
	Difficulty   string   `json:"difficulty"`
}

// UpdateInput patches a pending draft. Nil fields are left untouched.
type UpdateInput struct {
	Title        *string   `json:"title"`
	Content      *string   `json:"content"`
	Excerpt      *string   `json:"excerpt"`
	CategoryRefs *[]string `json:"categoryRefs"`
	Tags         *[]string `json:"tags"`
	Difficulty   *string   `json:"difficulty"`
}

// SubmissionService runs the moderation state machine and the one-way
// conversion of an approved draft into a canonical post.
type SubmissionService interface {
	Submit(ownerID string, input SubmitInput) (*model.Submission, error)
	Approve(id, reviewerID string) (*model.Submission, *postModel.Post, error)
	Reject(id, reviewerID, reason string) (*model.Submission, error)
	Update(id, actorID string, isAdmin bool, patch UpdateInput) (*model.Submission, error)
	Delete(id, actorID string, isAdmin bool) error
	GetByID(id, actorID string, isAdmin bool) (*model.Submission, error)
	GetByOwner(ownerID string, page, limit int) ([]model.Submission, int64, error)
	GetPending(page, limit int) ([]model.Submission, int64, error)
}

type submissionService struct {
	repo     repository.SubmissionRepository
	postRepo postRepository.PostRepository
}

func NewSubmissionService(repo repository.SubmissionRepository, postRepo postRepository.PostRepository) SubmissionService {
	return &submissionService{repo: repo, postRepo: postRepo}
}

// Submit validates the draft and persists it pending. The slug check is
// a pre-flight courtesy, not a guarantee: the authoritative check
// happens again at approval time.
func (s *submissionService) Submit(ownerID string, input SubmitInput) (*model.Submission, error) {
	if err := validateDraft(input.Title, input.Content, input.Difficulty); err != nil {
		return nil, err
	}

	slug := utils.Slugify(input.Title)
	if slug == "" {
		return nil, apperrors.Validationf("title yields an empty slug")
	}
	if err := s.checkSlugFree(slug); err != nil {
		return nil, err
	}

	sub := &model.Submission{
		OwnerID:      ownerID,
		Title:        input.Title,
		Content:      input.Content,
		Excerpt:      input.Excerpt,
		CategoryRefs: input.CategoryRefs,
		Tags:         input.Tags,
		Difficulty:   input.Difficulty,
		Status:       model.StatusPending,
	}

	if err := s.repo.Create(sub); err != nil {
		return nil, apperrors.Infrastructure(err)
	}
	return sub, nil
}

// Approve converts a pending draft into exactly one canonical post. The
// slug is recomputed here, not reused from submit time: the title may
// have been edited while pending. Racing approvals are settled by the
// repository's conditional claim; re-approving a decided submission is
// ErrInvalidState, never a second post.
func (s *submissionService) Approve(id, reviewerID string) (*model.Submission, *postModel.Post, error) {
	sub, err := s.getOr404(id)
	if err != nil {
		return nil, nil, err
	}
	if sub.Status != model.StatusPending {
		return nil, nil, fmt.Errorf("%w: submission is %s", apperrors.ErrInvalidState, sub.Status)
	}

	slug := utils.Slugify(sub.Title)
	if slug == "" {
		return nil, nil, apperrors.Validationf("title yields an empty slug")
	}
	if err := s.checkSlugFree(slug); err != nil {
		return nil, nil, err
	}

	post := &postModel.Post{
		Title:              sub.Title,
		Slug:               slug,
		Content:            sub.Content,
		Excerpt:            sub.Excerpt,
		AuthorID:           sub.OwnerID,
		CategoryRefs:       sub.CategoryRefs,
		Tags:               sub.Tags,
		Difficulty:         sub.Difficulty,
		Status:             postModel.StatusPublished,
		SourceSubmissionID: &sub.ID,
	}

	updated, err := s.repo.ApproveAndPublish(id, reviewerID, post)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotPending) || repository.IsNotFound(err):
			return nil, nil, fmt.Errorf("%w: submission already decided", apperrors.ErrInvalidState)
		case postRepository.IsDuplicate(err):
			// Lost a race for the slug after the pre-flight check.
			return nil, nil, fmt.Errorf("%w: slug %q already taken", apperrors.ErrDuplicateTitle, slug)
		default:
			return nil, nil, apperrors.Infrastructure(err)
		}
	}

	// Best-effort: a failed increment undercounts post_count until the
	// next recount, which is tolerable; un-publishing the post is not.
	if err := s.postRepo.IncrementPostCount(sub.CategoryRefs); err != nil && logger.Log != nil {
		logger.Log.Warn("category post_count increment failed",
			zap.String("submission_id", id), zap.Error(err))
	}

	return updated, post, nil
}

// Reject finalizes a pending draft with a reason.
func (s *submissionService) Reject(id, reviewerID, reason string) (*model.Submission, error) {
	if reason == "" {
		return nil, apperrors.Validationf("rejection reason is required")
	}

	if _, err := s.getOr404(id); err != nil {
		return nil, err
	}

	if err := s.repo.MarkRejected(id, reviewerID, reason); err != nil {
		if errors.Is(err, repository.ErrNotPending) {
			return nil, fmt.Errorf("%w: submission already decided", apperrors.ErrInvalidState)
		}
		return nil, apperrors.Infrastructure(err)
	}

	sub, err := s.repo.GetByID(id)
	if err != nil {
		return nil, apperrors.Infrastructure(err)
	}
	return sub, nil
}

// Update patches a draft. Owner or admin only, and only while pending.
func (s *submissionService) Update(id, actorID string, isAdmin bool, patch UpdateInput) (*model.Submission, error) {
	sub, err := s.getOr404(id)
	if err != nil {
		return nil, err
	}
	if sub.OwnerID != actorID && !isAdmin {
		return nil, fmt.Errorf("%w: not the submission owner", apperrors.ErrForbidden)
	}
	if sub.Status != model.StatusPending {
		return nil, fmt.Errorf("%w: submission is %s", apperrors.ErrInvalidState, sub.Status)
	}

	if patch.Title != nil {
		sub.Title = *patch.Title
	}
	if patch.Content != nil {
		sub.Content = *patch.Content
	}
	if patch.Excerpt != nil {
		sub.Excerpt = *patch.Excerpt
	}
	if patch.CategoryRefs != nil {
		sub.CategoryRefs = *patch.CategoryRefs
	}
	if patch.Tags != nil {
		sub.Tags = *patch.Tags
	}
	if patch.Difficulty != nil {
		sub.Difficulty = *patch.Difficulty
	}

	if err := validateDraft(sub.Title, sub.Content, sub.Difficulty); err != nil {
		return nil, err
	}

	if err := s.repo.Update(sub); err != nil {
		return nil, apperrors.Infrastructure(err)
	}
	return sub, nil
}

// Delete removes a draft. Owner or admin only, and only while pending.
func (s *submissionService) Delete(id, actorID string, isAdmin bool) error {
	sub, err := s.getOr404(id)
	if err != nil {
		return err
	}
	if sub.OwnerID != actorID && !isAdmin {
		return fmt.Errorf("%w: not the submission owner", apperrors.ErrForbidden)
	}
	if sub.Status != model.StatusPending {
		return fmt.Errorf("%w: submission is %s", apperrors.ErrInvalidState, sub.Status)
	}

	if err := s.repo.Delete(sub); err != nil {
		return apperrors.Infrastructure(err)
	}
	return nil
}

// GetByID returns a draft to its owner or an admin.
func (s *submissionService) GetByID(id, actorID string, isAdmin bool) (*model.Submission, error) {
	sub, err := s.getOr404(id)
	if err != nil {
		return nil, err
	}
	if sub.OwnerID != actorID && !isAdmin {
		return nil, fmt.Errorf("%w: not the submission owner", apperrors.ErrForbidden)
	}
	return sub, nil
}

func (s *submissionService) GetByOwner(ownerID string, page, limit int) ([]model.Submission, int64, error) {
	p := utils.Pagination{Page: page, Limit: limit}
	offset, lim := p.GetPageOffset()
	subs, total, err := s.repo.GetByOwner(ownerID, offset, lim)
	if err != nil {
		return nil, 0, apperrors.Infrastructure(err)
	}
	return subs, total, nil
}

func (s *submissionService) GetPending(page, limit int) ([]model.Submission, int64, error) {
	p := utils.Pagination{Page: page, Limit: limit}
	offset, lim := p.GetPageOffset()
	subs, total, err := s.repo.GetByStatus(model.StatusPending, offset, lim)
	if err != nil {
		return nil, 0, apperrors.Infrastructure(err)
	}
	return subs, total, nil
}

func (s *submissionService) getOr404(id string) (*model.Submission, error) {
	sub, err := s.repo.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("%w: submission %s", apperrors.ErrNotFound, id)
		}
		return nil, apperrors.Infrastructure(err)
	}
	return sub, nil
}

func (s *submissionService) checkSlugFree(slug string) error {
	taken, err := s.postRepo.SlugExists(slug)
	if err != nil {
		return apperrors.Infrastructure(err)
	}
	if taken {
		return fmt.Errorf("%w: slug %q already taken", apperrors.ErrDuplicateTitle, slug)
	}
	return nil
}

func validateDraft(title, content, difficulty string) error {
	// Rune counts, not bytes: multi-byte titles must not pass short.
	if utf8.RuneCountInString(title) < minTitleLen {
		return apperrors.Validationf("title must be at least %d characters", minTitleLen)
	}
	if utf8.RuneCountInString(content) < minContentLen {
		return apperrors.Validationf("content must be at least %d characters", minContentLen)
	}
	switch difficulty {
	case "", model.DifficultyBeginner, model.DifficultyIntermediate, model.DifficultyAdvanced:
	default:
		return apperrors.Validationf("unknown difficulty %q", difficulty)
	}
	return nil
}
