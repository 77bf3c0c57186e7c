package repository

import (
	"errors"
	"time"

	postModel "blogcore/internal/domain/post/model"
	"blogcore/internal/domain/submission/model"

	"gorm.io/gorm"
)

// ErrNotPending reports a conditional transition that matched no row
// because the submission is no longer pending.
var ErrNotPending = errors.New("submission is not pending")

// SubmissionRepository persists drafts and runs the decision
// transitions. Every transition out of pending is a conditional update
// (WHERE status = 'pending'); a read-then-write here would let two
// racing reviewers both decide the same draft.
type SubmissionRepository interface {
	Create(sub *model.Submission) error
	GetByID(id string) (*model.Submission, error)
	GetByOwner(ownerID string, offset, limit int) ([]model.Submission, int64, error)
	GetByStatus(status model.Status, offset, limit int) ([]model.Submission, int64, error)
	Update(sub *model.Submission) error
	Delete(sub *model.Submission) error

	ApproveAndPublish(id, reviewerID string, post *postModel.Post) (*model.Submission, error)
	MarkRejected(id, reviewerID, reason string) error
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(sub *model.Submission) error {
	return r.db.Create(sub).Error
}

func (r *submissionRepository) GetByID(id string) (*model.Submission, error) {
	var sub model.Submission
	if err := r.db.Where("id = ?", id).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *submissionRepository) GetByOwner(ownerID string, offset, limit int) ([]model.Submission, int64, error) {
	return r.list(r.db.Model(&model.Submission{}).Where("owner_id = ?", ownerID), offset, limit)
}

func (r *submissionRepository) GetByStatus(status model.Status, offset, limit int) ([]model.Submission, int64, error) {
	return r.list(r.db.Model(&model.Submission{}).Where("status = ?", status), offset, limit)
}

func (r *submissionRepository) list(query *gorm.DB, offset, limit int) ([]model.Submission, int64, error) {
	var subs []model.Submission
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&subs).Error; err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

func (r *submissionRepository) Update(sub *model.Submission) error {
	return r.db.Save(sub).Error
}

func (r *submissionRepository) Delete(sub *model.Submission) error {
	return r.db.Delete(sub).Error
}

// ApproveAndPublish claims the pending→approved transition and
// materializes the canonical post in one transaction. The conditional
// claim makes a second approval lose with ErrNotPending instead of
// creating a second post; the unique indexes on posts.slug and
// posts.source_submission_id are the storage-level backstop. Category
// counter updates happen outside: they are best-effort and must not
// roll back a created post.
func (r *submissionRepository) ApproveAndPublish(id, reviewerID string, post *postModel.Post) (*model.Submission, error) {
	var sub model.Submission

	err := r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&model.Submission{}).
			Where("id = ? AND status = ?", id, model.StatusPending).
			Updates(map[string]interface{}{
				"status":      model.StatusApproved,
				"reviewer_id": reviewerID,
				"reviewed_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotPending
		}

		if err := tx.Create(post).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Submission{}).
			Where("id = ?", id).
			Update("published_content_id", post.ID).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).First(&sub).Error
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// MarkRejected claims the pending→rejected transition.
func (r *submissionRepository) MarkRejected(id, reviewerID, reason string) error {
	now := time.Now()
	res := r.db.Model(&model.Submission{}).
		Where("id = ? AND status = ?", id, model.StatusPending).
		Updates(map[string]interface{}{
			"status":           model.StatusRejected,
			"rejection_reason": reason,
			"reviewer_id":      reviewerID,
			"reviewed_at":      now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotPending
	}
	return nil
}

// IsNotFound reports the gorm missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
