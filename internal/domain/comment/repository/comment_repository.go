package repository

import (
	"errors"

	"blogcore/internal/domain/comment/model"

	"gorm.io/gorm"
)

// CommentRepository persists comments. Counter reconciliation against
// the engagement ledger lives in the service, not here.
type CommentRepository interface {
	Create(comment *model.Comment) error
	GetByID(id string) (*model.Comment, error)
	GetApprovedByContent(contentID string, offset, limit int) ([]model.Comment, int64, error)
	SetApproved(id string, approved bool) error
	Delete(comment *model.Comment) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) GetByID(id string) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetApprovedByContent lists the visible comments for a piece of
// content. Unapproved comments are filtered out here, including from
// their own author.
func (r *commentRepository) GetApprovedByContent(contentID string, offset, limit int) ([]model.Comment, int64, error) {
	var comments []model.Comment
	var total int64

	q := r.db.Model(&model.Comment{}).
		Where("content_id = ? AND is_approved = ?", contentID, true)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at ASC").Offset(offset).Limit(limit).Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) SetApproved(id string, approved bool) error {
	res := r.db.Model(&model.Comment{}).
		Where("id = ?", id).
		Update("is_approved", approved)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *commentRepository) Delete(comment *model.Comment) error {
	return r.db.Delete(comment).Error
}

// IsNotFound reports the gorm missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
