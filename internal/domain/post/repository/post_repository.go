package repository

import (
	"errors"
	"fmt"
	"time"

	"blogcore/internal/domain/post/model"

	"gorm.io/gorm"
)

// PostRepository owns canonical posts, categories and summary history.
type PostRepository interface {
	Create(post *model.Post) error
	GetByID(id string) (*model.Post, error)
	GetBySlug(slug string) (*model.Post, error)
	SlugExists(slug string) (bool, error)
	GetPublished(offset, limit int) ([]model.Post, int64, error)

	UpdateSummary(postID, summary, generatedBy string) error

	IncrementPostCount(categoryIDs []string) error
	SyncCounter(contentID, field string, value int64) error
	RecountMirrors() (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *model.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) GetByID(id string) (*model.Post, error) {
	var post model.Post
	if err := r.db.Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetBySlug(slug string) (*model.Post, error) {
	var post model.Post
	if err := r.db.Where("slug = ?", slug).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Post{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *postRepository) GetPublished(offset, limit int) ([]model.Post, int64, error) {
	var posts []model.Post
	var total int64

	query := r.db.Model(&model.Post{}).Where("status = ?", model.StatusPublished)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// UpdateSummary persists the new summary and appends to the history log
// in one transaction.
func (r *postRepository) UpdateSummary(postID, summary, generatedBy string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Post{}).Where("id = ?", postID).
			Update("ai_summary", summary)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Create(&model.AISummaryHistory{
			PostID:      postID,
			Summary:     summary,
			GeneratedBy: generatedBy,
			GeneratedAt: time.Now(),
		}).Error
	})
}

// IncrementPostCount bumps the published-post counter on every
// referenced category in one statement.
func (r *postRepository) IncrementPostCount(categoryIDs []string) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	return r.db.Model(&model.Category{}).
		Where("id IN ?", categoryIDs).
		UpdateColumn("post_count", gorm.Expr("post_count + 1")).Error
}

// SyncCounter copies an absolute ledger value onto a post mirror column.
// Content IDs that do not name a local post are a no-op: the ledger
// intentionally tracks external content too.
func (r *postRepository) SyncCounter(contentID, field string, value int64) error {
	if field != "likes_count" && field != "comments_count" {
		return fmt.Errorf("unknown mirror field %q", field)
	}
	// Cast the uuid column: external content IDs are arbitrary text and
	// must match zero rows, not fail the statement.
	return r.db.Model(&model.Post{}).
		Where("id::text = ?", contentID).
		UpdateColumn(field, value).Error
}

// RecountMirrors recomputes both mirrors from the authoritative sources.
// Offline drift correction; never part of the hot path.
func (r *postRepository) RecountMirrors() (int64, error) {
	res := r.db.Exec(`
		UPDATE posts p
		SET likes_count   = COALESCE(e.likes, 0),
		    comments_count = COALESCE(e.comment_count, 0)
		FROM (
			SELECT content_id, cardinality(likers) AS likes, comment_count
			FROM engagement_records
		) e
		WHERE p.id::text = e.content_id`)
	return res.RowsAffected, res.Error
}

// IsDuplicate reports a unique-constraint violation (slug or source
// submission).
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsNotFound reports the gorm missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
