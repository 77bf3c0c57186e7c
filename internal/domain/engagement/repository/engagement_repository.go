package repository

import (
	"errors"

	"blogcore/internal/domain/engagement/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EngagementRepository mutates counters with single-statement atomic
// read-modify-writes. A fetch-then-write-back here would lose updates
// under concurrent requests for the same content ID.
type EngagementRepository interface {
	RecordView(contentID string) (int64, error)
	ToggleLike(contentID, userID string) (liked bool, likes int64, err error)
	GetByContentID(contentID string) (*model.EngagementRecord, error)
	IncrementCommentCount(contentID string) (int64, error)
	DecrementCommentCount(contentID string) (int64, error)
}

type engagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

// RecordView creates the record on first view and bumps the counter in
// the same statement. Each call counts one view; there is no dedup by
// viewer, these are traffic counters.
func (r *engagementRepository) RecordView(contentID string) (int64, error) {
	var viewCount int64
	err := r.db.Raw(`
		INSERT INTO engagement_records (id, content_id, likers, view_count, comment_count, created_at, updated_at)
		VALUES (?, ?, '{}', 1, 0, now(), now())
		ON CONFLICT (content_id) DO UPDATE
		SET view_count = engagement_records.view_count + 1, updated_at = now()
		RETURNING view_count`,
		uuid.New().String(), contentID,
	).Scan(&viewCount).Error
	if err != nil {
		return 0, err
	}
	return viewCount, nil
}

// ToggleLike removes the user from the likers set if present, otherwise
// adds them. Each branch is one guarded UPDATE, so two different users
// toggling concurrently both land; two racing toggles from the same user
// resolve to whichever statement matches the state it observes.
func (r *engagementRepository) ToggleLike(contentID, userID string) (bool, int64, error) {
	if err := r.ensureRecord(contentID); err != nil {
		return false, 0, err
	}

	var likes int64

	// Unlike branch: only matches while the user is in the set.
	res := r.db.Raw(`
		UPDATE engagement_records
		SET likers = array_remove(likers, ?::text), updated_at = now()
		WHERE content_id = ? AND ?::text = ANY(likers)
		RETURNING cardinality(likers)`,
		userID, contentID, userID,
	).Scan(&likes)
	if res.Error != nil {
		return false, 0, res.Error
	}
	if res.RowsAffected > 0 {
		return false, likes, nil
	}

	// Like branch: only matches while the user is absent.
	res = r.db.Raw(`
		UPDATE engagement_records
		SET likers = array_append(likers, ?::text), updated_at = now()
		WHERE content_id = ? AND NOT (?::text = ANY(likers))
		RETURNING cardinality(likers)`,
		userID, contentID, userID,
	).Scan(&likes)
	if res.Error != nil {
		return false, 0, res.Error
	}
	if res.RowsAffected > 0 {
		return true, likes, nil
	}

	// Both branches lost to a concurrent toggle by the same user.
	// Report the state that survived.
	record, err := r.GetByContentID(contentID)
	if err != nil {
		return false, 0, err
	}
	liked := false
	for _, l := range record.Likers {
		if l == userID {
			liked = true
			break
		}
	}
	return liked, int64(len(record.Likers)), nil
}

func (r *engagementRepository) ensureRecord(contentID string) error {
	return r.db.Exec(`
		INSERT INTO engagement_records (id, content_id, likers, view_count, comment_count, created_at, updated_at)
		VALUES (?, ?, '{}', 0, 0, now(), now())
		ON CONFLICT (content_id) DO NOTHING`,
		uuid.New().String(), contentID,
	).Error
}

func (r *engagementRepository) GetByContentID(contentID string) (*model.EngagementRecord, error) {
	var record model.EngagementRecord
	if err := r.db.Where("content_id = ?", contentID).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// IncrementCommentCount is called by the comment subtree only.
func (r *engagementRepository) IncrementCommentCount(contentID string) (int64, error) {
	var count int64
	err := r.db.Raw(`
		INSERT INTO engagement_records (id, content_id, likers, view_count, comment_count, created_at, updated_at)
		VALUES (?, ?, '{}', 0, 1, now(), now())
		ON CONFLICT (content_id) DO UPDATE
		SET comment_count = engagement_records.comment_count + 1, updated_at = now()
		RETURNING comment_count`,
		uuid.New().String(), contentID,
	).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// DecrementCommentCount floors at zero: a record already at zero (or
// absent) stays there instead of going negative.
func (r *engagementRepository) DecrementCommentCount(contentID string) (int64, error) {
	var count int64
	res := r.db.Raw(`
		UPDATE engagement_records
		SET comment_count = comment_count - 1, updated_at = now()
		WHERE content_id = ? AND comment_count > 0
		RETURNING comment_count`,
		contentID,
	).Scan(&count)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, nil
	}
	return count, nil
}

// IsNotFound reports the gorm missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
