package model

import (
	"time"

	baseModel "blogcore/pkg/model"

	"github.com/lib/pq"
)

// Status is the canonical post lifecycle. It shares vocabulary with the
// submission status but is a distinct enumeration; do not collapse them.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusPublished Status = "published"
	StatusRejected  Status = "rejected"
)

// Post is the canonical, externally-addressable form of approved
// content. The slug is unique and immutable after creation. The
// likes/comments counts are denormalized mirrors of the engagement
// ledger, maintained by narrow single-field writes and repaired by the
// recount routine; the ledger stays authoritative.
type Post struct {
	baseModel.BaseModel
	Title        string         `gorm:"not null" json:"title"`
	Slug         string         `gorm:"uniqueIndex;not null" json:"slug"`
	Content      string         `gorm:"type:text;not null" json:"content"`
	Excerpt      string         `json:"excerpt"`
	AuthorID     string         `gorm:"type:uuid;index" json:"authorId"`
	CategoryRefs pq.StringArray `gorm:"type:text[]" json:"categoryRefs"`
	Tags         pq.StringArray `gorm:"type:text[]" json:"tags"`
	Difficulty   string         `json:"difficulty"`
	Status       Status         `gorm:"default:'draft'" json:"status"`

	LikesCount    int64 `gorm:"not null;default:0" json:"likesCount"`
	CommentsCount int64 `gorm:"not null;default:0" json:"commentsCount"`

	AISummary string `gorm:"type:text" json:"aiSummary"`

	// Back-reference to the submission this post was materialized from.
	// The unique index is the backstop for at-most-one post per
	// submission.
	SourceSubmissionID *string `gorm:"type:uuid;uniqueIndex" json:"sourceSubmissionId,omitempty"`

	SummaryHistory []AISummaryHistory `gorm:"foreignKey:PostID" json:"summaryHistory,omitempty"`
}

// AISummaryHistory is the append-only log of prior summaries.
type AISummaryHistory struct {
	baseModel.BaseModel
	PostID      string    `gorm:"type:uuid;index;not null" json:"postId"`
	Summary     string    `gorm:"type:text;not null" json:"summary"`
	GeneratedBy string    `json:"generatedBy"` // "remote" or "fallback"
	GeneratedAt time.Time `json:"generatedAt"`
}

func (AISummaryHistory) TableName() string {
	return "ai_summary_histories"
}

// Category carries the denormalized published-post count.
type Category struct {
	baseModel.BaseModel
	Name      string `gorm:"unique;not null" json:"name"`
	Slug      string `gorm:"unique;not null" json:"slug"`
	PostCount int64  `gorm:"not null;default:0" json:"postCount"`
}
