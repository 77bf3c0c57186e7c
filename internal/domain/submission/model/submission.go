package model

import (
	"time"

	baseModel "blogcore/pkg/model"

	"github.com/lib/pq"
)

// Status is the moderation lifecycle of a user draft. Exactly pending,
// approved, rejected; decided states are terminal. This is a different
// enumeration from the canonical post status even where the words
// overlap.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Difficulty levels a submission may declare.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Submission is a user-authored draft awaiting review. It is owned by
// the submitting user until decided, then becomes read-mostly history.
// Exactly one of the three shapes holds at any time: pending with no
// review fields, approved with a published content ID, or rejected with
// a reason.
type Submission struct {
	baseModel.BaseModel
	OwnerID      string         `gorm:"type:uuid;index;not null" json:"ownerId"`
	Title        string         `gorm:"not null" json:"title"`
	Content      string         `gorm:"type:text;not null" json:"content"`
	Excerpt      string         `json:"excerpt"`
	CategoryRefs pq.StringArray `gorm:"type:text[]" json:"categoryRefs"`
	Tags         pq.StringArray `gorm:"type:text[]" json:"tags"`
	Difficulty   string         `json:"difficulty"`

	Status          Status  `gorm:"default:'pending';index" json:"status"`
	RejectionReason string  `json:"rejectionReason,omitempty"`
	ReviewerID      *string `gorm:"type:uuid" json:"reviewerId,omitempty"`
	ReviewedAt      *time.Time `json:"reviewedAt,omitempty"`

	// Set iff approved; names the canonical post materialized from this
	// draft.
	PublishedContentID *string `gorm:"type:uuid" json:"publishedContentId,omitempty"`
}
