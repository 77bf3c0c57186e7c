package model

import (
	baseModel "blogcore/pkg/model"

	"github.com/lib/pq"
)

// EngagementRecord holds the mutable counters for one piece of content.
// The content ID is opaque: it may name a local post or content living in
// an external store, and nothing enforces that it resolves at all.
// Records are created lazily on first engagement and never deleted here.
type EngagementRecord struct {
	baseModel.BaseModel
	ContentID    string         `gorm:"uniqueIndex;not null" json:"contentId"`
	Likers       pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"likers"`
	ViewCount    int64          `gorm:"not null;default:0" json:"viewCount"`
	CommentCount int64          `gorm:"not null;default:0" json:"commentCount"`
}

func (EngagementRecord) TableName() string {
	return "engagement_records"
}

// Engagement is the read projection. LikedByUser is present only when a
// viewer identity was supplied.
type Engagement struct {
	ContentID    string `json:"contentId"`
	ViewCount    int64  `json:"viewCount"`
	LikesCount   int64  `json:"likesCount"`
	CommentCount int64  `json:"commentCount"`
	LikedByUser  *bool  `json:"likedByUser,omitempty"`
}
