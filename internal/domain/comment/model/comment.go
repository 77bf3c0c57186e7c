package model

import (
	baseModel "blogcore/pkg/model"
)

// Comment is a moderated, threaded remark on a piece of content. New
// comments start unapproved and stay invisible on the read path until
// an admin approves them. Root and level are denormalized from the
// parent chain so a thread renders without walking it.
type Comment struct {
	baseModel.BaseModel
	ContentID string `gorm:"index;not null" json:"contentId"`
	AuthorID  string `gorm:"type:uuid;index;not null" json:"authorId"`
	Text      string `gorm:"type:text;not null" json:"text"`

	IsApproved bool `gorm:"not null;default:false;index" json:"isApproved"`

	ParentCommentID *string `gorm:"type:uuid" json:"parentCommentId,omitempty"`
	RootCommentID   *string `gorm:"type:uuid;index" json:"rootCommentId,omitempty"`
	Level           int     `gorm:"not null;default:0" json:"level"`
}
