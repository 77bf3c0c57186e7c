package model

import (
	baseModel "blogcore/pkg/model"
)

// Roles. Verification of identity happens upstream; these only drive
// ownership and moderation checks.
const (
	RoleUser  = 0
	RoleAdmin = 1
)

// User is the local projection of an externally-managed identity.
type User struct {
	baseModel.BaseModel
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatarUrl"`
	Role      int    `gorm:"default:0" json:"role"`
}
