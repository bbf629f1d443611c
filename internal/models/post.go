package models

import "gorm.io/gorm"

// Post statuses used by the moderation flow.
const (
	PostStatusPublished = "published"
	PostStatusPending   = "pending"
	PostStatusRejected  = "rejected"
)

// Post is a directory post authored by either a user or a business.
type Post struct {
	gorm.Model

	Title         string `json:"title" gorm:"not null"`
	Content       string `json:"content"`
	UserID        *uint  `json:"user_id" gorm:"index"`
	BusinessID    *uint  `json:"business_id" gorm:"index"`
	District      string `json:"district" gorm:"index"`
	Status        string `json:"status" gorm:"default:pending;index"`
	MenuID        *uint  `json:"menu_id" gorm:"index"`
	AssignedLabel string `json:"assigned_label"`
	Hashtags      string `json:"hashtags"` // comma separated tag names
	MediaURLs     string `json:"media_urls" gorm:"type:jsonb;default:'[]'"`
	DurationDays  int    `json:"duration_days" gorm:"default:0"` // 0 = no expiry
	ViewLimit     int    `json:"view_limit" gorm:"default:0"`    // 0 = unlimited
	LikesCount    int    `json:"likes_count" gorm:"default:0"`
	CommentsCount int    `json:"comments_count" gorm:"default:0"`
	ViewsCount    int    `json:"views_count" gorm:"default:0"`
}
