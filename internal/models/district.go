package models

import "gorm.io/gorm"

type District struct {
	gorm.Model

	Name          string `json:"name" gorm:"uniqueIndex;not null"`
	UserCount     int    `json:"user_count" gorm:"default:0"`
	BusinessCount int    `json:"business_count" gorm:"default:0"`
	PostsCount    int    `json:"posts_count" gorm:"default:0"`
	IsActive      bool   `json:"is_active" gorm:"default:true"`
}
