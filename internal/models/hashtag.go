package models

import (
	"strings"

	"gorm.io/gorm"
)

type Hashtag struct {
	gorm.Model

	Name       string `json:"name" gorm:"uniqueIndex;not null"`
	Color      string `json:"color"`
	UsageCount int    `json:"usage_count" gorm:"default:0"`
}

// BeforeCreate normalizes the tag name: lowercase, alphanumerics only.
func (h *Hashtag) BeforeCreate(tx *gorm.DB) error {
	h.Name = NormalizeHashtag(h.Name)
	return nil
}

func NormalizeHashtag(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, strings.ToLower(name))
}
