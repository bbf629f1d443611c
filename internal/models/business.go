package models

import "gorm.io/gorm"

// Business statuses used by the moderation flow.
const (
	BusinessStatusActive   = "active"
	BusinessStatusPending  = "pending"
	BusinessStatusInactive = "inactive"
)

type Business struct {
	gorm.Model

	Name        string  `json:"name" gorm:"not null"`
	Category    string  `json:"category"`
	Owner       string  `json:"owner"`
	OwnerID     *uint   `json:"owner_id" gorm:"index"`
	Phone       string  `json:"phone"`
	Address     string  `json:"address"`
	District    string  `json:"district" gorm:"index"`
	Status      string  `json:"status" gorm:"default:pending;index"`
	Rating      float64 `json:"rating" gorm:"default:0"`
	ReviewCount int     `json:"review_count" gorm:"default:0"`
}
