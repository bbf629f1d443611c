package models

import "gorm.io/gorm"

// Menu groups posts under a named section with optional labels and a
// default time filter ("all", "1month", "3months", "6months").
type Menu struct {
	gorm.Model

	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Labels      string `json:"labels" gorm:"type:jsonb;default:'[]'"` // JSON array of label names
	TimeFilter  string `json:"time_filter" gorm:"default:all"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
}
