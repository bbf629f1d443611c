package models

import "gorm.io/gorm"

// Category is a business category used when registering a business.
type Category struct {
	gorm.Model

	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

func (Category) TableName() string {
	return "business_categories"
}
