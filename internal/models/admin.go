package models

import (
	"strings"

	"gorm.io/gorm"
)

// AdminUser is a back-office account that signs in with email + password.
type AdminUser struct {
	gorm.Model

	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Name     string `json:"name"`
	Password string `json:"-" gorm:"not null"` // bcrypt hash, never serialized
	Role     string `json:"role" gorm:"not null;default:viewer"`
	IsActive bool   `json:"is_active" gorm:"default:true"`
}

// BeforeCreate normalizes the email so lookups are case-insensitive.
func (a *AdminUser) BeforeCreate(tx *gorm.DB) error {
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	return nil
}
