package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User is an end user of the directory. Accounts are created on
// registration or on first successful OTP verification.
type User struct {
	gorm.Model

	Phone            string     `json:"phone" gorm:"uniqueIndex;not null"`
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	District         string     `json:"district"`
	UserType         string     `json:"user_type" gorm:"default:individual"` // "individual" or "business"
	ProfileType      string     `json:"profile_type"`
	BusinessName     string     `json:"business_name"`
	BusinessCategory string     `json:"business_category"`
	Address          string     `json:"address"`
	Avatar           string     `json:"avatar"`
	BusinessCount    int        `json:"business_count" gorm:"default:0"`
	PostsCount       int        `json:"posts_count" gorm:"default:0"`
	IsActive         bool       `json:"is_active" gorm:"default:true"`
	IsVerified       bool       `json:"is_verified" gorm:"default:false"`
	LastActive       *time.Time `json:"last_active"`
}

// BeforeCreate normalizes the phone number (+91 default country code).
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Phone = NormalizePhone(u.Phone)
	return nil
}

// NormalizePhone strips separators and ensures an E.164-style +91 prefix
// for bare 10-digit Indian numbers.
func NormalizePhone(phone string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	if len(cleaned) == 10 {
		cleaned = "91" + cleaned
	}
	return "+" + cleaned
}
