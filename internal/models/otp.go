package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxOTPAttempts is the number of verification attempts allowed per
// challenge before it is burned.
const MaxOTPAttempts = 3

// OTPChallenge is the locally stored fallback challenge used when the
// Twilio Verify service is unavailable. The unique index on Phone keeps
// at most one live challenge per number; requesting a new code upserts
// over the previous one.
type OTPChallenge struct {
	gorm.Model

	Phone      string    `gorm:"uniqueIndex;not null"`
	Code       string    `gorm:"not null"`
	ExpiresAt  time.Time `gorm:"not null"`
	Attempts   int       `gorm:"default:0"`
	IsUsed     bool      `gorm:"default:false"`
	VerifiedAt *time.Time
}

// Live reports whether the challenge can still be redeemed.
func (o *OTPChallenge) Live(now time.Time) bool {
	return !o.IsUsed && now.Before(o.ExpiresAt) && o.Attempts < MaxOTPAttempts
}
