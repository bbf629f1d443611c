package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"9876543210", "+919876543210"},
		{"+919876543210", "+919876543210"},
		{"91 98765 43210", "+919876543210"},
		{"(987) 654-3210", "+919876543210"},
		{"+14155552671", "+14155552671"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePhone(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeHashtag(t *testing.T) {
	assert.Equal(t, "localfood", NormalizeHashtag("#LocalFood"))
	assert.Equal(t, "sale2024", NormalizeHashtag("Sale 2024!"))
	assert.Equal(t, "", NormalizeHashtag("###"))
}

func TestOTPChallengeLive(t *testing.T) {
	now := time.Now()
	fresh := func() *OTPChallenge {
		return &OTPChallenge{
			Phone:     "+919876543210",
			Code:      "123456",
			ExpiresAt: now.Add(10 * time.Minute),
		}
	}

	assert.True(t, fresh().Live(now))

	expired := fresh()
	expired.ExpiresAt = now.Add(-time.Second)
	assert.False(t, expired.Live(now))

	used := fresh()
	used.IsUsed = true
	assert.False(t, used.Live(now))

	burned := fresh()
	burned.Attempts = MaxOTPAttempts
	assert.False(t, burned.Live(now))
}
