package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/localhub-app/localhub-backend/internal/models"
	"github.com/localhub-app/localhub-backend/internal/storage"
	"github.com/localhub-app/localhub-backend/internal/utils"
)

// OTPChallengeTTL is how long a locally issued code stays valid.
const OTPChallengeTTL = 10 * time.Minute

// OTP verification outcomes. Everything ambiguous resolves to
// ErrInvalidOTP so the flow fails closed.
var (
	ErrInvalidOTP          = errors.New("invalid otp")
	ErrExpiredOTP          = errors.New("otp expired")
	ErrProviderUnavailable = errors.New("otp provider unavailable")
)

// CodeVerifier is the slice of TwilioService the OTP flow depends on.
// Narrowed to an interface so tests can substitute a fake provider.
type CodeVerifier interface {
	SendCode(phone string) (string, error)
	CheckCode(phone, code string) (bool, error)
	SendSMS(to, body string) error
}

// OTPService implements phone verification with two paths: the Twilio
// Verify API as primary, and locally generated single-use challenges as
// fallback when the provider is unconfigured or unavailable.
type OTPService struct {
	store    storage.Store
	provider CodeVerifier // nil in fallback-only mode
	devMode  bool
}

func NewOTPService(store storage.Store, provider CodeVerifier, devMode bool) *OTPService {
	return &OTPService{store: store, provider: provider, devMode: devMode}
}

// RequestOTP sends a verification code to phone and returns a delivery
// identifier. Provider failure falls back to a local challenge instead
// of failing the request; the fallback code is never part of the return
// value or any response payload.
func (s *OTPService) RequestOTP(phone string) (string, error) {
	phone = models.NormalizePhone(phone)

	if s.provider != nil {
		sid, err := s.provider.SendCode(phone)
		if err == nil {
			return sid, nil
		}
		log.Printf("verify provider send failed for %s, using local fallback: %v", phone, err)
	}

	code, err := utils.GenerateSecureOTP()
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}

	if _, err := s.store.UpsertOTPChallenge(phone, code, time.Now().Add(OTPChallengeTTL)); err != nil {
		return "", fmt.Errorf("store otp challenge: %w", err)
	}

	s.deliverFallback(phone, code)
	return uuid.NewString(), nil
}

func (s *OTPService) deliverFallback(phone, code string) {
	if s.provider != nil {
		if err := s.provider.SendSMS(phone, fmt.Sprintf("Your LocalHub verification code is %s", code)); err == nil {
			return
		} else {
			log.Printf("fallback sms delivery failed for %s: %v", phone, err)
		}
	}
	if s.devMode {
		// Development convenience only. Production builds run with
		// devMode=false and never expose the code outside the store.
		log.Printf("DEV ONLY - otp for %s: %s", phone, code)
	}
}

// VerifyOTP checks code against the live local challenge for phone, or
// against the Verify API when no local challenge exists. Local
// challenges are single use: the first success consumes them.
func (s *OTPService) VerifyOTP(phone, code string) error {
	phone = models.NormalizePhone(phone)

	challenge, err := s.store.GetOTPChallenge(phone)
	switch {
	case err == nil:
		return s.verifyLocal(challenge, code)
	case errors.Is(err, storage.ErrNotFound):
		return s.verifyRemote(phone, code)
	default:
		return err
	}
}

func (s *OTPService) verifyLocal(challenge *models.OTPChallenge, code string) error {
	now := time.Now()
	if now.After(challenge.ExpiresAt) {
		return ErrExpiredOTP
	}
	if challenge.IsUsed {
		return ErrInvalidOTP
	}

	challenge.Attempts++
	if challenge.Attempts > models.MaxOTPAttempts {
		_ = s.store.UpdateOTPChallenge(challenge)
		return ErrInvalidOTP
	}

	if challenge.Code != code {
		if err := s.store.UpdateOTPChallenge(challenge); err != nil {
			return err
		}
		return ErrInvalidOTP
	}

	challenge.IsUsed = true
	challenge.VerifiedAt = &now
	if err := s.store.UpdateOTPChallenge(challenge); err != nil {
		return err
	}
	return nil
}

func (s *OTPService) verifyRemote(phone, code string) error {
	if s.provider == nil {
		return ErrInvalidOTP
	}
	approved, err := s.provider.CheckCode(phone, code)
	if err != nil {
		log.Printf("verify provider check failed for %s: %v", phone, err)
		return ErrProviderUnavailable
	}
	if !approved {
		return ErrInvalidOTP
	}
	return nil
}
