package services

import (
	"fmt"
	"log"
	"os"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	verifyApi "github.com/twilio/twilio-go/rest/verify/v2"

	"github.com/localhub-app/localhub-backend/internal/models"
)

// TwilioService talks to the Twilio Verify API (primary OTP channel)
// and the messaging API (delivery of locally generated fallback codes).
// It is constructed once at startup and injected; there is no lazily
// created global verify-service handle.
type TwilioService struct {
	client           *twilio.RestClient
	verifyServiceSID string
	smsFrom          string
}

// NewTwilioService builds the client from environment configuration.
// Returns an error when the account credentials are missing; the caller
// decides whether to run in fallback-only mode.
func NewTwilioService() (*TwilioService, error) {
	accountSID := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	verifySID := os.Getenv("TWILIO_VERIFY_SERVICE_SID")
	smsFrom := os.Getenv("TWILIO_PHONE_NUMBER")

	if accountSID == "" || authToken == "" {
		return nil, fmt.Errorf("missing Twilio credentials in environment variables")
	}
	if verifySID == "" {
		log.Println("TWILIO_VERIFY_SERVICE_SID not set - Verify API disabled, using local OTP challenges")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioService{
		client:           client,
		verifyServiceSID: verifySID,
		smsFrom:          smsFrom,
	}, nil
}

// VerifyConfigured reports whether the Verify API can be used.
func (t *TwilioService) VerifyConfigured() bool {
	return t.verifyServiceSID != ""
}

// SendCode starts a Verify verification for phone over SMS and returns
// the verification SID.
func (t *TwilioService) SendCode(phone string) (string, error) {
	if t.verifyServiceSID == "" {
		return "", fmt.Errorf("verify service not configured")
	}

	params := &verifyApi.CreateVerificationParams{}
	params.SetTo(models.NormalizePhone(phone))
	params.SetChannel("sms")

	resp, err := t.client.VerifyV2.CreateVerification(t.verifyServiceSID, params)
	if err != nil {
		return "", fmt.Errorf("send verification: %w", err)
	}
	if resp.Sid == nil {
		return "", fmt.Errorf("send verification: empty response")
	}
	return *resp.Sid, nil
}

// CheckCode asks Verify whether code matches the pending verification
// for phone.
func (t *TwilioService) CheckCode(phone, code string) (bool, error) {
	if t.verifyServiceSID == "" {
		return false, fmt.Errorf("verify service not configured")
	}

	params := &verifyApi.CreateVerificationCheckParams{}
	params.SetTo(models.NormalizePhone(phone))
	params.SetCode(code)

	resp, err := t.client.VerifyV2.CreateVerificationCheck(t.verifyServiceSID, params)
	if err != nil {
		return false, fmt.Errorf("check verification: %w", err)
	}
	return resp.Status != nil && *resp.Status == "approved", nil
}

// SendSMS delivers a plain text message, used for fallback OTP codes.
func (t *TwilioService) SendSMS(to, body string) error {
	if t.smsFrom == "" {
		return fmt.Errorf("TWILIO_PHONE_NUMBER not configured")
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.smsFrom)
	params.SetTo(models.NormalizePhone(to))
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	if resp.ErrorCode != nil && *resp.ErrorCode != 0 {
		return fmt.Errorf("twilio error %d: %s", *resp.ErrorCode, *resp.ErrorMessage)
	}
	return nil
}
