package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/localhub-app/localhub-backend/internal/models"
	"github.com/localhub-app/localhub-backend/internal/storage"
)

type fakeProvider struct {
	sendErr   error
	checkErr  error
	approved  bool
	sentSMS   []string
	sendCalls int
}

func (f *fakeProvider) SendCode(phone string) (string, error) {
	f.sendCalls++
	if f.sendErr != nil {
		return "", f.sendErr
	}
	return "VE123", nil
}

func (f *fakeProvider) CheckCode(phone, code string) (bool, error) {
	if f.checkErr != nil {
		return false, f.checkErr
	}
	return f.approved, nil
}

func (f *fakeProvider) SendSMS(to, body string) error {
	f.sentSMS = append(f.sentSMS, body)
	return nil
}

func TestRequestOTPFallbackStoresChallenge(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewOTPService(store, nil, true)

	deliveryID, err := svc.RequestOTP("9876543210")
	require.NoError(t, err)
	require.NotEmpty(t, deliveryID)

	challenge, err := store.GetOTPChallenge("9876543210")
	require.NoError(t, err)
	require.Len(t, challenge.Code, 6)
	require.True(t, challenge.Live(time.Now()))
}

func TestVerifyOTPWrongThenRightThenReplay(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewOTPService(store, nil, true)

	_, err := svc.RequestOTP("9876543210")
	require.NoError(t, err)

	challenge, err := store.GetOTPChallenge("9876543210")
	require.NoError(t, err)

	wrong := "000000"
	if challenge.Code == wrong {
		wrong = "000001"
	}
	require.ErrorIs(t, svc.VerifyOTP("9876543210", wrong), ErrInvalidOTP)

	// Correct code succeeds exactly once.
	require.NoError(t, svc.VerifyOTP("9876543210", challenge.Code))
	require.ErrorIs(t, svc.VerifyOTP("9876543210", challenge.Code), ErrInvalidOTP)
}

func TestVerifyOTPExpired(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewOTPService(store, nil, true)

	_, err := store.UpsertOTPChallenge("9876543210", "123456", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	require.ErrorIs(t, svc.VerifyOTP("9876543210", "123456"), ErrExpiredOTP)
}

func TestVerifyOTPAttemptCap(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewOTPService(store, nil, true)

	_, err := store.UpsertOTPChallenge("9876543210", "123456", time.Now().Add(OTPChallengeTTL))
	require.NoError(t, err)

	for i := 0; i < models.MaxOTPAttempts; i++ {
		require.ErrorIs(t, svc.VerifyOTP("9876543210", "999999"), ErrInvalidOTP)
	}
	// Challenge is burned even with the right code.
	require.ErrorIs(t, svc.VerifyOTP("9876543210", "123456"), ErrInvalidOTP)
}

func TestRapidRequestsLeaveOneLiveChallenge(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewOTPService(store, nil, true)

	_, err := svc.RequestOTP("9876543210")
	require.NoError(t, err)
	first, err := store.GetOTPChallenge("9876543210")
	require.NoError(t, err)
	firstCode, firstExpiry := first.Code, first.ExpiresAt

	_, err = svc.RequestOTP("9876543210")
	require.NoError(t, err)
	second, err := store.GetOTPChallenge("9876543210")
	require.NoError(t, err)

	// Last writer wins: one challenge, fresh expiry.
	require.False(t, second.ExpiresAt.Before(firstExpiry))
	if second.Code != firstCode {
		require.ErrorIs(t, svc.VerifyOTP("9876543210", firstCode), ErrInvalidOTP)
	}
	require.NoError(t, svc.VerifyOTP("9876543210", second.Code))
}

func TestRequestOTPPrefersProvider(t *testing.T) {
	store := storage.NewMemoryStore()
	provider := &fakeProvider{approved: true}
	svc := NewOTPService(store, provider, false)

	deliveryID, err := svc.RequestOTP("9876543210")
	require.NoError(t, err)
	require.Equal(t, "VE123", deliveryID)

	// No local challenge when the provider accepted the send.
	_, err = store.GetOTPChallenge("9876543210")
	require.ErrorIs(t, err, storage.ErrNotFound)

	// Verification delegates to the provider check.
	require.NoError(t, svc.VerifyOTP("9876543210", "123456"))
}

func TestRequestOTPFallsBackWhenProviderFails(t *testing.T) {
	store := storage.NewMemoryStore()
	provider := &fakeProvider{sendErr: errors.New("verify down")}
	svc := NewOTPService(store, provider, false)

	_, err := svc.RequestOTP("9876543210")
	require.NoError(t, err)

	challenge, err := store.GetOTPChallenge("9876543210")
	require.NoError(t, err)

	// Fallback code was delivered over plain SMS, not echoed back.
	require.Len(t, provider.sentSMS, 1)
	require.Contains(t, provider.sentSMS[0], challenge.Code)

	require.NoError(t, svc.VerifyOTP("9876543210", challenge.Code))
}

func TestVerifyRemoteRejectsAndMapsOutage(t *testing.T) {
	store := storage.NewMemoryStore()
	provider := &fakeProvider{approved: false}
	svc := NewOTPService(store, provider, false)

	require.ErrorIs(t, svc.VerifyOTP("9876543210", "123456"), ErrInvalidOTP)

	provider.checkErr = errors.New("verify down")
	require.ErrorIs(t, svc.VerifyOTP("9876543210", "123456"), ErrProviderUnavailable)
}
