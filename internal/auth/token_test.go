package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	_, err := NewTokenManager("", DefaultTokenTTL)
	require.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	tm, err := NewTokenManager("test-secret", DefaultTokenTTL)
	require.NoError(t, err)

	token, err := tm.Issue("42", RoleAdmin, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "42", claims.Subject)
	require.Equal(t, RoleAdmin, claims.Role)
	require.Equal(t, "admin", claims.Type)
	require.Equal(t, DefaultTokenTTL, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestTokenExpiryWindow(t *testing.T) {
	issuedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tm, err := NewTokenManager("test-secret", DefaultTokenTTL)
	require.NoError(t, err)
	tm.now = func() time.Time { return issuedAt }

	token, err := tm.Issue("7", RoleViewer, "admin")
	require.NoError(t, err)

	// Still valid one minute before the 24h boundary.
	tm.now = func() time.Time { return issuedAt.Add(24*time.Hour - time.Minute) }
	claims, err := tm.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "7", claims.Subject)

	// Invalid one minute past the boundary, even though the signature
	// was correct at issue time.
	tm.now = func() time.Time { return issuedAt.Add(24*time.Hour + time.Minute) }
	_, err = tm.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbageAndWrongKey(t *testing.T) {
	tm, err := NewTokenManager("test-secret", DefaultTokenTTL)
	require.NoError(t, err)

	_, err = tm.Verify("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)

	other, err := NewTokenManager("a-different-secret", DefaultTokenTTL)
	require.NoError(t, err)
	token, err := other.Issue("9", RoleAdmin, "admin")
	require.NoError(t, err)

	_, err = tm.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
