package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	require.True(t, CheckPassword(hash, "s3cret-pass"))
	require.False(t, CheckPassword(hash, "wrong-pass"))
}

func TestCheckPasswordRejectsLegacyPlaintext(t *testing.T) {
	// A plaintext "hash" left over from a legacy record must fail
	// comparison instead of matching byte-for-byte.
	require.False(t, CheckPassword("s3cret-pass", "s3cret-pass"))
}
