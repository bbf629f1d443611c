package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the session token lifetime.
const DefaultTokenTTL = 24 * time.Hour

// ErrInvalidToken covers malformed, mis-signed and expired tokens.
// Callers get a single failure mode; details stay in the server log.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the identity assertions embedded in a session token.
type Claims struct {
	Role Role   `json:"role,omitempty"`
	Type string `json:"type,omitempty"` // "admin" or "user"
	jwt.RegisteredClaims
}

// TokenManager issues and verifies signed session tokens. Tokens are
// stateless: there is no revocation list, a token stays valid until its
// expiry. Logout is a client-side discard.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a manager around a shared HMAC secret. An empty
// secret is a configuration error, not something to default around.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token signing secret is not configured")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs a token for the given subject. Expiry is always issue
// time plus the configured TTL.
func (m *TokenManager) Issue(subject string, role Role, tokenType string) (string, error) {
	now := m.now().UTC()
	claims := Claims{
		Role: role,
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify validates signature and expiry. Anything other than a
// well-formed, correctly signed, unexpired token yields ErrInvalidToken.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
