package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when the token is malformed or its
	// signature does not match.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when the token has expired.
	ErrExpiredToken = errors.New("token has expired")
)

// DefaultLifetime is the fixed session token lifetime from issuance.
const DefaultLifetime = 24 * time.Hour

// Claims are the session claims carried by a token. Tokens are stateless:
// nothing is persisted server-side, so there is no revocation list and
// logout is a client-side token discard. Known limitation: a compromised
// token stays valid until it expires.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Manager signs and verifies session tokens with HMAC-SHA256.
type Manager struct {
	secret   string
	lifetime time.Duration
}

// NewManager creates a Manager signing with secret. Tokens expire lifetime
// after issuance; pass 0 to use DefaultLifetime.
func NewManager(secret string, lifetime time.Duration) *Manager {
	if lifetime == 0 {
		lifetime = DefaultLifetime
	}
	return &Manager{secret: secret, lifetime: lifetime}
}

// Issue signs a token for the given subject.
func (m *Manager) Issue(userID, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secret))
}

// Verify checks the signature and expiry and returns the decoded claims.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(m.secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
