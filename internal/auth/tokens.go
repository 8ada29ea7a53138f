package auth

import (
	"fmt"
	"time"

	"courier-track/internal/apperr"
	"courier-track/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// TokenManager issues and parses signed session tokens. Sessions live only
// inside the token; the server keeps no session state.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a TokenManager with the given HMAC secret and token lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

type sessionClaims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// Issue signs a token carrying the session identity.
func (m *TokenManager) Issue(s domain.Session) (string, error) {
	now := m.now()
	claims := sessionClaims{
		Admin: s.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse validates a token and returns the session it carries.
// Any parse or validation failure maps to apperr.Unauthorized.
func (m *TokenManager) Parse(raw string) (domain.Session, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid || claims.Subject == "" {
		return domain.Session{}, apperr.Unauthorized
	}
	return domain.Session{Username: claims.Subject, Admin: claims.Admin}, nil
}
