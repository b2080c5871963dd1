package scope

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "quickcal"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Payload is the verified identity extracted from a bearer token.
type Payload struct {
	UserID string
}

// Manager issues and verifies bearer tokens.
type Manager interface {
	Generate(userID string, ttl time.Duration) (string, error)
	Verify(token string) (Payload, error)
}

// JWTManager is an HMAC-SHA256 JWT implementation of Manager.
type JWTManager struct {
	secret []byte
}

var _ Manager = (*JWTManager)(nil)

// NewJWTManager creates a Manager signing with the given secret.
func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{secret: []byte(secret)}
}

// Generate mints a token for the given user.
func (m *JWTManager) Generate(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the caller identity.
func (m *JWTManager) Verify(tokenStr string) (Payload, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Payload{}, ErrExpiredToken
		}
		return Payload{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return Payload{}, ErrInvalidToken
	}

	return Payload{UserID: claims.Subject}, nil
}
