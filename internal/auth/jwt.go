// Package auth issue and validate access tokens and handle login/logout.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// JwtIssuer is the issuer claim of every token signed by this service.
const JwtIssuer = "FindJob"

const defaultTokenDuration = time.Hour

// TokenManager signs and validates HS256 access tokens.
type TokenManager struct {
	secret   []byte
	duration time.Duration
}

// NewTokenManager creates a TokenManager. A non-positive duration falls back to one hour.
func NewTokenManager(secret string, duration time.Duration) *TokenManager {
	if duration <= 0 {
		duration = defaultTokenDuration
	}
	return &TokenManager{secret: []byte(secret), duration: duration}
}

// GenerateToken sign an access token for user id.
func (tm *TokenManager) GenerateToken(id uuid.UUID) (string, time.Time, error) {
	return tm.GenerateTokenWithDuration(id, tm.duration, JwtIssuer)
}

// GenerateTokenWithDuration sign a token with explicit lifetime and issuer.
func (tm *TokenManager) GenerateTokenWithDuration(id uuid.UUID, d time.Duration, issuer string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(d)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    issuer,
		Subject:   id.String(),
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(now),
	})

	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, exp, nil
}

// ValidatedToken parse encodeToken into *jwt.RegisteredClaims and verify signature and expiry.
func (tm *TokenManager) ValidatedToken(encodeToken string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(encodeToken, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, isvalid := token.Method.(*jwt.SigningMethodHMAC); !isvalid {
			return nil, fmt.Errorf("invalid token")
		}
		return tm.secret, nil
	})
}
