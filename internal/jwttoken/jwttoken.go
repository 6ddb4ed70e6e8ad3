// Package jwttoken issues and validates the HS256 access and refresh
// tokens used by the API. Claims carry the user identity and role so
// authorization never needs a store lookup.
package jwttoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	derrors "angodata/pkg/domain-errors"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims is the signed payload. TokenType separates refresh tokens from
// access tokens so one cannot be replayed as the other.
type Claims struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Service signs and validates tokens with a shared HMAC key.
type Service struct {
	signingKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewService(signingKey string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Identity is the subject a token is minted for.
type Identity struct {
	UserID   string
	Username string
	Email    string
	Role     string
}

func (s *Service) GenerateAccessToken(id Identity) (string, error) {
	return s.generate(id, TokenTypeAccess, s.accessTTL)
}

func (s *Service) GenerateRefreshToken(id Identity) (string, error) {
	return s.generate(id, TokenTypeRefresh, s.refreshTTL)
}

func (s *Service) generate(id Identity, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    id.UserID,
		Username:  id.Username,
		Email:     id.Email,
		Role:      id.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a token. Expired and malformed tokens
// both come back as unauthorized; the caller never learns which.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, derrors.Wrap(err, derrors.CodeUnauthorized, "token expired")
		}
		return nil, derrors.Wrap(err, derrors.CodeUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, derrors.New(derrors.CodeUnauthorized, "invalid token")
	}
	return claims, nil
}

// ValidateRefreshToken validates a token and requires the refresh type.
func (s *Service) ValidateRefreshToken(tokenString string) (*Claims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeRefresh {
		return nil, derrors.New(derrors.CodeUnauthorized, "not a refresh token")
	}
	return claims, nil
}
