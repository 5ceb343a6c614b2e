package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"virtual-card-wallet/internal/core/ports"
	"virtual-card-wallet/pkg/apperror"
)

// JWTTokenService implements ports.TokenService using HS256 JWT. Each
// token carries a unique session ID in the jti claim so sessions can be
// revoked independently of the signature expiry.
type JWTTokenService struct {
	secret []byte
	expiry time.Duration
	issuer string
}

// NewJWTTokenService creates a new JWT token service.
func NewJWTTokenService(secret string, expiry time.Duration, issuer string) *JWTTokenService {
	return &JWTTokenService{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
	}
}

// Generate creates a signed session token for the given account.
func (s *JWTTokenService) Generate(email string) (string, string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiry)
	sessionID := uuid.NewString()

	claims := jwt.MapClaims{
		"sub": email,
		"jti": sessionID,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
		"iss": s.issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}

	return tokenString, sessionID, expiresAt, nil
}

// Validate parses a session token and returns its claims.
func (s *JWTTokenService) Validate(tokenString string) (*ports.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, apperror.ErrInvalidToken()
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, apperror.ErrInvalidToken()
	}

	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		return nil, apperror.ErrInvalidToken()
	}
	sessionID, ok := claims["jti"].(string)
	if !ok || sessionID == "" {
		return nil, apperror.ErrInvalidToken()
	}

	return &ports.TokenClaims{
		Email:     email,
		SessionID: sessionID,
	}, nil
}
