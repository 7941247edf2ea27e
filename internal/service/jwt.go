package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// minSecretLen is the minimum accepted HMAC secret length in bytes.
const minSecretLen = 32

// Claims represents the session token claims. Only the subject user ID is
// embedded; role and permissions are resolved fresh on every request.
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService defines session token operations.
type TokenService interface {
	Generate(userID int64) (string, error)
	Validate(tokenString string) (*Claims, error)
	Expiry() time.Duration
}

type tokenService struct {
	secret string
	expiry time.Duration
}

// NewTokenService creates a new TokenService instance. The secret must be at
// least 32 bytes.
func NewTokenService(secret string, expiry time.Duration) (TokenService, error) {
	if len(secret) < minSecretLen {
		return nil, errors.New("jwt secret must be at least 32 bytes")
	}
	return &tokenService{secret: secret, expiry: expiry}, nil
}

func (s *tokenService) Generate(userID int64) (string, error) {
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

func (s *tokenService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

func (s *tokenService) Expiry() time.Duration {
	return s.expiry
}
