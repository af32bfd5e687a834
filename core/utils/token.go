package utils

import (
	"fmt"
	"strings"
	"time"

	"time2gather/core/errors"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the subset of the upstream session token the BFF relies on.
type TokenClaims struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username,omitempty"`
	Provider string `json:"provider,omitempty"`
	jwt.RegisteredClaims
}

// GetTokenFromHeader strips the Bearer prefix from an Authorization header.
func GetTokenFromHeader(header string) (string, error) {
	if header == "" {
		return "", errors.NewAppError(errors.ErrMissingAuthorizationHeader, "missing authorization header", nil)
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errors.NewAppError(errors.ErrInvalidTokenFormat, "invalid authorization header format", nil)
	}
	return strings.TrimSpace(parts[1]), nil
}

func ValidateAndParseToken(token, secret string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.NewAppError(errors.ErrTokenExpired, "token expired", err)
		}
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid token", err)
	}
	if !parsed.Valid || claims.UserID == 0 {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid token claims", nil)
	}
	return claims, nil
}

// GenerateToken signs claims with HS256. The upstream API issues real tokens; this is used by tests and
// local tooling.
func GenerateToken(userID int64, username, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
