package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/blogspace/backend/libs/apperrors"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenExpiry is the validity window of a session token
const DefaultTokenExpiry = 24 * time.Hour

// Claims is the payload of a session token
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the authenticated caller resolved from the credential store
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// TokenGenerator issues and verifies HS256 session tokens
type TokenGenerator struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewTokenGenerator creates a new token generator.
// A non-positive expiry falls back to DefaultTokenExpiry.
func NewTokenGenerator(secret string, expiry time.Duration) *TokenGenerator {
	if expiry <= 0 {
		expiry = DefaultTokenExpiry
	}
	return &TokenGenerator{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

// WithClock returns a copy of the generator that reads time from now
func (tg *TokenGenerator) WithClock(now func() time.Time) *TokenGenerator {
	clone := *tg
	clone.now = now
	return &clone
}

// Issue creates a signed token for the user that expires after the configured window
func (tg *TokenGenerator) Issue(userID, role string) (string, error) {
	if userID == "" {
		return "", errors.New("user id is required")
	}

	issuedAt := tg.now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(tg.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tg.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify checks the signature, algorithm and expiry of a token and returns its claims.
// Every failure wraps apperrors.ErrInvalidToken.
func (tg *TokenGenerator) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return tg.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tg.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("%w: token is invalid", apperrors.ErrInvalidToken)
	}

	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: userId not found in token", apperrors.ErrInvalidToken)
	}

	if claims.Role == "" {
		return nil, fmt.Errorf("%w: role not found in token", apperrors.ErrInvalidToken)
	}

	return claims, nil
}
