package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/blogspace/backend/libs/apperrors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor used for new hashes
const PasswordCost = bcrypt.DefaultCost

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// HashPassword returns a salted bcrypt hash of the plaintext password.
// Passwords over 72 bytes are rejected with a validation error.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperrors.Validation(apperrors.FieldError{
			Field:   "password",
			Message: "Password must be at most 72 bytes",
		})
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CheckPasswordAgainstDummy spends the same time as CheckPassword for accounts that do not exist.
// It always returns false.
func CheckPasswordAgainstDummy(password string) bool {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), PasswordCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
	return false
}
