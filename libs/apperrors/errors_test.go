package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindConflict, http.StatusBadRequest},
		{KindBadRequest, http.StatusBadRequest},
		{KindAuthRequired, http.StatusUnauthorized},
		{KindInvalidToken, http.StatusUnauthorized},
		{KindUserNotFound, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, Status(tt.kind))
		})
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{name: "plain error", err: errors.New("boom"), expected: KindInternal},
		{name: "nil", err: nil, expected: KindInternal},
		{name: "sentinel", err: ErrInvalidToken, expected: KindInvalidToken},
		{name: "wrapped sentinel", err: fmt.Errorf("verify: %w", ErrUserNotFound), expected: KindUserNotFound},
		{name: "constructor", err: Forbidden("nope"), expected: KindForbidden},
		{name: "validation", err: Validation(FieldError{Field: "email", Message: "Invalid email format"}), expected: KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KindOf(tt.err))
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Internal server error: connection refused", err.Error())
	assert.Equal(t, "Invalid token", ErrInvalidToken.Error())
}

func TestSentinelIdentity(t *testing.T) {
	wrapped := fmt.Errorf("%w: %w", ErrInvalidToken, errors.New("token is expired"))

	assert.ErrorIs(t, wrapped, ErrInvalidToken)
	assert.NotErrorIs(t, wrapped, ErrAuthRequired)
}
