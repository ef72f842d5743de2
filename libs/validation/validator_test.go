package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/blogspace/backend/libs/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
}

type postRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=100"`
	Content string `json:"content" validate:"required,notblank"`
}

func (r *postRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
}

type patchRequest struct {
	Title *string `json:"title" validate:"omitempty,min=1,max=100"`
	Role  *string `json:"role" validate:"omitempty,oneof=USER ADMIN"`
}

func (r patchRequest) IsEmpty() bool {
	return r.Title == nil && r.Role == nil
}

func strPtr(s string) *string {
	return &s
}

func fieldErrors(t *testing.T, err error) []apperrors.FieldError {
	t.Helper()
	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
	return appErr.Fields
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name           string
		input          any
		expectedFields []apperrors.FieldError
	}{
		{
			name:  "valid signup",
			input: &signupRequest{Email: "a@x.com", Password: "secret1", Name: "Ann"},
		},
		{
			name:  "every failing field is reported",
			input: &signupRequest{Email: "not-an-email", Password: "123", Name: "A"},
			expectedFields: []apperrors.FieldError{
				{Field: "email", Message: "Invalid email format"},
				{Field: "password", Message: "Password must be at least 6 characters"},
				{Field: "name", Message: "Name must be at least 2 characters"},
			},
		},
		{
			name:  "missing fields",
			input: &signupRequest{},
			expectedFields: []apperrors.FieldError{
				{Field: "email", Message: "Email is required"},
				{Field: "password", Message: "Password is required"},
				{Field: "name", Message: "Name is required"},
			},
		},
		{
			name:  "password over bcrypt limit",
			input: &signupRequest{Email: "a@x.com", Password: string(make([]byte, 73)), Name: "Ann"},
			expectedFields: []apperrors.FieldError{
				{Field: "password", Message: "Password must be at most 72 bytes"},
			},
		},
		{
			name:  "password limit counts bytes not characters",
			input: &signupRequest{Email: "a@x.com", Password: strings.Repeat("é", 40), Name: "Ann"},
			expectedFields: []apperrors.FieldError{
				{Field: "password", Message: "Password must be at most 72 bytes"},
			},
		},
		{
			name:  "multibyte password at the byte limit",
			input: &signupRequest{Email: "a@x.com", Password: strings.Repeat("é", 36), Name: "Ann"},
		},
		{
			name:  "whitespace only title is trimmed to empty",
			input: &postRequest{Title: "   ", Content: "Body"},
			expectedFields: []apperrors.FieldError{
				{Field: "title", Message: "Title is required"},
			},
		},
		{
			name:  "whitespace only content",
			input: &postRequest{Title: "Hello", Content: " \n\t "},
			expectedFields: []apperrors.FieldError{
				{Field: "content", Message: "Content must not be blank"},
			},
		},
		{
			name:  "optional pointer fields absent but one present",
			input: &patchRequest{Role: strPtr("ADMIN")},
		},
		{
			name:  "optional field present and invalid",
			input: &patchRequest{Role: strPtr("ROOT")},
			expectedFields: []apperrors.FieldError{
				{Field: "role", Message: "Role must be one of: USER, ADMIN"},
			},
		},
		{
			name:  "no optional fields",
			input: &patchRequest{},
			expectedFields: []apperrors.FieldError{
				{Field: "body", Message: "At least one field must be provided"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)

			if tt.expectedFields == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.expectedFields, fieldErrors(t, err))
		})
	}
}

func TestStruct_NormalizesBeforeValidating(t *testing.T) {
	req := &postRequest{Title: "  Hello  ", Content: "Body"}

	require.NoError(t, Struct(req))
	assert.Equal(t, "Hello", req.Title)
}
