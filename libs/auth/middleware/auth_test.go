package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blogspace/backend/libs/apperrors"
	"github.com/blogspace/backend/libs/auth/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockIdentityLoader is a mock implementation of IdentityLoader
type mockIdentityLoader struct {
	identities map[string]*service.Identity
	err        error
	calls      int
}

func (m *mockIdentityLoader) LoadIdentity(ctx context.Context, userID string) (*service.Identity, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	identity, ok := m.identities[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return identity, nil
}

func okHandler(t *testing.T, captured **service.Identity) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := GetIdentity(r.Context())
		require.True(t, ok)
		*captured = identity
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	tg := service.NewTokenGenerator("test-secret", time.Hour)
	ann := &service.Identity{ID: "user-1", Email: "a@x.com", Name: "Ann", Role: "USER"}

	validToken, err := tg.Issue("user-1", "USER")
	require.NoError(t, err)
	deletedUserToken, err := tg.Issue("user-2", "USER")
	require.NoError(t, err)
	expiredToken, err := tg.WithClock(func() time.Time { return time.Now().Add(-48 * time.Hour) }).Issue("user-1", "USER")
	require.NoError(t, err)
	staleAdminToken, err := tg.Issue("user-1", "ADMIN")
	require.NoError(t, err)

	tests := []struct {
		name             string
		header           string
		loaderErr        error
		expectedStatus   int
		expectedBody     string
		expectedIdentity *service.Identity
		expectedLookups  int
	}{
		{
			name:             "valid token",
			header:           "Bearer " + validToken,
			expectedStatus:   http.StatusOK,
			expectedIdentity: ann,
			expectedLookups:  1,
		},
		{
			name:             "scheme is case-insensitive",
			header:           "bearer " + validToken,
			expectedStatus:   http.StatusOK,
			expectedIdentity: ann,
			expectedLookups:  1,
		},
		{
			name:             "role comes from the store, not the token",
			header:           "Bearer " + staleAdminToken,
			expectedStatus:   http.StatusOK,
			expectedIdentity: ann,
			expectedLookups:  1,
		},
		{
			name:           "missing header",
			header:         "",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"message":"Authentication required"}`,
		},
		{
			name:           "wrong scheme",
			header:         "Basic " + validToken,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"message":"Authentication required"}`,
		},
		{
			name:           "bearer without token",
			header:         "Bearer ",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"message":"Authentication required"}`,
		},
		{
			name:           "garbage token",
			header:         "Bearer abc.def.ghi",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"message":"Invalid token"}`,
		},
		{
			name:           "expired token",
			header:         "Bearer " + expiredToken,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"message":"Invalid token"}`,
		},
		{
			name:            "user deleted after token was issued",
			header:          "Bearer " + deletedUserToken,
			expectedStatus:  http.StatusUnauthorized,
			expectedBody:    `{"message":"User not found"}`,
			expectedLookups: 1,
		},
		{
			name:            "store failure",
			header:          "Bearer " + validToken,
			loaderErr:       errors.New("connection refused"),
			expectedStatus:  http.StatusInternalServerError,
			expectedBody:    `{"message":"Internal server error"}`,
			expectedLookups: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := &mockIdentityLoader{
				identities: map[string]*service.Identity{"user-1": ann},
				err:        tt.loaderErr,
			}
			var captured *service.Identity
			handler := AuthMiddleware(tg, loader, zap.NewNop())(okHandler(t, &captured))

			req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
			assert.Equal(t, tt.expectedIdentity, captured)
			assert.Equal(t, tt.expectedLookups, loader.calls)
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header   string
		expected string
	}{
		{"Bearer abc", "abc"},
		{"BEARER abc", "abc"},
		{"  Bearer   abc  ", "abc"},
		{"Bearer", ""},
		{"Token abc", ""},
		{"abc", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.expected, bearerToken(tt.header))
		})
	}
}

func TestGetUserID(t *testing.T) {
	_, ok := GetUserID(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), &service.Identity{ID: "user-1"})
	userID, ok := GetUserID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "user-1", userID)

	_, ok = GetIdentity(WithIdentity(context.Background(), nil))
	assert.False(t, ok)
}
