package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blogspace/backend/internal/models"
	"github.com/blogspace/backend/libs/apperrors"
	"github.com/blogspace/backend/libs/auth/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupAuthRouter(svc AuthService) chi.Router {
	r := chi.NewRouter()
	NewAuthHandler(svc, zap.NewNop()).RegisterRoutes(r, passThrough, passThrough)
	return r
}

func TestAuthHandler_Signup(t *testing.T) {
	okResp := &models.AuthResponse{
		Token: "token",
		User:  &models.User{ID: "user-1", Email: "ann@example.com", Name: "Ann", PasswordHash: "secret-hash", Role: models.RoleUser},
	}

	tests := []struct {
		name           string
		path           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedCalled bool
		checkBody      func(t *testing.T, body []byte)
	}{
		{
			name:           "success never exposes the password hash",
			path:           "/auth/signup",
			body:           `{"email":"ann@example.com","password":"secret1","name":"Ann"}`,
			expectedStatus: http.StatusOK,
			expectedCalled: true,
			checkBody: func(t *testing.T, body []byte) {
				assert.NotContains(t, string(body), "password")
				assert.NotContains(t, string(body), "secret-hash")
				var resp map[string]any
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, "token", resp["token"])
			},
		},
		{
			name:           "register alias",
			path:           "/auth/register",
			body:           `{"email":"ann@example.com","password":"secret1","name":"Ann"}`,
			expectedStatus: http.StatusOK,
			expectedCalled: true,
		},
		{
			name:           "validation lists every failing field",
			path:           "/auth/signup",
			body:           `{"email":"not-an-email","password":"123","name":"A"}`,
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body []byte) {
				var resp struct {
					Message string                 `json:"message"`
					Errors  []apperrors.FieldError `json:"errors"`
				}
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, "Validation error", resp.Message)
				assert.Len(t, resp.Errors, 3)
			},
		},
		{
			name:           "malformed body",
			path:           "/auth/signup",
			body:           `{"email":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "duplicate email",
			path:           "/auth/signup",
			body:           `{"email":"ann@example.com","password":"secret1","name":"Ann"}`,
			serviceErr:     apperrors.Conflict("User already exists"),
			expectedStatus: http.StatusBadRequest,
			expectedCalled: true,
			checkBody: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"message":"User already exists"}`, string(body))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthService{resp: okResp, err: tt.serviceErr}
			w := httptest.NewRecorder()
			setupAuthRouter(svc).ServeHTTP(w, newRequest(http.MethodPost, tt.path, tt.body, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCalled, svc.called)
			if tt.checkBody != nil {
				tt.checkBody(t, w.Body.Bytes())
			}
		})
	}
}

func TestAuthHandler_Signin(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		serviceErr     error
		expectedStatus int
		expectedBody   string
	}{
		{name: "success", path: "/auth/signin", expectedStatus: http.StatusOK},
		{name: "login alias", path: "/auth/login", expectedStatus: http.StatusOK},
		{
			name:           "invalid credentials",
			path:           "/auth/signin",
			serviceErr:     apperrors.ErrInvalidCredentials,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"message":"Invalid credentials"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthService{resp: &models.AuthResponse{Token: "token"}, err: tt.serviceErr}
			w := httptest.NewRecorder()
			body := `{"email":"ann@example.com","password":"secret1"}`
			setupAuthRouter(svc).ServeHTTP(w, newRequest(http.MethodPost, tt.path, body, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestAuthHandler_Verify(t *testing.T) {
	identity := &service.Identity{ID: "user-1", Email: "ann@example.com", Name: "Ann", Role: "USER"}

	w := httptest.NewRecorder()
	setupAuthRouter(&mockAuthService{}).ServeHTTP(w, newRequest(http.MethodGet, "/auth/verify", "", identity))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":{"id":"user-1","email":"ann@example.com","name":"Ann","role":"USER"}}`, w.Body.String())

	w = httptest.NewRecorder()
	setupAuthRouter(&mockAuthService{}).ServeHTTP(w, newRequest(http.MethodGet, "/auth/verify", "", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
