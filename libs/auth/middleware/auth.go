package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/blogspace/backend/libs/apperrors"
	"github.com/blogspace/backend/libs/auth/service"
	"github.com/blogspace/backend/libs/handlers"
	"go.uber.org/zap"
)

type contextKey string

const identityKey contextKey = "identity"

// TokenVerifier validates a session token and returns its claims
type TokenVerifier interface {
	Verify(token string) (*service.Claims, error)
}

// IdentityLoader resolves a user id to the current stored identity.
// It must return apperrors.ErrUserNotFound when the user no longer exists.
type IdentityLoader interface {
	LoadIdentity(ctx context.Context, userID string) (*service.Identity, error)
}

// AuthMiddleware verifies the bearer token, reloads the user from the store
// and attaches the identity to the request context
func AuthMiddleware(verifier TokenVerifier, loader IdentityLoader, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				handlers.WriteError(w, r, logger, apperrors.ErrAuthRequired)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				handlers.WriteError(w, r, logger, err)
				return
			}

			// The token only proves who the caller was; role and existence come from the store
			identity, err := loader.LoadIdentity(r.Context(), claims.UserID)
			if err != nil {
				handlers.WriteError(w, r, logger, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header value
func bearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// WithIdentity returns a copy of ctx carrying identity
func WithIdentity(ctx context.Context, identity *service.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentity retrieves the authenticated identity from context
func GetIdentity(ctx context.Context) (*service.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*service.Identity)
	return identity, ok && identity != nil
}

// GetUserID retrieves the authenticated user ID from context
func GetUserID(ctx context.Context) (string, bool) {
	identity, ok := GetIdentity(ctx)
	if !ok {
		return "", false
	}
	return identity.ID, true
}
