package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/blogspace/backend/libs/apperrors"
	"github.com/blogspace/backend/libs/handlers"
	"go.uber.org/zap"
)

// RoleMiddleware rejects requests whose authenticated identity does not hold requiredRole.
// It must be mounted after AuthMiddleware.
func RoleMiddleware(requiredRole string, logger *zap.Logger) func(http.Handler) http.Handler {
	forbidden := apperrors.Forbidden(fmt.Sprintf("%s access required", roleLabel(requiredRole)))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := GetIdentity(r.Context())
			if !ok {
				handlers.WriteError(w, r, logger, apperrors.ErrAuthRequired)
				return
			}

			if identity.Role != requiredRole {
				logger.Warn("insufficient role",
					zap.String("user_id", identity.ID),
					zap.String("role", identity.Role),
					zap.String("required_role", requiredRole),
					zap.String("path", r.URL.Path),
				)
				handlers.WriteError(w, r, logger, forbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// roleLabel turns "ADMIN" into "Admin"
func roleLabel(role string) string {
	if role == "" {
		return "Privileged"
	}
	return strings.ToUpper(role[:1]) + strings.ToLower(role[1:])
}
