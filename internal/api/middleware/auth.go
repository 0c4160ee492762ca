package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/trackerworkflow/tracker-api/internal/api/shared"
	"github.com/trackerworkflow/tracker-api/internal/redact"
	"github.com/trackerworkflow/tracker-api/internal/service/auth"
)

// AuthMiddleware guards routes behind JWT bearer authentication.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates an AuthMiddleware using the given JWT service.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// Authenticate validates the Authorization bearer token and stores the
// authenticated user's ID in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrWrongTokenType),
				errors.Is(err, auth.ErrTokenNotYetValid):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				slog.Error("failed to validate token", "error", redact.Error(err))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		ctx := shared.WithUserID(r.Context(), claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the authenticated user's ID from the request context.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	return shared.UserIDFromContext(r.Context())
}
