package api

import (
	"errors"
	"net/http"

	"github.com/trackerworkflow/tracker-api/internal/domain"
	"github.com/trackerworkflow/tracker-api/internal/platform/gemini"
	"github.com/trackerworkflow/tracker-api/internal/platform/googleauth"
	"github.com/trackerworkflow/tracker-api/internal/service"
	"github.com/trackerworkflow/tracker-api/internal/service/auth"
	"github.com/trackerworkflow/tracker-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, googleauth.ErrInvalidToken):
		return http.StatusUnauthorized

	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrProjectNotFound),
		errors.Is(err, store.ErrTaskNotFound),
		errors.Is(err, store.ErrNotificationNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, store.ErrGoogleIDExists):
		return http.StatusConflict

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, gemini.ErrEmptyDescription):
		return http.StatusBadRequest

	case errors.Is(err, googleauth.ErrNotConfigured):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for an
// error. Internal detail never reaches the client; validation errors keep
// their field-level text because it is built from field names only.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid email or password"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken):
		return "Invalid refresh token"

	case errors.Is(err, googleauth.ErrInvalidToken):
		return "Invalid Google credential"

	case errors.Is(err, googleauth.ErrNotConfigured):
		return "Google sign-in is not available"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrProjectNotFound):
		return "Project not found"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrNotificationNotFound):
		return "Notification not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already registered"

	case errors.Is(err, store.ErrGoogleIDExists):
		return "Google account already linked"

	case errors.Is(err, gemini.ErrEmptyDescription):
		return "Task description is required"

	case errors.Is(err, domain.ErrValidation):
		return err.Error()

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}
