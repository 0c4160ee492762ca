package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trackerworkflow/tracker-api/internal/domain"
	"github.com/trackerworkflow/tracker-api/internal/platform/gemini"
	"github.com/trackerworkflow/tracker-api/internal/platform/googleauth"
	"github.com/trackerworkflow/tracker-api/internal/service"
	"github.com/trackerworkflow/tracker-api/internal/service/auth"
	"github.com/trackerworkflow/tracker-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"wrong token type", auth.ErrWrongTokenType, http.StatusUnauthorized},
		{"invalid google credential", googleauth.ErrInvalidToken, http.StatusUnauthorized},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"duplicate email", store.ErrEmailExists, http.StatusConflict},
		{"validation failure", domain.ErrValidation, http.StatusBadRequest},
		{"empty ai description", gemini.ErrEmptyDescription, http.StatusBadRequest},
		{"google sign-in disabled", googleauth.ErrNotConfigured, http.StatusServiceUnavailable},
		{"unknown error", errors.New("disk on fire"), http.StatusInternalServerError},
		{"wrapped sentinel", fmt.Errorf("getting task: %w", store.ErrTaskNotFound), http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("known sentinels map to friendly text", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Invalid email or password", GetSafeErrorMessage(service.ErrInvalidCredentials))
		assert.Equal(t, "Task not found", GetSafeErrorMessage(store.ErrTaskNotFound))
		assert.Equal(t, "Email already registered", GetSafeErrorMessage(store.ErrEmailExists))
	})

	t.Run("validation errors keep field-level text", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("%w: title cannot be empty", domain.ErrValidation)
		assert.Contains(t, GetSafeErrorMessage(err), "title cannot be empty")
	})

	t.Run("unknown errors never leak detail", func(t *testing.T) {
		t.Parallel()
		err := errors.New("pq: connection refused host=db-prod-1")
		msg := GetSafeErrorMessage(err)
		assert.Equal(t, "An unexpected error occurred", msg)
		assert.NotContains(t, msg, "db-prod-1")
	})

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	})
}
