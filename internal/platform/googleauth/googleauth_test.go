package googleauth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"

	"github.com/trackerworkflow/tracker-api/internal/config"
	"github.com/trackerworkflow/tracker-api/internal/platform/cache"
)

func newTestService(t *testing.T, validate validateFunc) *Service {
	t.Helper()

	svc := NewService(config.GoogleConfig{
		ClientID:     "test-client-id",
		ClientSecret: "test-client-secret",
		RedirectURI:  "http://localhost:3000/auth/callback",
	}, cache.New[UserInfo](0), nil)
	svc.validate = validate
	return svc
}

func TestVerifyIDToken(t *testing.T) {
	t.Parallel()

	t.Run("valid token extracts identity", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t, func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
			assert.Equal(t, "raw-token", token)
			assert.Equal(t, "test-client-id", audience)
			return &idtoken.Payload{
				Subject: "google-sub-123",
				Claims: map[string]interface{}{
					"email":   "alice@example.com",
					"name":    "Alice",
					"picture": "https://example.com/alice.png",
				},
			}, nil
		})

		info, err := svc.VerifyIDToken(context.Background(), "raw-token")
		require.NoError(t, err)
		assert.Equal(t, "google-sub-123", info.Sub)
		assert.Equal(t, "alice@example.com", info.Email)
		assert.Equal(t, "Alice", info.Name)
		assert.Equal(t, "https://example.com/alice.png", info.Picture)
	})

	t.Run("verification failure maps to ErrInvalidToken", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t, func(_ context.Context, _, _ string) (*idtoken.Payload, error) {
			return nil, errors.New("signature mismatch")
		})

		_, err := svc.VerifyIDToken(context.Background(), "bad-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing email claim is rejected", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t, func(_ context.Context, _, _ string) (*idtoken.Payload, error) {
			return &idtoken.Payload{Subject: "sub", Claims: map[string]interface{}{}}, nil
		})

		_, err := svc.VerifyIDToken(context.Background(), "token-without-email")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("second verification hits the cache", func(t *testing.T) {
		t.Parallel()

		calls := 0
		svc := newTestService(t, func(_ context.Context, _, _ string) (*idtoken.Payload, error) {
			calls++
			return &idtoken.Payload{
				Subject: "sub",
				Claims:  map[string]interface{}{"email": "bob@example.com"},
			}, nil
		})

		_, err := svc.VerifyIDToken(context.Background(), "repeat-token")
		require.NoError(t, err)
		info, err := svc.VerifyIDToken(context.Background(), "repeat-token")
		require.NoError(t, err)

		assert.Equal(t, 1, calls, "cached token should not be re-verified")
		assert.Equal(t, "bob@example.com", info.Email)
	})

	t.Run("disabled service returns ErrNotConfigured", func(t *testing.T) {
		t.Parallel()

		svc := NewService(config.GoogleConfig{}, cache.New[UserInfo](0), nil)
		_, err := svc.VerifyIDToken(context.Background(), "any")
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}

func TestAuthCodeURL(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	url := svc.AuthCodeURL("state-token")

	assert.Contains(t, url, "client_id=test-client-id")
	assert.Contains(t, url, "access_type=offline")
	assert.Contains(t, url, "prompt=consent")
	assert.Contains(t, url, "state=state-token")
}
