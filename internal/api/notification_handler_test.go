package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackerworkflow/tracker-api/internal/domain"
	"github.com/trackerworkflow/tracker-api/internal/store"
)

func notificationRouter(h *NotificationHandler) chi.Router {
	r := chi.NewRouter()
	r.Get("/api/notifications", h.List)
	r.Get("/api/notifications/unread-count", h.UnreadCount)
	r.Post("/api/notifications/read-all", h.MarkAllRead)
	r.Post("/api/notifications/{notificationID}/read", h.MarkRead)
	r.Delete("/api/notifications/{notificationID}", h.Delete)
	return r
}

func notificationTestUser(t *testing.T) *domain.User {
	t.Helper()
	user, err := domain.NewUser("bob@example.com", "a long enough password")
	require.NoError(t, err)
	user.Name = "Bob"
	return user
}

func TestNotificationListEndpoint(t *testing.T) {
	t.Parallel()

	user := notificationTestUser(t)

	t.Run("list addresses the caller's display name", func(t *testing.T) {
		t.Parallel()

		notification, err := domain.NewNotification("Bob", domain.NotificationTypeMention,
			"You were mentioned", "alice mentioned you in task \"T\": hi", uuid.New(), uuid.New())
		require.NoError(t, err)

		notifSvc := &stubNotificationService{notifications: []*domain.Notification{notification}}
		h := NewNotificationHandler(notifSvc, &stubUserService{user: user})

		w := httptest.NewRecorder()
		r := authenticatedRequest(http.MethodGet, "/api/notifications", nil, user.ID)
		notificationRouter(h).ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Bob", notifSvc.gotRecipient)

		var got []*domain.Notification
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, domain.NotificationTypeMention, got[0].Type)
	})

	t.Run("empty inbox serializes as an array", func(t *testing.T) {
		t.Parallel()

		h := NewNotificationHandler(&stubNotificationService{}, &stubUserService{user: user})

		w := httptest.NewRecorder()
		r := authenticatedRequest(http.MethodGet, "/api/notifications", nil, user.ID)
		notificationRouter(h).ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})
}

func TestNotificationUnreadCountEndpoint(t *testing.T) {
	t.Parallel()

	user := notificationTestUser(t)
	h := NewNotificationHandler(&stubNotificationService{unread: 3}, &stubUserService{user: user})

	w := httptest.NewRecorder()
	r := authenticatedRequest(http.MethodGet, "/api/notifications/unread-count", nil, user.ID)
	notificationRouter(h).ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"unread_count":3}`, w.Body.String())
}

func TestNotificationMarkReadEndpoints(t *testing.T) {
	t.Parallel()

	user := notificationTestUser(t)

	t.Run("mark one read", func(t *testing.T) {
		t.Parallel()

		notifSvc := &stubNotificationService{}
		h := NewNotificationHandler(notifSvc, &stubUserService{user: user})

		w := httptest.NewRecorder()
		r := authenticatedRequest(http.MethodPost, "/api/notifications/"+uuid.NewString()+"/read", nil, user.ID)
		notificationRouter(h).ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Bob", notifSvc.gotRecipient)
	})

	t.Run("mark read on foreign notification returns 404", func(t *testing.T) {
		t.Parallel()

		notifSvc := &stubNotificationService{err: store.ErrNotificationNotFound}
		h := NewNotificationHandler(notifSvc, &stubUserService{user: user})

		w := httptest.NewRecorder()
		r := authenticatedRequest(http.MethodPost, "/api/notifications/"+uuid.NewString()+"/read", nil, user.ID)
		notificationRouter(h).ServeHTTP(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("mark all read reports the count", func(t *testing.T) {
		t.Parallel()

		h := NewNotificationHandler(&stubNotificationService{markedAll: 5}, &stubUserService{user: user})

		w := httptest.NewRecorder()
		r := authenticatedRequest(http.MethodPost, "/api/notifications/read-all", nil, user.ID)
		notificationRouter(h).ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"updated":5}`, w.Body.String())
	})
}

func TestNotificationDeleteEndpoint(t *testing.T) {
	t.Parallel()

	user := notificationTestUser(t)
	h := NewNotificationHandler(&stubNotificationService{}, &stubUserService{user: user})

	w := httptest.NewRecorder()
	r := authenticatedRequest(http.MethodDelete, "/api/notifications/"+uuid.NewString(), nil, user.ID)
	notificationRouter(h).ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}
