package api

import (
	"net/http"

	"github.com/trackerworkflow/tracker-api/internal/api/shared"
	"github.com/trackerworkflow/tracker-api/internal/domain"
	"github.com/trackerworkflow/tracker-api/internal/service"
)

// NotificationHandler exposes the authenticated user's notification
// inbox. Notifications are addressed to display names, so each endpoint
// first resolves the caller's account to its display name.
type NotificationHandler struct {
	notificationService service.NotificationService
	userService         service.UserService
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(
	notificationService service.NotificationService,
	userService service.UserService,
) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		userService:         userService,
	}
}

// List handles GET /api/notifications.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	recipient, ok := h.recipient(w, r)
	if !ok {
		return
	}
	offset, limit := pageParams(r)

	notifications, err := h.notificationService.ListNotifications(r.Context(), recipient, offset, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	if notifications == nil {
		notifications = []*domain.Notification{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, notifications)
}

// UnreadCount handles GET /api/notifications/unread-count.
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	recipient, ok := h.recipient(w, r)
	if !ok {
		return
	}

	count, err := h.notificationService.UnreadCount(r.Context(), recipient)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UnreadCountResponse{UnreadCount: count})
}

// MarkRead handles POST /api/notifications/{notificationID}/read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	recipient, ok := h.recipient(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "notificationID")
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(r.Context(), id, recipient); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"message": "notification marked read"})
}

// MarkAllRead handles POST /api/notifications/read-all.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	recipient, ok := h.recipient(w, r)
	if !ok {
		return
	}

	count, err := h.notificationService.MarkAllRead(r.Context(), recipient)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MarkAllReadResponse{Updated: count})
}

// Delete handles DELETE /api/notifications/{notificationID}.
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	recipient, ok := h.recipient(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "notificationID")
	if !ok {
		return
	}

	if err := h.notificationService.DeleteNotification(r.Context(), id, recipient); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"message": "notification deleted"})
}

func (h *NotificationHandler) recipient(w http.ResponseWriter, r *http.Request) (string, bool) {
	user, err := currentUser(r, h.userService)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return "", false
	}
	return user.DisplayName(), true
}
