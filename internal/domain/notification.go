package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// NotificationType identifies the cause of a notification.
type NotificationType string

// Valid notification types.
const (
	// NotificationTypeTaskAssigned is sent to a task's assignee when the
	// task is created or reassigned to them.
	NotificationTypeTaskAssigned NotificationType = "task_assigned"

	// NotificationTypeMention is sent to a user @mentioned in a task
	// description.
	NotificationTypeMention NotificationType = "mention"
)

// IsValid returns true if the type is one of the defined notification types.
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypeTaskAssigned, NotificationTypeMention:
		return true
	}
	return false
}

// Notification-specific validation errors
var (
	// ErrNotificationIDEmpty is returned when a notification ID is empty or nil.
	ErrNotificationIDEmpty = errors.New("notification ID cannot be empty")

	// ErrNotificationRecipientEmpty is returned when a notification has no recipient.
	ErrNotificationRecipientEmpty = errors.New("notification recipient cannot be empty")

	// ErrNotificationTitleEmpty is returned when a notification has no title.
	ErrNotificationTitleEmpty = errors.New("notification title cannot be empty")
)

// Notification is a persisted record surfaced to a recipient through the
// notification-listing endpoints. Recipient is a display name in the same
// namespace as task assignees and @mention tokens.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	Recipient string           `json:"recipient"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	TaskID    uuid.UUID        `json:"task_id,omitempty"`
	ProjectID uuid.UUID        `json:"project_id,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewNotification creates a new unread Notification.
// Returns an error if validation fails.
func NewNotification(
	recipient string,
	notificationType NotificationType,
	title, message string,
	taskID, projectID uuid.UUID,
) (*Notification, error) {
	notification := &Notification{
		ID:        uuid.New(),
		Recipient: recipient,
		Type:      notificationType,
		Title:     title,
		Message:   message,
		TaskID:    taskID,
		ProjectID: projectID,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}

	if err := notification.Validate(); err != nil {
		return nil, err
	}

	return notification, nil
}

// Validate checks if the Notification has valid data.
// Returns an error if any field fails validation.
func (n *Notification) Validate() error {
	if n.ID == uuid.Nil {
		return ErrNotificationIDEmpty
	}

	if n.Recipient == "" {
		return ErrNotificationRecipientEmpty
	}

	if !n.Type.IsValid() {
		return ErrInvalidNotificationType
	}

	if n.Title == "" {
		return ErrNotificationTitleEmpty
	}

	return nil
}
