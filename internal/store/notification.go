package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/trackerworkflow/tracker-api/internal/domain"
)

// NotificationStore defines the interface for notification persistence.
// Rows are written by the task fan-out flow and consumed by the
// notification-listing endpoints.
type NotificationStore interface {
	// Create saves a new notification to the store.
	Create(ctx context.Context, notification *domain.Notification) error

	// ListByRecipient retrieves a recipient's notifications, newest first.
	ListByRecipient(ctx context.Context, recipient string, offset, limit int) ([]*domain.Notification, error)

	// CountUnread returns the number of unread notifications for a recipient.
	CountUnread(ctx context.Context, recipient string) (int, error)

	// MarkRead marks a single notification as read.
	// Returns ErrNotificationNotFound if it does not exist or belongs to a
	// different recipient.
	MarkRead(ctx context.Context, id uuid.UUID, recipient string) error

	// MarkAllRead marks all of a recipient's notifications as read and
	// returns how many rows changed.
	MarkAllRead(ctx context.Context, recipient string) (int, error)

	// Delete removes a notification.
	// Returns ErrNotificationNotFound if it does not exist or belongs to a
	// different recipient.
	Delete(ctx context.Context, id uuid.UUID, recipient string) error

	// WithTx returns a new NotificationStore instance that uses the
	// provided transaction.
	WithTx(tx *sql.Tx) NotificationStore
}
