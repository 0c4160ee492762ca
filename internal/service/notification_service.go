package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/trackerworkflow/tracker-api/internal/domain"
	"github.com/trackerworkflow/tracker-api/internal/store"
)

// NotificationService exposes a recipient's notification inbox. Recipients
// are display names, matching the namespace used by task assignees and
// @mentions.
type NotificationService interface {
	ListNotifications(ctx context.Context, recipient string, offset, limit int) ([]*domain.Notification, error)
	UnreadCount(ctx context.Context, recipient string) (int, error)
	MarkRead(ctx context.Context, id uuid.UUID, recipient string) error

	// MarkAllRead marks every unread notification read and returns how
	// many were affected.
	MarkAllRead(ctx context.Context, recipient string) (int, error)

	DeleteNotification(ctx context.Context, id uuid.UUID, recipient string) error
}

// NotificationServiceImpl implements NotificationService.
type NotificationServiceImpl struct {
	notificationStore store.NotificationStore
	logger            *slog.Logger
}

// NewNotificationService creates a NotificationService.
func NewNotificationService(notificationStore store.NotificationStore, logger *slog.Logger) *NotificationServiceImpl {
	return &NotificationServiceImpl{
		notificationStore: notificationStore,
		logger:            logger.With(slog.String("component", "notification_service")),
	}
}

var _ NotificationService = (*NotificationServiceImpl)(nil)

func (s *NotificationServiceImpl) ListNotifications(ctx context.Context, recipient string, offset, limit int) ([]*domain.Notification, error) {
	notifications, err := s.notificationStore.ListByRecipient(ctx, recipient, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (s *NotificationServiceImpl) UnreadCount(ctx context.Context, recipient string) (int, error) {
	count, err := s.notificationStore.CountUnread(ctx, recipient)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (s *NotificationServiceImpl) MarkRead(ctx context.Context, id uuid.UUID, recipient string) error {
	if err := s.notificationStore.MarkRead(ctx, id, recipient); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (s *NotificationServiceImpl) MarkAllRead(ctx context.Context, recipient string) (int, error) {
	count, err := s.notificationStore.MarkAllRead(ctx, recipient)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}

	s.logger.Debug("marked notifications read", "count", count)
	return count, nil
}

func (s *NotificationServiceImpl) DeleteNotification(ctx context.Context, id uuid.UUID, recipient string) error {
	if err := s.notificationStore.Delete(ctx, id, recipient); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}
