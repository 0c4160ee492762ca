package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/trackerworkflow/tracker-api/internal/domain"
	"github.com/trackerworkflow/tracker-api/internal/platform/logger"
	"github.com/trackerworkflow/tracker-api/internal/store"
)

// PostgresNotificationStore implements the store.NotificationStore interface
// using a PostgreSQL database as the storage backend.
type PostgresNotificationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresNotificationStore creates a new PostgreSQL implementation of
// the NotificationStore interface.
func NewPostgresNotificationStore(db store.DBTX, log *slog.Logger) *PostgresNotificationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresNotificationStore{
		db:     db,
		logger: log.With(slog.String("component", "notification_store")),
	}
}

// Ensure PostgresNotificationStore implements store.NotificationStore interface
var _ store.NotificationStore = (*PostgresNotificationStore)(nil)

// Create implements store.NotificationStore.Create
func (s *PostgresNotificationStore) Create(ctx context.Context, notification *domain.Notification) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := notification.Validate(); err != nil {
		log.Warn("notification validation failed during create",
			slog.String("error", err.Error()),
			slog.String("notification_id", notification.ID.String()))
		return err
	}

	query := `
		INSERT INTO notifications (id, recipient, type, title, message, task_id, project_id, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		notification.ID,
		notification.Recipient,
		notification.Type,
		notification.Title,
		notification.Message,
		nullUUID(notification.TaskID),
		nullUUID(notification.ProjectID),
		notification.Read,
		notification.CreatedAt,
	)

	if err != nil {
		log.Error("failed to create notification",
			slog.String("error", err.Error()),
			slog.String("notification_id", notification.ID.String()),
			slog.String("recipient", notification.Recipient))
		return err
	}

	log.Debug("notification created",
		slog.String("notification_id", notification.ID.String()),
		slog.String("recipient", notification.Recipient),
		slog.String("type", string(notification.Type)))
	return nil
}

// ListByRecipient implements store.NotificationStore.ListByRecipient
func (s *PostgresNotificationStore) ListByRecipient(
	ctx context.Context,
	recipient string,
	offset, limit int,
) ([]*domain.Notification, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, recipient, type, title, message, task_id, project_id, read, created_at
		FROM notifications
		WHERE recipient = $1
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3
	`

	rows, err := s.db.QueryContext(ctx, query, recipient, offset, limit)
	if err != nil {
		log.Error("failed to list notifications",
			slog.String("error", err.Error()),
			slog.String("recipient", recipient))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var notifications []*domain.Notification
	for rows.Next() {
		var n domain.Notification
		var notificationType string
		var taskID, projectID uuid.NullUUID

		if err := rows.Scan(
			&n.ID,
			&n.Recipient,
			&notificationType,
			&n.Title,
			&n.Message,
			&taskID,
			&projectID,
			&n.Read,
			&n.CreatedAt,
		); err != nil {
			log.Error("failed to scan notification row", slog.String("error", err.Error()))
			return nil, err
		}

		n.Type = domain.NotificationType(notificationType)
		n.TaskID = taskID.UUID
		n.ProjectID = projectID.UUID
		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notifications, nil
}

// CountUnread implements store.NotificationStore.CountUnread
func (s *PostgresNotificationStore) CountUnread(ctx context.Context, recipient string) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE recipient = $1 AND read = FALSE`
	if err := s.db.QueryRowContext(ctx, query, recipient).Scan(&count); err != nil {
		log.Error("failed to count unread notifications",
			slog.String("error", err.Error()),
			slog.String("recipient", recipient))
		return 0, err
	}
	return count, nil
}

// MarkRead implements store.NotificationStore.MarkRead
// The recipient filter keeps users from touching other users' rows.
func (s *PostgresNotificationStore) MarkRead(ctx context.Context, id uuid.UUID, recipient string) error {
	query := `UPDATE notifications SET read = TRUE WHERE id = $1 AND recipient = $2`
	return s.execExpectingRow(ctx, query, id, recipient)
}

// MarkAllRead implements store.NotificationStore.MarkAllRead
func (s *PostgresNotificationStore) MarkAllRead(ctx context.Context, recipient string) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `UPDATE notifications SET read = TRUE WHERE recipient = $1 AND read = FALSE`
	result, err := s.db.ExecContext(ctx, query, recipient)
	if err != nil {
		log.Error("failed to mark all notifications read",
			slog.String("error", err.Error()),
			slog.String("recipient", recipient))
		return 0, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}

	log.Debug("marked notifications read",
		slog.String("recipient", recipient),
		slog.Int64("count", rows))
	return int(rows), nil
}

// Delete implements store.NotificationStore.Delete
func (s *PostgresNotificationStore) Delete(ctx context.Context, id uuid.UUID, recipient string) error {
	query := `DELETE FROM notifications WHERE id = $1 AND recipient = $2`
	return s.execExpectingRow(ctx, query, id, recipient)
}

// WithTx implements store.NotificationStore.WithTx
func (s *PostgresNotificationStore) WithTx(tx *sql.Tx) store.NotificationStore {
	return &PostgresNotificationStore{
		db:     tx,
		logger: s.logger,
	}
}

// execExpectingRow runs a statement that must affect exactly one row,
// mapping zero affected rows to ErrNotificationNotFound.
func (s *PostgresNotificationStore) execExpectingRow(
	ctx context.Context,
	query string,
	args ...any,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("notification statement failed", slog.String("error", err.Error()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrNotificationNotFound
	}
	return nil
}

// nullUUID converts a nil UUID to a SQL NULL.
func nullUUID(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: id != uuid.Nil}
}
