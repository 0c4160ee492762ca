package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/trackerworkflow/tracker-api/internal/domain"
	"github.com/trackerworkflow/tracker-api/internal/platform/logger"
	"github.com/trackerworkflow/tracker-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface.
func NewPostgresTaskStore(db store.DBTX, log *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: log.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

const taskColumns = `id, title, description, status, priority, assignee, due_date, project_id, created_at, updated_at`

// Create implements store.TaskStore.Create
// Returns store.ErrInvalidEntity if the referenced project does not exist.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.Assignee,
		task.DueDate,
		task.ProjectID,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation",
				slog.String("task_id", task.ID.String()),
				slog.String("project_id", task.ProjectID.String()))
			return fmt.Errorf("%w: project with ID %s not found",
				store.ErrInvalidEntity, task.ProjectID)
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("project_id", task.ProjectID.String()),
		slog.String("status", string(task.Status)))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}
	return task, nil
}

// List implements store.TaskStore.List
func (s *PostgresTaskStore) List(ctx context.Context, offset, limit int) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at DESC OFFSET $1 LIMIT $2`
	return s.listTasks(ctx, query, offset, limit)
}

// ListByProject implements store.TaskStore.ListByProject
func (s *PostgresTaskStore) ListByProject(
	ctx context.Context,
	projectID uuid.UUID,
	offset, limit int,
) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = $1 ORDER BY created_at DESC OFFSET $2 LIMIT $3`
	return s.listTasks(ctx, query, projectID, offset, limit)
}

// Update implements store.TaskStore.Update
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, priority = $5,
		    assignee = $6, due_date = $7, updated_at = $8
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.Assignee,
		task.DueDate,
		task.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrTaskNotFound
	}

	log.Debug("task updated",
		slog.String("task_id", task.ID.String()),
		slog.String("status", string(task.Status)))
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrTaskNotFound
	}

	log.Info("task deleted", slog.String("task_id", id.String()))
	return nil
}

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

func (s *PostgresTaskStore) listTasks(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var status, priority string
	var dueDate sql.NullTime

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&status,
		&priority,
		&task.Assignee,
		&dueDate,
		&task.ProjectID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Status = domain.TaskStatus(status)
	task.Priority = domain.TaskPriority(priority)
	if dueDate.Valid {
		task.DueDate = &dueDate.Time
	}
	return &task, nil
}
