package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/trackerworkflow/tracker-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrInvalidEntity if the referenced project does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// List retrieves tasks ordered by creation time, newest first.
	// offset and limit page through the result set.
	List(ctx context.Context, offset, limit int) ([]*domain.Task, error)

	// ListByProject retrieves the tasks belonging to a project, newest first.
	ListByProject(ctx context.Context, projectID uuid.UUID, offset, limit int) ([]*domain.Task, error)

	// Update modifies an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) TaskStore
}
