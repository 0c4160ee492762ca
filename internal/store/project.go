package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/trackerworkflow/tracker-api/internal/domain"
)

// ProjectStore defines the interface for project data persistence.
type ProjectStore interface {
	// Create saves a new project to the store.
	// Returns validation errors from the domain Project if data is invalid.
	Create(ctx context.Context, project *domain.Project) error

	// GetByID retrieves a project by its unique ID.
	// Returns ErrProjectNotFound if the project does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)

	// List retrieves projects ordered by creation time, newest first.
	// offset and limit page through the result set.
	List(ctx context.Context, offset, limit int) ([]*domain.Project, error)

	// Update modifies an existing project.
	// Returns ErrProjectNotFound if the project does not exist.
	Update(ctx context.Context, project *domain.Project) error

	// Delete removes a project and, through the schema's cascade, all of
	// its tasks. Returns ErrProjectNotFound if the project does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new ProjectStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) ProjectStore
}
