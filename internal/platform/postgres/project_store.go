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

// PostgresProjectStore implements the store.ProjectStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProjectStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProjectStore creates a new PostgreSQL implementation of the
// ProjectStore interface.
func NewPostgresProjectStore(db store.DBTX, log *slog.Logger) *PostgresProjectStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresProjectStore{
		db:     db,
		logger: log.With(slog.String("component", "project_store")),
	}
}

// Ensure PostgresProjectStore implements store.ProjectStore interface
var _ store.ProjectStore = (*PostgresProjectStore)(nil)

// Create implements store.ProjectStore.Create
func (s *PostgresProjectStore) Create(ctx context.Context, project *domain.Project) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := project.Validate(); err != nil {
		log.Warn("project validation failed during create",
			slog.String("error", err.Error()),
			slog.String("project_id", project.ID.String()))
		return err
	}

	query := `
		INSERT INTO projects (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		project.ID,
		project.Name,
		project.Description,
		project.CreatedAt,
		project.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create project",
			slog.String("error", err.Error()),
			slog.String("project_id", project.ID.String()))
		return err
	}

	log.Info("project created successfully",
		slog.String("project_id", project.ID.String()))
	return nil
}

// GetByID implements store.ProjectStore.GetByID
// Returns store.ErrProjectNotFound if the project does not exist.
func (s *PostgresProjectStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, description, created_at, updated_at
		FROM projects
		WHERE id = $1
	`

	var project domain.Project
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.CreatedAt,
		&project.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProjectNotFound
		}
		log.Error("failed to get project by ID",
			slog.String("error", err.Error()),
			slog.String("project_id", id.String()))
		return nil, err
	}

	return &project, nil
}

// List implements store.ProjectStore.List
func (s *PostgresProjectStore) List(ctx context.Context, offset, limit int) ([]*domain.Project, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, description, created_at, updated_at
		FROM projects
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, offset, limit)
	if err != nil {
		log.Error("failed to list projects", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var projects []*domain.Project
	for rows.Next() {
		var project domain.Project
		if err := rows.Scan(
			&project.ID,
			&project.Name,
			&project.Description,
			&project.CreatedAt,
			&project.UpdatedAt,
		); err != nil {
			log.Error("failed to scan project row", slog.String("error", err.Error()))
			return nil, err
		}
		projects = append(projects, &project)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return projects, nil
}

// Update implements store.ProjectStore.Update
// Returns store.ErrProjectNotFound if the project does not exist.
func (s *PostgresProjectStore) Update(ctx context.Context, project *domain.Project) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := project.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE projects
		SET name = $2, description = $3, updated_at = $4
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		project.ID,
		project.Name,
		project.Description,
		project.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to update project",
			slog.String("error", err.Error()),
			slog.String("project_id", project.ID.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrProjectNotFound
	}

	log.Debug("project updated", slog.String("project_id", project.ID.String()))
	return nil
}

// Delete implements store.ProjectStore.Delete
// The schema cascades the delete to the project's tasks.
func (s *PostgresProjectStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete project",
			slog.String("error", err.Error()),
			slog.String("project_id", id.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrProjectNotFound
	}

	log.Info("project deleted", slog.String("project_id", id.String()))
	return nil
}

// WithTx implements store.ProjectStore.WithTx
func (s *PostgresProjectStore) WithTx(tx *sql.Tx) store.ProjectStore {
	return &PostgresProjectStore{
		db:     tx,
		logger: s.logger,
	}
}
