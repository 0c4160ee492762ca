package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/trackerworkflow/tracker-api/internal/domain"
	"github.com/trackerworkflow/tracker-api/internal/store"
)

// ProjectService provides project CRUD operations.
type ProjectService interface {
	CreateProject(ctx context.Context, name, description string) (*domain.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	ListProjects(ctx context.Context, offset, limit int) ([]*domain.Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, name, description string) (*domain.Project, error)

	// DeleteProject removes a project and, through the schema's cascade,
	// its tasks.
	DeleteProject(ctx context.Context, id uuid.UUID) error
}

// ProjectServiceImpl implements ProjectService.
type ProjectServiceImpl struct {
	projectStore store.ProjectStore
	logger       *slog.Logger
	db           *sql.DB

	runTx func(ctx context.Context, fn store.TxFn) error
}

// NewProjectService creates a ProjectService.
func NewProjectService(projectStore store.ProjectStore, db *sql.DB, logger *slog.Logger) *ProjectServiceImpl {
	s := &ProjectServiceImpl{
		projectStore: projectStore,
		logger:       logger.With(slog.String("component", "project_service")),
		db:           db,
	}
	s.runTx = func(ctx context.Context, fn store.TxFn) error {
		return store.RunInTransaction(ctx, s.db, fn)
	}
	return s
}

var _ ProjectService = (*ProjectServiceImpl)(nil)

func (s *ProjectServiceImpl) CreateProject(ctx context.Context, name, description string) (*domain.Project, error) {
	project, err := domain.NewProject(name, description)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.projectStore.WithTx(tx).Create(ctx, project)
	})
	if err != nil {
		s.logger.Error("failed to create project", "error", err)
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("project created", "project_id", project.ID)
	return project, nil
}

func (s *ProjectServiceImpl) GetProject(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	project, err := s.projectStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve project: %w", err)
	}
	return project, nil
}

func (s *ProjectServiceImpl) ListProjects(ctx context.Context, offset, limit int) ([]*domain.Project, error) {
	projects, err := s.projectStore.List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

func (s *ProjectServiceImpl) UpdateProject(ctx context.Context, id uuid.UUID, name, description string) (*domain.Project, error) {
	var project *domain.Project

	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.projectStore.WithTx(tx)

		var err error
		project, err = txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := project.Update(name, description); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}

		return txStore.Update(ctx, project)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.logger.Info("project updated", "project_id", id)
	return project, nil
}

func (s *ProjectServiceImpl) DeleteProject(ctx context.Context, id uuid.UUID) error {
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.projectStore.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.logger.Info("project deleted", "project_id", id)
	return nil
}
