package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/trackerworkflow/tracker-api/internal/domain"
	"github.com/trackerworkflow/tracker-api/internal/domain/fanout"
	"github.com/trackerworkflow/tracker-api/internal/domain/mention"
	"github.com/trackerworkflow/tracker-api/internal/store"
)

// TaskInput carries the client-supplied fields for creating or updating a
// task. Zero-valued Status and Priority fall back to the task defaults on
// create and keep the stored values on update.
type TaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	Assignee    string
	DueDate     *time.Time
	ProjectID   uuid.UUID
}

// TaskService provides task CRUD operations. Creating or updating a task
// also evaluates the notification fan-out policy and persists the
// resulting notifications in the same transaction as the task write.
type TaskService interface {
	// CreateTask creates a task and fans out assignment and mention
	// notifications. actorName is the display name of the user making the
	// change; the policy never notifies the actor.
	CreateTask(ctx context.Context, input TaskInput, actorName string) (*domain.Task, error)

	// UpdateTask updates a task and fans out notifications for new
	// assignments and mentions.
	UpdateTask(ctx context.Context, id uuid.UUID, input TaskInput, actorName string) (*domain.Task, error)

	GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListTasks(ctx context.Context, offset, limit int) ([]*domain.Task, error)
	ListTasksByProject(ctx context.Context, projectID uuid.UUID, offset, limit int) ([]*domain.Task, error)

	// DeleteTask removes a task. Deletions never produce notifications.
	DeleteTask(ctx context.Context, id uuid.UUID) error
}

// TaskServiceImpl implements TaskService.
type TaskServiceImpl struct {
	taskStore         store.TaskStore
	notificationStore store.NotificationStore
	logger            *slog.Logger
	db                *sql.DB

	runTx func(ctx context.Context, fn store.TxFn) error
}

// NewTaskService creates a TaskService.
func NewTaskService(
	taskStore store.TaskStore,
	notificationStore store.NotificationStore,
	db *sql.DB,
	logger *slog.Logger,
) *TaskServiceImpl {
	s := &TaskServiceImpl{
		taskStore:         taskStore,
		notificationStore: notificationStore,
		logger:            logger.With(slog.String("component", "task_service")),
		db:                db,
	}
	s.runTx = func(ctx context.Context, fn store.TxFn) error {
		return store.RunInTransaction(ctx, s.db, fn)
	}
	return s
}

var _ TaskService = (*TaskServiceImpl)(nil)

// CreateTask persists a new task and its fan-out notifications atomically.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, input TaskInput, actorName string) (*domain.Task, error) {
	task, err := domain.NewTask(input.ProjectID, input.Title, input.Description)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := applyInput(task, input); err != nil {
		return nil, err
	}

	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.taskStore.WithTx(tx).Create(ctx, task); err != nil {
			return err
		}

		event := fanout.TaskEvent{
			Kind:      fanout.EventCreated,
			ActorName: actorName,
			Task:      snapshot(task),
		}
		return s.fanOut(ctx, tx, event)
	})
	if err != nil {
		s.logger.Error("failed to create task", "error", err)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("task created",
		"task_id", task.ID,
		"project_id", task.ProjectID)
	return task, nil
}

// UpdateTask applies the input to an existing task and fans out
// notifications based on what changed, all in one transaction.
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, id uuid.UUID, input TaskInput, actorName string) (*domain.Task, error) {
	var task *domain.Task

	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.taskStore.WithTx(tx)

		var err error
		task, err = txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		previousAssignee := task.Assignee
		previousStatus := task.Status

		task.Title = input.Title
		task.Description = input.Description
		task.Assignee = input.Assignee
		task.DueDate = input.DueDate
		if input.Status != "" {
			task.Status = input.Status
		}
		if input.Priority != "" {
			task.Priority = input.Priority
		}
		task.UpdatedAt = time.Now().UTC()

		if err := task.Validate(); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}

		if err := txStore.Update(ctx, task); err != nil {
			return err
		}

		event := fanout.TaskEvent{
			Kind:             fanout.EventUpdated,
			ActorName:        actorName,
			Task:             snapshot(task),
			PreviousAssignee: previousAssignee,
			PreviousStatus:   previousStatus,
		}
		return s.fanOut(ctx, tx, event)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info("task updated", "task_id", id)
	return task, nil
}

func (s *TaskServiceImpl) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve task: %w", err)
	}
	return task, nil
}

func (s *TaskServiceImpl) ListTasks(ctx context.Context, offset, limit int) ([]*domain.Task, error) {
	tasks, err := s.taskStore.List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskServiceImpl) ListTasksByProject(ctx context.Context, projectID uuid.UUID, offset, limit int) ([]*domain.Task, error) {
	tasks, err := s.taskStore.ListByProject(ctx, projectID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for project: %w", err)
	}
	return tasks, nil
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, id uuid.UUID) error {
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.taskStore.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Info("task deleted", "task_id", id)
	return nil
}

// fanOut evaluates the notification policy for the event and persists the
// resulting notifications through the transaction.
func (s *TaskServiceImpl) fanOut(ctx context.Context, tx *sql.Tx, event fanout.TaskEvent) error {
	mentions := mention.Extract(event.Task.Description)

	intents, err := fanout.FanOut(event, mentions)
	if err != nil {
		return fmt.Errorf("notification fan-out failed: %w", err)
	}
	if len(intents) == 0 {
		return nil
	}

	txStore := s.notificationStore.WithTx(tx)
	for _, intent := range intents {
		notification, err := intent.Notification()
		if err != nil {
			return fmt.Errorf("failed to build notification: %w", err)
		}
		if err := txStore.Create(ctx, notification); err != nil {
			return fmt.Errorf("failed to persist notification: %w", err)
		}
	}

	s.logger.Info("notifications fanned out",
		"task_id", event.Task.ID,
		"kind", string(event.Kind),
		"count", len(intents))
	return nil
}

func snapshot(task *domain.Task) fanout.TaskSnapshot {
	return fanout.TaskSnapshot{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Assignee:    task.Assignee,
		ProjectID:   task.ProjectID,
		Status:      task.Status,
	}
}

// applyInput overlays optional create-time fields onto a freshly
// constructed task and revalidates.
func applyInput(task *domain.Task, input TaskInput) error {
	task.Assignee = input.Assignee
	task.DueDate = input.DueDate
	if input.Status != "" {
		task.Status = input.Status
	}
	if input.Priority != "" {
		task.Priority = input.Priority
	}

	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}
