package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the workflow state of a task.
type TaskStatus string

// Valid task statuses.
const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusReview     TaskStatus = "REVIEW"
	TaskStatusDone       TaskStatus = "DONE"
)

// IsValid returns true if the status is one of the defined workflow states.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone:
		return true
	}
	return false
}

// TaskPriority represents the urgency of a task.
type TaskPriority string

// Valid task priorities.
const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

// IsValid returns true if the priority is one of the defined levels.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskTitleEmpty is returned when a task's title is empty.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")

	// ErrTaskProjectIDEmpty is returned when a task's project ID is empty or nil.
	ErrTaskProjectIDEmpty = errors.New("task project ID cannot be empty")
)

// Task represents a unit of work within a project. Assignee is a free-form
// display name, not a foreign key: tasks can be assigned to people who have
// not signed up yet, and @mentions in the description address the same
// namespace.
type Task struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	Assignee    string       `json:"assignee,omitempty"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	ProjectID   uuid.UUID    `json:"project_id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewTask creates a new Task in the given project.
// Status defaults to TODO and priority to MEDIUM when left empty.
// Returns an error if validation fails.
func NewTask(projectID uuid.UUID, title, description string) (*Task, error) {
	task := &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      TaskStatusTodo,
		Priority:    TaskPriorityMedium,
		ProjectID:   projectID,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.Title == "" {
		return ErrTaskTitleEmpty
	}

	if t.ProjectID == uuid.Nil {
		return ErrTaskProjectIDEmpty
	}

	if !t.Status.IsValid() {
		return ErrInvalidTaskStatus
	}

	if !t.Priority.IsValid() {
		return ErrInvalidTaskPriority
	}

	return nil
}
