package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	projectID := uuid.New()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		task, err := NewTask(projectID, "Ship the release", "cut a tag and push")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, task.ID)
		assert.Equal(t, TaskStatusTodo, task.Status)
		assert.Equal(t, TaskPriorityMedium, task.Priority)
		assert.Equal(t, projectID, task.ProjectID)
		assert.Empty(t, task.Assignee)
		assert.Nil(t, task.DueDate)
	})

	t.Run("empty title", func(t *testing.T) {
		t.Parallel()

		_, err := NewTask(projectID, "", "body")
		assert.ErrorIs(t, err, ErrTaskTitleEmpty)
	})

	t.Run("missing project", func(t *testing.T) {
		t.Parallel()

		_, err := NewTask(uuid.Nil, "Ship the release", "")
		assert.ErrorIs(t, err, ErrTaskProjectIDEmpty)
	})
}

func TestTaskValidateStatusAndPriority(t *testing.T) {
	t.Parallel()

	task, err := NewTask(uuid.New(), "Ship the release", "")
	require.NoError(t, err)

	task.Status = TaskStatus("BLOCKED")
	assert.ErrorIs(t, task.Validate(), ErrInvalidTaskStatus)

	task.Status = TaskStatusReview
	task.Priority = TaskPriority("URGENT")
	assert.ErrorIs(t, task.Validate(), ErrInvalidTaskPriority)

	task.Priority = TaskPriorityHigh
	assert.NoError(t, task.Validate())
}

func TestTaskStatusIsValid(t *testing.T) {
	t.Parallel()

	for _, status := range []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone} {
		assert.True(t, status.IsValid(), "status %q", status)
	}
	assert.False(t, TaskStatus("todo").IsValid(), "statuses are case sensitive")
	assert.False(t, TaskStatus("").IsValid())
}

func TestTaskPriorityIsValid(t *testing.T) {
	t.Parallel()

	for _, priority := range []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh} {
		assert.True(t, priority.IsValid(), "priority %q", priority)
	}
	assert.False(t, TaskPriority("medium").IsValid())
}
