package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackerworkflow/tracker-api/internal/domain"
	"github.com/trackerworkflow/tracker-api/internal/store"
)

func newTestTaskService(taskStore *mockTaskStore, notificationStore *mockNotificationStore) *TaskServiceImpl {
	svc := NewTaskService(taskStore, notificationStore, nil, slog.Default())
	svc.runTx = passthroughTx
	return svc
}

func notificationTypes(notifications []*domain.Notification) []domain.NotificationType {
	types := make([]domain.NotificationType, 0, len(notifications))
	for _, n := range notifications {
		types = append(types, n.Type)
	}
	return types
}

func TestCreateTask(t *testing.T) {
	t.Parallel()

	projectID := uuid.New()

	t.Run("persists task with defaults", func(t *testing.T) {
		t.Parallel()

		taskStore := newMockTaskStore()
		svc := newTestTaskService(taskStore, &mockNotificationStore{})

		task, err := svc.CreateTask(context.Background(), TaskInput{
			Title:     "Write onboarding docs",
			ProjectID: projectID,
		}, "alice")
		require.NoError(t, err)

		stored, err := taskStore.GetByID(context.Background(), task.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusTodo, stored.Status)
		assert.Equal(t, domain.TaskPriorityMedium, stored.Priority)
	})

	t.Run("assignment and mention notifications persist together", func(t *testing.T) {
		t.Parallel()

		notificationStore := &mockNotificationStore{}
		svc := newTestTaskService(newMockTaskStore(), notificationStore)

		task, err := svc.CreateTask(context.Background(), TaskInput{
			Title:       "Ship the importer",
			Description: "needs a schema review from @bob",
			Assignee:    "bob",
			ProjectID:   projectID,
		}, "alice")
		require.NoError(t, err)

		// On create the assignee gets both the assignment notification and
		// the mention notification.
		require.Len(t, notificationStore.created, 2)
		assert.ElementsMatch(t,
			[]domain.NotificationType{domain.NotificationTypeTaskAssigned, domain.NotificationTypeMention},
			notificationTypes(notificationStore.created))
		for _, n := range notificationStore.created {
			assert.Equal(t, "bob", n.Recipient)
			assert.Equal(t, task.ID, n.TaskID)
			assert.Equal(t, projectID, n.ProjectID)
			assert.False(t, n.Read)
		}
	})

	t.Run("actor's own mention is suppressed", func(t *testing.T) {
		t.Parallel()

		notificationStore := &mockNotificationStore{}
		svc := newTestTaskService(newMockTaskStore(), notificationStore)

		_, err := svc.CreateTask(context.Background(), TaskInput{
			Title:       "Self-assigned chore",
			Description: "tracking for @alice",
			Assignee:    "Alice",
			ProjectID:   projectID,
		}, "alice")
		require.NoError(t, err)

		// The self-assignment still notifies, but the @alice mention by
		// alice does not.
		require.Len(t, notificationStore.created, 1)
		assert.Equal(t, domain.NotificationTypeTaskAssigned, notificationStore.created[0].Type)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		t.Parallel()

		svc := newTestTaskService(newMockTaskStore(), &mockNotificationStore{})
		_, err := svc.CreateTask(context.Background(), TaskInput{
			Title:     "Bad status",
			Status:    domain.TaskStatus("BLOCKED"),
			ProjectID: projectID,
		}, "alice")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("notification failure aborts the create", func(t *testing.T) {
		t.Parallel()

		notificationStore := &mockNotificationStore{createErr: assert.AnError}
		svc := newTestTaskService(newMockTaskStore(), notificationStore)

		_, err := svc.CreateTask(context.Background(), TaskInput{
			Title:     "Doomed",
			Assignee:  "bob",
			ProjectID: projectID,
		}, "alice")
		assert.Error(t, err)
	})
}

func TestUpdateTask(t *testing.T) {
	t.Parallel()

	projectID := uuid.New()

	seed := func(t *testing.T, svc *TaskServiceImpl, assignee string) *domain.Task {
		t.Helper()
		task, err := svc.CreateTask(context.Background(), TaskInput{
			Title:     "Initial task",
			Assignee:  assignee,
			ProjectID: projectID,
		}, "alice")
		require.NoError(t, err)
		return task
	}

	t.Run("reassignment notifies the new assignee", func(t *testing.T) {
		t.Parallel()

		notificationStore := &mockNotificationStore{}
		svc := newTestTaskService(newMockTaskStore(), notificationStore)
		task := seed(t, svc, "bob")
		notificationStore.created = nil

		updated, err := svc.UpdateTask(context.Background(), task.ID, TaskInput{
			Title:     "Initial task",
			Assignee:  "carol",
			ProjectID: projectID,
		}, "alice")
		require.NoError(t, err)
		assert.Equal(t, "carol", updated.Assignee)

		require.Len(t, notificationStore.created, 1)
		assert.Equal(t, "carol", notificationStore.created[0].Recipient)
		assert.Equal(t, domain.NotificationTypeTaskAssigned, notificationStore.created[0].Type)
	})

	t.Run("unchanged assignee produces no assignment notification", func(t *testing.T) {
		t.Parallel()

		notificationStore := &mockNotificationStore{}
		svc := newTestTaskService(newMockTaskStore(), notificationStore)
		task := seed(t, svc, "bob")
		notificationStore.created = nil

		_, err := svc.UpdateTask(context.Background(), task.ID, TaskInput{
			Title:     "Initial task, renamed",
			Assignee:  "bob",
			ProjectID: projectID,
		}, "alice")
		require.NoError(t, err)

		assert.Empty(t, notificationStore.created)
	})

	t.Run("update keeps stored status when input omits it", func(t *testing.T) {
		t.Parallel()

		svc := newTestTaskService(newMockTaskStore(), &mockNotificationStore{})
		task := seed(t, svc, "")

		updated, err := svc.UpdateTask(context.Background(), task.ID, TaskInput{
			Title:     "Renamed",
			ProjectID: projectID,
		}, "alice")
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusTodo, updated.Status)
	})

	t.Run("missing task returns ErrTaskNotFound", func(t *testing.T) {
		t.Parallel()

		svc := newTestTaskService(newMockTaskStore(), &mockNotificationStore{})
		_, err := svc.UpdateTask(context.Background(), uuid.New(), TaskInput{
			Title:     "Ghost",
			ProjectID: projectID,
		}, "alice")
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestDeleteTaskProducesNoNotifications(t *testing.T) {
	t.Parallel()

	notificationStore := &mockNotificationStore{}
	svc := newTestTaskService(newMockTaskStore(), notificationStore)

	task, err := svc.CreateTask(context.Background(), TaskInput{
		Title:     "Disposable",
		ProjectID: uuid.New(),
	}, "alice")
	require.NoError(t, err)
	notificationStore.created = nil

	require.NoError(t, svc.DeleteTask(context.Background(), task.ID))
	assert.Empty(t, notificationStore.created)

	assert.ErrorIs(t, svc.DeleteTask(context.Background(), task.ID), store.ErrTaskNotFound)
}
