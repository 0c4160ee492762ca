package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/trackerworkflow/tracker-api/internal/domain"
	"github.com/trackerworkflow/tracker-api/internal/store"
)

// passthroughTx bypasses the database for transaction-wrapped calls.
func passthroughTx(ctx context.Context, fn store.TxFn) error {
	return fn(ctx, nil)
}

type mockUserStore struct {
	users     map[uuid.UUID]*domain.User
	createErr error
	updateErr error
	getCalls  int
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: map[uuid.UUID]*domain.User{}}
}

func (m *mockUserStore) Create(_ context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return store.ErrEmailExists
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (m *mockUserStore) GetByEmailOrGoogleID(_ context.Context, email, googleID string) (*domain.User, error) {
	m.getCalls++
	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) || (googleID != "" && user.GoogleID == googleID) {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (m *mockUserStore) Update(_ context.Context, user *domain.User) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.users[user.ID]; !ok {
		return store.ErrUserNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserStore) WithTx(_ *sql.Tx) store.UserStore { return m }

type mockTaskStore struct {
	tasks     map[uuid.UUID]*domain.Task
	createErr error
	updateErr error
}

func newMockTaskStore() *mockTaskStore {
	return &mockTaskStore{tasks: map[uuid.UUID]*domain.Task{}}
}

func (m *mockTaskStore) Create(_ context.Context, task *domain.Task) error {
	if m.createErr != nil {
		return m.createErr
	}
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

func (m *mockTaskStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Task, error) {
	task, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (m *mockTaskStore) List(_ context.Context, _, _ int) ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0, len(m.tasks))
	for _, task := range m.tasks {
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (m *mockTaskStore) ListByProject(_ context.Context, projectID uuid.UUID, _, _ int) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for _, task := range m.tasks {
		if task.ProjectID == projectID {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (m *mockTaskStore) Update(_ context.Context, task *domain.Task) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

func (m *mockTaskStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

func (m *mockTaskStore) WithTx(_ *sql.Tx) store.TaskStore { return m }

type mockNotificationStore struct {
	created   []*domain.Notification
	createErr error
}

func (m *mockNotificationStore) Create(_ context.Context, notification *domain.Notification) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, notification)
	return nil
}

func (m *mockNotificationStore) ListByRecipient(_ context.Context, recipient string, _, _ int) ([]*domain.Notification, error) {
	var result []*domain.Notification
	for _, n := range m.created {
		if n.Recipient == recipient {
			result = append(result, n)
		}
	}
	return result, nil
}

func (m *mockNotificationStore) CountUnread(_ context.Context, recipient string) (int, error) {
	count := 0
	for _, n := range m.created {
		if n.Recipient == recipient && !n.Read {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationStore) MarkRead(_ context.Context, id uuid.UUID, recipient string) error {
	for _, n := range m.created {
		if n.ID == id && n.Recipient == recipient {
			n.Read = true
			return nil
		}
	}
	return store.ErrNotificationNotFound
}

func (m *mockNotificationStore) MarkAllRead(_ context.Context, recipient string) (int, error) {
	count := 0
	for _, n := range m.created {
		if n.Recipient == recipient && !n.Read {
			n.Read = true
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationStore) Delete(_ context.Context, id uuid.UUID, recipient string) error {
	for i, n := range m.created {
		if n.ID == id && n.Recipient == recipient {
			m.created = append(m.created[:i], m.created[i+1:]...)
			return nil
		}
	}
	return store.ErrNotificationNotFound
}

func (m *mockNotificationStore) WithTx(_ *sql.Tx) store.NotificationStore { return m }
