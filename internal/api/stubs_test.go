package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/google/uuid"

	"github.com/trackerworkflow/tracker-api/internal/api/shared"
	"github.com/trackerworkflow/tracker-api/internal/domain"
	"github.com/trackerworkflow/tracker-api/internal/platform/googleauth"
	"github.com/trackerworkflow/tracker-api/internal/service"
)

// stubUserService returns canned values per call.
type stubUserService struct {
	user    *domain.User
	err     error
	authErr error
}

func (s *stubUserService) Register(_ context.Context, _, _ string) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUserService) Authenticate(_ context.Context, _, _ string) (*domain.User, error) {
	if s.authErr != nil {
		return nil, s.authErr
	}
	return s.user, s.err
}

func (s *stubUserService) GetUser(_ context.Context, _ uuid.UUID) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUserService) CreateOrGetGoogleUser(_ context.Context, _ googleauth.UserInfo) (*domain.User, error) {
	return s.user, s.err
}

type stubTaskService struct {
	task      *domain.Task
	tasks     []*domain.Task
	err       error
	gotInput  service.TaskInput
	gotActor  string
	deletedID uuid.UUID
}

func (s *stubTaskService) CreateTask(_ context.Context, input service.TaskInput, actor string) (*domain.Task, error) {
	s.gotInput, s.gotActor = input, actor
	return s.task, s.err
}

func (s *stubTaskService) UpdateTask(_ context.Context, _ uuid.UUID, input service.TaskInput, actor string) (*domain.Task, error) {
	s.gotInput, s.gotActor = input, actor
	return s.task, s.err
}

func (s *stubTaskService) GetTask(_ context.Context, _ uuid.UUID) (*domain.Task, error) {
	return s.task, s.err
}

func (s *stubTaskService) ListTasks(_ context.Context, _, _ int) ([]*domain.Task, error) {
	return s.tasks, s.err
}

func (s *stubTaskService) ListTasksByProject(_ context.Context, _ uuid.UUID, _, _ int) ([]*domain.Task, error) {
	return s.tasks, s.err
}

func (s *stubTaskService) DeleteTask(_ context.Context, id uuid.UUID) error {
	s.deletedID = id
	return s.err
}

type stubNotificationService struct {
	notifications []*domain.Notification
	unread        int
	markedAll     int
	err           error
	gotRecipient  string
}

func (s *stubNotificationService) ListNotifications(_ context.Context, recipient string, _, _ int) ([]*domain.Notification, error) {
	s.gotRecipient = recipient
	return s.notifications, s.err
}

func (s *stubNotificationService) UnreadCount(_ context.Context, recipient string) (int, error) {
	s.gotRecipient = recipient
	return s.unread, s.err
}

func (s *stubNotificationService) MarkRead(_ context.Context, _ uuid.UUID, recipient string) error {
	s.gotRecipient = recipient
	return s.err
}

func (s *stubNotificationService) MarkAllRead(_ context.Context, recipient string) (int, error) {
	s.gotRecipient = recipient
	return s.markedAll, s.err
}

func (s *stubNotificationService) DeleteNotification(_ context.Context, _ uuid.UUID, recipient string) error {
	s.gotRecipient = recipient
	return s.err
}

// authenticatedRequest builds a request whose context carries userID, as
// the auth middleware would.
func authenticatedRequest(method, target string, body io.Reader, userID uuid.UUID) *http.Request {
	r := httptest.NewRequest(method, target, body)
	return r.WithContext(shared.WithUserID(r.Context(), userID))
}
