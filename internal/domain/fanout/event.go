package fanout

import (
	"github.com/google/uuid"

	"github.com/trackerworkflow/tracker-api/internal/domain"
)

// EventKind distinguishes the two task lifecycle events that produce
// notifications. Deletions are logged elsewhere and never fan out.
type EventKind string

// Valid event kinds.
const (
	EventCreated EventKind = "created"
	EventUpdated EventKind = "updated"
)

// TaskSnapshot carries the task fields the fan-out policy reads. It is a
// plain value copied from the persisted task so the policy never touches
// storage.
type TaskSnapshot struct {
	ID          uuid.UUID
	Title       string
	Description string
	Assignee    string
	ProjectID   uuid.UUID
	Status      domain.TaskStatus
}

// TaskEvent is the triggering fact for one fan-out evaluation. It is built
// by the task service per operation, consumed once, and discarded.
// PreviousAssignee and PreviousStatus are only meaningful for EventUpdated.
type TaskEvent struct {
	Kind             EventKind
	ActorName        string
	Task             TaskSnapshot
	PreviousAssignee string
	PreviousStatus   domain.TaskStatus
}

// Intent describes a notification to be created, prior to persistence.
// The caller owns the returned intents and hands them to the notification
// store; the fan-out policy itself never persists anything.
type Intent struct {
	Recipient string
	Type      domain.NotificationType
	Title     string
	Message   string
	TaskID    uuid.UUID
	ProjectID uuid.UUID
}

// Notification converts the intent into a persistable domain entity.
func (i Intent) Notification() (*domain.Notification, error) {
	return domain.NewNotification(i.Recipient, i.Type, i.Title, i.Message, i.TaskID, i.ProjectID)
}
