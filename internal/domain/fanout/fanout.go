// Package fanout decides which notifications a task-creation or task-update
// event produces, combining the task's assignee change with the @mentions
// extracted from its description. The policy is pure: given well-formed
// input it cannot fail, performs no I/O, and is safe under unlimited
// concurrency.
package fanout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/trackerworkflow/tracker-api/internal/domain"
)

// ErrInvalidEvent is returned when a TaskEvent is missing required fields.
// Fan-out fails fast on malformed events and never emits a partial result.
var ErrInvalidEvent = errors.New("invalid task event")

// excerptLimit caps how much of the task description is quoted inside a
// mention notification message.
const excerptLimit = 100

// FanOut evaluates the notification policy for one task event and the
// mention tokens extracted from its description. Rules, in order:
//
//  1. Assignment: a created task with an assignee notifies the assignee.
//     An updated task notifies the assignee only when the assignee actually
//     changed.
//  2. Mentions: each token produces one mention notification, in extraction
//     order, except tokens naming the acting user. On updates, a token
//     naming the freshly notified assignee is also skipped so reassignment
//     does not double-notify. Created events intentionally keep the mention
//     alongside the assignment notification; the two causes are distinct
//     and only updates de-duplicate them.
//
// Within one evaluation no recipient receives more than one notification
// per cause. Empty mention lists, absent assignees, and empty descriptions
// are valid no-op inputs.
func FanOut(event TaskEvent, mentions []string) ([]Intent, error) {
	if event.Task.Title == "" {
		return nil, fmt.Errorf("%w: task title is required", ErrInvalidEvent)
	}

	var intents []Intent

	assigneeNotified := false
	if event.Task.Assignee != "" {
		switch event.Kind {
		case EventCreated:
			intents = append(intents, assignmentIntent(event))
			assigneeNotified = true
		case EventUpdated:
			if !strings.EqualFold(event.Task.Assignee, event.PreviousAssignee) {
				intents = append(intents, assignmentIntent(event))
				assigneeNotified = true
			}
		}
	}

	for _, token := range mentions {
		if strings.EqualFold(token, event.ActorName) {
			// Never notify users about their own mentions.
			continue
		}
		if event.Kind == EventUpdated && assigneeNotified &&
			strings.EqualFold(token, event.Task.Assignee) {
			// The new assignee already got the assignment notification.
			continue
		}
		intents = append(intents, mentionIntent(event, token))
	}

	return intents, nil
}

func assignmentIntent(event TaskEvent) Intent {
	return Intent{
		Recipient: event.Task.Assignee,
		Type:      domain.NotificationTypeTaskAssigned,
		Title:     "New task assigned",
		Message:   fmt.Sprintf("You have been assigned to task %q", event.Task.Title),
		TaskID:    event.Task.ID,
		ProjectID: event.Task.ProjectID,
	}
}

func mentionIntent(event TaskEvent, recipient string) Intent {
	return Intent{
		Recipient: recipient,
		Type:      domain.NotificationTypeMention,
		Title:     "You were mentioned",
		Message: fmt.Sprintf("%s mentioned you in task %q: %s",
			event.ActorName, event.Task.Title, excerpt(event.Task.Description)),
		TaskID:    event.Task.ID,
		ProjectID: event.Task.ProjectID,
	}
}

// excerpt truncates the description to at most excerptLimit runes, appending
// an ellipsis when anything was cut.
func excerpt(description string) string {
	runes := []rune(description)
	if len(runes) <= excerptLimit {
		return description
	}
	return string(runes[:excerptLimit]) + "..."
}
