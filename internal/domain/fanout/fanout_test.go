package fanout_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackerworkflow/tracker-api/internal/domain"
	"github.com/trackerworkflow/tracker-api/internal/domain/fanout"
)

func snapshot(title, assignee string) fanout.TaskSnapshot {
	return fanout.TaskSnapshot{
		ID:        uuid.New(),
		Title:     title,
		Assignee:  assignee,
		ProjectID: uuid.New(),
		Status:    domain.TaskStatusTodo,
	}
}

func TestFanOutCreatedAssignsAndMentions(t *testing.T) {
	event := fanout.TaskEvent{
		Kind:      fanout.EventCreated,
		ActorName: "carol",
		Task:      snapshot("Ship release", "bob"),
	}

	intents, err := fanout.FanOut(event, []string{"bob", "carol"})
	require.NoError(t, err)

	// On creation the assignee exclusion does not apply to mentions: bob
	// receives both the assignment and the mention. Only the actor's own
	// mention (carol) is suppressed.
	require.Len(t, intents, 2)
	assert.Equal(t, "bob", intents[0].Recipient)
	assert.Equal(t, domain.NotificationTypeTaskAssigned, intents[0].Type)
	assert.Equal(t, "bob", intents[1].Recipient)
	assert.Equal(t, domain.NotificationTypeMention, intents[1].Type)
}

func TestFanOutCreatedWithoutAssignee(t *testing.T) {
	event := fanout.TaskEvent{
		Kind:      fanout.EventCreated,
		ActorName: "carol",
		Task:      snapshot("Ship release", ""),
	}

	intents, err := fanout.FanOut(event, []string{"alice"})
	require.NoError(t, err)
	require.Len(t, intents, 1)
	assert.Equal(t, "alice", intents[0].Recipient)
	assert.Equal(t, domain.NotificationTypeMention, intents[0].Type)
}

func TestFanOutUpdatedUnchangedAssignee(t *testing.T) {
	event := fanout.TaskEvent{
		Kind:             fanout.EventUpdated,
		ActorName:        "carol",
		Task:             snapshot("Ship release", "bob"),
		PreviousAssignee: "bob",
	}

	intents, err := fanout.FanOut(event, nil)
	require.NoError(t, err)
	assert.Empty(t, intents, "unchanged assignee must not be re-notified")
}

func TestFanOutUpdatedReassignment(t *testing.T) {
	event := fanout.TaskEvent{
		Kind:             fanout.EventUpdated,
		ActorName:        "carol",
		Task:             snapshot("Ship release", "dave"),
		PreviousAssignee: "bob",
	}

	// dave is both the new assignee and mentioned: on updates the mention is
	// folded into the assignment notification.
	intents, err := fanout.FanOut(event, []string{"dave", "erin"})
	require.NoError(t, err)
	require.Len(t, intents, 2)
	assert.Equal(t, "dave", intents[0].Recipient)
	assert.Equal(t, domain.NotificationTypeTaskAssigned, intents[0].Type)
	assert.Equal(t, "erin", intents[1].Recipient)
	assert.Equal(t, domain.NotificationTypeMention, intents[1].Type)
}

func TestFanOutUpdatedAssigneeMentionKeptWhenNoAssignmentSent(t *testing.T) {
	// Assignee unchanged, so rule 1 emits nothing; the mention of the
	// assignee then goes through as a plain mention.
	event := fanout.TaskEvent{
		Kind:             fanout.EventUpdated,
		ActorName:        "carol",
		Task:             snapshot("Ship release", "bob"),
		PreviousAssignee: "bob",
	}

	intents, err := fanout.FanOut(event, []string{"bob"})
	require.NoError(t, err)
	require.Len(t, intents, 1)
	assert.Equal(t, "bob", intents[0].Recipient)
	assert.Equal(t, domain.NotificationTypeMention, intents[0].Type)
}

func TestFanOutNeverNotifiesActor(t *testing.T) {
	for _, kind := range []fanout.EventKind{fanout.EventCreated, fanout.EventUpdated} {
		event := fanout.TaskEvent{
			Kind:      kind,
			ActorName: "carol",
			Task:      snapshot("Ship release", ""),
		}

		intents, err := fanout.FanOut(event, []string{"carol", "Carol", "alice"})
		require.NoError(t, err)

		for _, intent := range intents {
			assert.NotEqual(t, "carol", strings.ToLower(intent.Recipient))
		}
		require.Len(t, intents, 1)
		assert.Equal(t, "alice", intents[0].Recipient)
	}
}

func TestFanOutMissingTitle(t *testing.T) {
	event := fanout.TaskEvent{
		Kind:      fanout.EventCreated,
		ActorName: "carol",
		Task:      snapshot("", "bob"),
	}

	intents, err := fanout.FanOut(event, []string{"alice"})
	assert.ErrorIs(t, err, fanout.ErrInvalidEvent)
	assert.Nil(t, intents, "no partial output on malformed events")
}

func TestFanOutMessageTemplates(t *testing.T) {
	task := snapshot("Ship release", "bob")
	task.Description = strings.Repeat("x", 150)

	event := fanout.TaskEvent{
		Kind:      fanout.EventCreated,
		ActorName: "carol",
		Task:      task,
	}

	intents, err := fanout.FanOut(event, []string{"alice"})
	require.NoError(t, err)
	require.Len(t, intents, 2)

	assert.Contains(t, intents[0].Message, `"Ship release"`)

	mention := intents[1]
	assert.Contains(t, mention.Message, "carol mentioned you")
	assert.Contains(t, mention.Message, strings.Repeat("x", 100)+"...")
	assert.NotContains(t, mention.Message, strings.Repeat("x", 101))
}

func TestFanOutMentionOrderPreserved(t *testing.T) {
	event := fanout.TaskEvent{
		Kind:      fanout.EventCreated,
		ActorName: "zoe",
		Task:      snapshot("Ship release", ""),
	}

	intents, err := fanout.FanOut(event, []string{"carol", "alice", "bob"})
	require.NoError(t, err)
	require.Len(t, intents, 3)
	assert.Equal(t, "carol", intents[0].Recipient)
	assert.Equal(t, "alice", intents[1].Recipient)
	assert.Equal(t, "bob", intents[2].Recipient)
}

func TestIntentNotification(t *testing.T) {
	event := fanout.TaskEvent{
		Kind:      fanout.EventCreated,
		ActorName: "carol",
		Task:      snapshot("Ship release", "bob"),
	}

	intents, err := fanout.FanOut(event, nil)
	require.NoError(t, err)
	require.Len(t, intents, 1)

	n, err := intents[0].Notification()
	require.NoError(t, err)
	assert.Equal(t, "bob", n.Recipient)
	assert.Equal(t, domain.NotificationTypeTaskAssigned, n.Type)
	assert.False(t, n.Read)
	assert.Equal(t, event.Task.ID, n.TaskID)
	assert.Equal(t, event.Task.ProjectID, n.ProjectID)
}
