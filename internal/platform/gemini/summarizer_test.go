package gemini

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackerworkflow/tracker-api/internal/config"
)

func newHeuristicSummarizer(t *testing.T) *Summarizer {
	t.Helper()

	s, err := NewSummarizer(context.Background(), config.AIConfig{Model: "gemini-2.0-flash"}, slog.Default())
	require.NoError(t, err)
	require.False(t, s.Available())
	return s
}

func TestSummarizeWithoutAPIKey(t *testing.T) {
	t.Parallel()

	s := newHeuristicSummarizer(t)

	result, err := s.Summarize(context.Background(), "Build the new reporting dashboard with export support for finance")
	require.NoError(t, err)

	assert.False(t, result.AIAvailable)
	assert.NotEmpty(t, result.Summary)
	assert.NotEmpty(t, result.Subtasks)
	assert.LessOrEqual(t, len(result.Subtasks), maxSubtasks)
}

func TestSummarizeEmptyDescription(t *testing.T) {
	t.Parallel()

	s := newHeuristicSummarizer(t)

	_, err := s.Summarize(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyDescription)
}

func TestSummarizeUsesModelResponse(t *testing.T) {
	t.Parallel()

	s := newHeuristicSummarizer(t)
	s.generate = func(_ context.Context, prompt string) (string, error) {
		assert.Contains(t, prompt, "Migrate the billing service")
		return `{"summary": "Move billing onto the new payments platform", "subtasks": ["Inventory current billing integrations", "Set up the new payments environment", "Migrate customer records", "Run parallel billing verification"]}`, nil
	}

	result, err := s.Summarize(context.Background(), "Migrate the billing service to the new payments platform without downtime for existing customers")
	require.NoError(t, err)

	assert.True(t, result.AIAvailable)
	assert.Equal(t, "Move billing onto the new payments platform", result.Summary)
	assert.Len(t, result.Subtasks, 4)
}

func TestSummarizeFallsBackOnModelError(t *testing.T) {
	t.Parallel()

	s := newHeuristicSummarizer(t)
	s.generate = func(_ context.Context, _ string) (string, error) {
		return "", errors.New("rate limited")
	}

	result, err := s.Summarize(context.Background(), "Deploy the release to production")
	require.NoError(t, err)

	assert.False(t, result.AIAvailable)
	assert.NotEmpty(t, result.Summary)
	assert.NotEmpty(t, result.Subtasks)
}

func TestSummarizeFallsBackOnMalformedResponse(t *testing.T) {
	t.Parallel()

	s := newHeuristicSummarizer(t)
	s.generate = func(_ context.Context, _ string) (string, error) {
		return "this is not json", nil
	}

	result, err := s.Summarize(context.Background(), "Test the onboarding flow end to end")
	require.NoError(t, err)
	assert.False(t, result.AIAvailable)
}

func TestSummarizeRejectsEchoedSummary(t *testing.T) {
	t.Parallel()

	description := "Review the quarterly access audit findings and file remediation tickets for each team involved"

	s := newHeuristicSummarizer(t)
	s.generate = func(_ context.Context, _ string) (string, error) {
		return `{"summary": "` + description + `", "subtasks": ["Collect audit findings per team", "File remediation tickets", "Track ticket completion"]}`, nil
	}

	result, err := s.Summarize(context.Background(), description)
	require.NoError(t, err)

	assert.True(t, result.AIAvailable)
	assert.NotEqual(t, description, result.Summary, "verbatim echo should be replaced by the heuristic summary")
}

func TestCleanSubtasks(t *testing.T) {
	t.Parallel()

	got := cleanSubtasks([]string{
		"1. Plan the rollout",
		"- Write the migration script",
		"* Verify data integrity",
		"ok", // too short
		"Task: ignored header",
		"4) Announce the change",
		"Review logging output",
		"Close out the epic", // sixth usable entry, over the cap
	})

	assert.Equal(t, []string{
		"Plan the rollout",
		"Write the migration script",
		"Verify data integrity",
		"Announce the change",
		"Review logging output",
	}, got)
}
