// Package gemini provides AI-assisted task summarization backed by
// Google's Gemini API. When no API key is configured, or a call fails,
// the summarizer degrades to deterministic heuristics so the endpoint
// never hard-fails on AI availability.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/trackerworkflow/tracker-api/internal/config"
	"github.com/trackerworkflow/tracker-api/internal/platform/logger"
)

// ErrEmptyDescription indicates a summarization request with no text.
var ErrEmptyDescription = errors.New("task description cannot be empty")

const (
	maxSubtasks      = 5
	maxSummaryLength = 80
)

// SummaryResult is the outcome of summarizing a task description.
// AIAvailable distinguishes model output from heuristic fallback.
type SummaryResult struct {
	Summary     string   `json:"summary"`
	Subtasks    []string `json:"subtasks"`
	AIAvailable bool     `json:"ai_available"`
}

// generateFunc produces raw model output for a prompt; injectable for tests.
type generateFunc func(ctx context.Context, prompt string) (string, error)

// Summarizer generates task summaries and suggested subtasks.
type Summarizer struct {
	logger   *slog.Logger
	model    string
	generate generateFunc
}

// NewSummarizer creates a Summarizer from the AI configuration. When the
// API key is empty the summarizer is still usable and serves heuristic
// results only.
func NewSummarizer(ctx context.Context, cfg config.AIConfig, log *slog.Logger) (*Summarizer, error) {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "gemini_summarizer"))

	s := &Summarizer{
		logger: log,
		model:  cfg.Model,
	}

	if cfg.GeminiAPIKey == "" {
		log.Warn("no gemini API key configured, summarization will use heuristic fallback")
		return s, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	s.generate = func(ctx context.Context, prompt string) (string, error) {
		resp, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		})
		if err != nil {
			return "", err
		}
		return resp.Text(), nil
	}

	return s, nil
}

// Available reports whether a model backs this summarizer.
func (s *Summarizer) Available() bool {
	return s.generate != nil
}

// Summarize produces a one-line summary and 3-5 suggested subtasks for a
// task description. Model failures are logged and answered with the
// heuristic fallback rather than surfaced to the caller.
func (s *Summarizer) Summarize(ctx context.Context, description string) (SummaryResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	description = strings.TrimSpace(description)
	if description == "" {
		return SummaryResult{}, ErrEmptyDescription
	}

	if !s.Available() {
		return s.fallback(description), nil
	}

	result, err := s.summarizeWithModel(ctx, description)
	if err != nil {
		log.Error("gemini summarization failed, using fallback",
			slog.String("error", err.Error()))
		return s.fallback(description), nil
	}

	return result, nil
}

// modelResponse is the JSON shape requested from the model.
type modelResponse struct {
	Summary  string   `json:"summary"`
	Subtasks []string `json:"subtasks"`
}

func (s *Summarizer) summarizeWithModel(ctx context.Context, description string) (SummaryResult, error) {
	prompt := fmt.Sprintf(`Summarize the following task description in one concise sentence, focusing on the main action and goal, and break it down into 3 to 5 specific subtasks.
Respond with JSON only, in the form {"summary": "...", "subtasks": ["...", "..."]}.

Task description: %s`, description)

	raw, err := s.generate(ctx, prompt)
	if err != nil {
		return SummaryResult{}, fmt.Errorf("gemini API call failed: %w", err)
	}

	var parsed modelResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return SummaryResult{}, fmt.Errorf("failed to parse model response: %w", err)
	}

	summary := strings.TrimSpace(parsed.Summary)
	if !usableSummary(summary, description) {
		summary = simpleSummary(description)
	}

	subtasks := cleanSubtasks(parsed.Subtasks)
	if len(subtasks) < 2 {
		subtasks = fallbackSubtasks(description)
	}

	return SummaryResult{
		Summary:     summary,
		Subtasks:    subtasks,
		AIAvailable: true,
	}, nil
}

func (s *Summarizer) fallback(description string) SummaryResult {
	return SummaryResult{
		Summary:     simpleSummary(description),
		Subtasks:    fallbackSubtasks(description),
		AIAvailable: false,
	}
}

// usableSummary rejects summaries that are too short or restate the
// description nearly verbatim.
func usableSummary(summary, description string) bool {
	if len(summary) <= 10 {
		return false
	}
	if strings.EqualFold(summary, strings.TrimSpace(description)) {
		return false
	}
	return len(summary) <= len(description)*8/10 || len(description) <= 60
}

// cleanSubtasks strips list markers and drops lines too short to be
// actionable, capping the result at maxSubtasks.
func cleanSubtasks(items []string) []string {
	markers := []string{"•", "-", "*", "1.", "2.", "3.", "4.", "5.", "1)", "2)", "3)", "4)", "5)"}

	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		line := strings.TrimSpace(item)
		for _, marker := range markers {
			if strings.HasPrefix(line, marker) {
				line = strings.TrimSpace(strings.TrimPrefix(line, marker))
				break
			}
		}
		if len(line) > 5 && !strings.HasPrefix(line, "Task:") {
			cleaned = append(cleaned, line)
		}
		if len(cleaned) == maxSubtasks {
			break
		}
	}
	return cleaned
}
