package api

import (
	"net/http"

	"github.com/trackerworkflow/tracker-api/internal/api/shared"
	"github.com/trackerworkflow/tracker-api/internal/platform/gemini"
)

// AIHandler exposes the task summarization endpoint.
type AIHandler struct {
	summarizer *gemini.Summarizer
}

// NewAIHandler creates an AIHandler.
func NewAIHandler(summarizer *gemini.Summarizer) *AIHandler {
	return &AIHandler{summarizer: summarizer}
}

// Summarize handles POST /api/ai/summarize. The response always carries a
// summary and subtasks; ai_available reports whether they came from the
// model or from the heuristic fallback.
func (h *AIHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req SummarizeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	result, err := h.summarizer.Summarize(r.Context(), req.Description)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// Status handles GET /api/ai/status.
func (h *AIHandler) Status(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]bool{
		"ai_available": h.summarizer.Available(),
	})
}
