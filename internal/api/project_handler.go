package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/trackerworkflow/tracker-api/internal/api/shared"
	"github.com/trackerworkflow/tracker-api/internal/service"
)

// Default paging window for list endpoints.
const (
	defaultPageLimit = 100
	maxPageLimit     = 500
)

// ProjectHandler handles project CRUD endpoints.
type ProjectHandler struct {
	projectService service.ProjectService
}

// NewProjectHandler creates a ProjectHandler.
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// Create handles POST /api/projects.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	project, err := h.projectService.CreateProject(r.Context(), req.Name, req.Description)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, project)
}

// List handles GET /api/projects.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, limit := pageParams(r)

	projects, err := h.projectService.ListProjects(r.Context(), offset, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, projects)
}

// Get handles GET /api/projects/{projectID}.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "projectID")
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, project)
}

// Update handles PUT /api/projects/{projectID}.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "projectID")
	if !ok {
		return
	}

	var req ProjectRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	project, err := h.projectService.UpdateProject(r.Context(), id, req.Name, req.Description)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, project)
}

// Delete handles DELETE /api/projects/{projectID}. Tasks in the project
// go with it.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "projectID")
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"message": "project deleted"})
}

// pathUUID parses a UUID path parameter, responding with 400 on failure.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// pageParams reads offset/limit query parameters with sane bounds.
func pageParams(r *http.Request) (offset, limit int) {
	limit = defaultPageLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			offset = parsed
		}
	}
	return offset, limit
}
