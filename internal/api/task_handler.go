package api

import (
	"net/http"

	"github.com/trackerworkflow/tracker-api/internal/api/shared"
	"github.com/trackerworkflow/tracker-api/internal/domain"
	"github.com/trackerworkflow/tracker-api/internal/service"
)

// TaskHandler handles task CRUD endpoints. Creates and updates run the
// notification fan-out inside the task service.
type TaskHandler struct {
	taskService service.TaskService
	userService service.UserService
}

// NewTaskHandler creates a TaskHandler.
func NewTaskHandler(taskService service.TaskService, userService service.UserService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		userService: userService,
	}
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, actor, ok := h.decodeTaskRequest(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), taskInput(req), actor)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// List handles GET /api/tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, limit := pageParams(r)

	tasks, err := h.taskService.ListTasks(r.Context(), offset, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// Get handles GET /api/tasks/{taskID}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "taskID")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// ListByProject handles GET /api/tasks/project/{projectID}.
func (h *TaskHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(w, r, "projectID")
	if !ok {
		return
	}
	offset, limit := pageParams(r)

	tasks, err := h.taskService.ListTasksByProject(r.Context(), projectID, offset, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// Update handles PUT /api/tasks/{taskID}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "taskID")
	if !ok {
		return
	}

	req, actor, ok := h.decodeTaskRequest(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), id, taskInput(req), actor)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Delete handles DELETE /api/tasks/{taskID}. No notifications fan out
// from deletions.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "taskID")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"message": "task deleted"})
}

// decodeTaskRequest parses and validates the body and resolves the acting
// user's display name for the fan-out policy.
func (h *TaskHandler) decodeTaskRequest(w http.ResponseWriter, r *http.Request) (TaskRequest, string, bool) {
	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return req, "", false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return req, "", false
	}

	user, err := currentUser(r, h.userService)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return req, "", false
	}

	return req, user.DisplayName(), true
}

func taskInput(req TaskRequest) service.TaskInput {
	return service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
		Assignee:    req.Assignee,
		DueDate:     req.DueDate,
		ProjectID:   req.ProjectID,
	}
}
