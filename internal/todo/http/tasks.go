package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/tasktab/internal/todo/domain"
	"github.com/aussiebroadwan/tasktab/internal/todo/service"
	"github.com/aussiebroadwan/tasktab/pkg/httpx"
)

// TasksHandler is the user-scoped task surface. Every operation acts as the
// authenticated user; ownership is enforced in the service.
type TasksHandler struct {
	TaskService *service.TaskService
}

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Completed   *bool   `json:"completed"`
}

func (req UpdateTaskRequest) changes() domain.TaskChanges {
	return domain.TaskChanges{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Completed:   req.Completed,
	}
}

func (h *TasksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFrom(r.Context())
	if !ok {
		errAuthRequired.WriteError(w)
		return
	}
	if principal.User == nil {
		errUserOnly.WriteError(w)
		return
	}

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.Title == "" {
		badRequest(w, "title is required")
		return
	}

	task, err := h.TaskService.CreateTask(r.Context(), *principal.User, req.Title, req.Description, req.Category)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toTaskResponse(task))
}

func (h *TasksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFrom(r.Context())
	if !ok {
		errAuthRequired.WriteError(w)
		return
	}
	if principal.User == nil {
		errUserOnly.WriteError(w)
		return
	}

	tasks, err := h.TaskService.ListOwnedTasks(r.Context(), principal.User.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTaskResponses(tasks))
}

func (h *TasksHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFrom(r.Context())
	if !ok {
		errAuthRequired.WriteError(w)
		return
	}
	if principal.User == nil {
		errUserOnly.WriteError(w)
		return
	}

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	task, err := h.TaskService.UpdateOwnedTask(r.Context(), *principal.User, r.PathValue("id"), req.changes())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTaskResponse(task))
}

func (h *TasksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFrom(r.Context())
	if !ok {
		errAuthRequired.WriteError(w)
		return
	}
	if principal.User == nil {
		errUserOnly.WriteError(w)
		return
	}

	if err := h.TaskService.DeleteOwnedTask(r.Context(), *principal.User, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: "task deleted"})
}

func (h *TasksHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFrom(r.Context())
	if !ok {
		errAuthRequired.WriteError(w)
		return
	}
	if principal.User == nil {
		errUserOnly.WriteError(w)
		return
	}

	task, err := h.TaskService.ToggleOwnedTask(r.Context(), *principal.User, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTaskResponse(task))
}
